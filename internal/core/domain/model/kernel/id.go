package kernel

import (
	"math"
	"strconv"

	"lavka/internal/pkg/errs"
)

// ID identifies a courier or an order. Valid ids are positive.
type ID int64

// Validate reports whether the id lies in [1, math.MaxInt64].
func (id ID) Validate() error {
	if id < 1 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), int64(1), int64(math.MaxInt64))
	}
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
