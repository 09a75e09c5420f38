package courier

import (
	"fmt"

	"lavka/internal/pkg/errs"
)

// Type is the transport a courier uses.
//
// Each type carries two fixed coefficients:
//
//	type  earnings  rating
//	FOOT      2        3
//	BIKE      3        2
//	AUTO      4        1
//
// Slower types earn less per order but gain rating faster.
type Type int

const (
	// UnknownType is the zero value and never valid.
	UnknownType Type = iota
	Foot
	Bike
	Auto
)

var typeNames = map[Type]string{
	UnknownType: "UNKNOWN",
	Foot:        "FOOT",
	Bike:        "BIKE",
	Auto:        "AUTO",
}

// AssignmentPriority lists courier types in the order they draw from the backlog.
func AssignmentPriority() []Type {
	return []Type{Auto, Bike, Foot}
}

// ParseType converts the wire form ("FOOT", "BIKE", "AUTO") into a Type.
func ParseType(text string) (Type, error) {
	for t, name := range typeNames {
		if t != UnknownType && name == text {
			return t, nil
		}
	}

	return UnknownType, errs.NewValueIsInvalidErrorWithCause(
		"courier type",
		fmt.Errorf("%q is not one of FOOT, BIKE, AUTO", text),
	)
}

// Validate reports whether t is one of the known types.
func (t Type) Validate() error {
	if t != Foot && t != Bike && t != Auto {
		return errs.NewValueIsInvalidErrorWithCause(
			"courier type",
			fmt.Errorf("%d is not a valid courier type", int(t)),
		)
	}
	return nil
}

// String returns the wire form of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return typeNames[UnknownType]
}

// EarningsMultiplier is applied to the summed cost of completed orders.
func (t Type) EarningsMultiplier() int {
	switch t {
	case Foot:
		return 2
	case Bike:
		return 3
	case Auto:
		return 4
	case UnknownType:
	}
	return 0
}

// RatingMultiplier is applied to the number of completed orders per hour.
func (t Type) RatingMultiplier() int {
	switch t {
	case Foot:
		return 3
	case Bike:
		return 2
	case Auto:
		return 1
	case UnknownType:
	}
	return 0
}
