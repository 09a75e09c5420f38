package services_test

import (
	"testing"
	"time"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func mustCourier(t *testing.T, id kernel.ID, ct courier.Type, regions []int, hours ...string) *courier.Courier {
	t.Helper()
	if len(hours) == 0 {
		hours = []string{"00:00-23:59"}
	}
	w, err := kernel.ParseTimeWindows(hours)
	require.NoError(t, err)

	c, err := courier.NewCourier(id, ct, regions, w)
	require.NoError(t, err)
	return c
}

func mustOrder(t *testing.T, id kernel.ID, region int, cost int, hours ...string) *order.Order {
	t.Helper()
	if len(hours) == 0 {
		hours = []string{"00:00-23:59"}
	}
	w, err := kernel.ParseTimeWindows(hours)
	require.NoError(t, err)

	o, err := order.NewOrder(id, 1, region, w, cost)
	require.NoError(t, err)
	return o
}

func kernelID(id int64) kernel.ID {
	return kernel.ID(id)
}

func at(hour, minute int) time.Time {
	return time.Date(2023, 5, 1, hour, minute, 0, 0, time.UTC)
}
