package services

import (
	"time"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/order"
)

// Metrics are a courier's results over a time range.
type Metrics struct {
	Earnings int
	Rating   int
	// Completed is the number of orders completed inside the range.
	Completed int
}

// MetricsCalculator derives earnings and rating from completed orders.
//
// For the range [start, end):
//
//	hours    = max(floor((end - start) / 1h), 0)
//	eligible = orders completed at t with start <= t < end
//	earnings = sum(cost of eligible) * type earnings multiplier
//	rating   = (len(eligible) / hours) * type rating multiplier   (integer division)
//
// When hours is zero or nothing is eligible there are no metrics and ok is false.
type MetricsCalculator struct{}

func NewMetricsCalculator() MetricsCalculator {
	return MetricsCalculator{}
}

// Compute returns the metrics of c over [start, end).
// Orders without a completion instant are ignored.
func (m MetricsCalculator) Compute(
	c *courier.Courier,
	completed []*order.Order,
	start time.Time,
	end time.Time,
) (metrics Metrics, ok bool, err error) {
	if err = c.Validate(); err != nil {
		return Metrics{}, false, err
	}

	hours := wholeHours(start, end)
	if hours <= 0 {
		return Metrics{}, false, nil
	}

	var costs, count int
	for _, o := range completed {
		if err = o.Validate(); err != nil {
			return Metrics{}, false, err
		}

		at := o.CompleteTime()
		if at == nil || at.Before(start) || !at.Before(end) {
			continue
		}
		costs += o.Cost()
		count++
	}

	if count == 0 {
		return Metrics{}, false, nil
	}

	return Metrics{
		Earnings:  costs * c.Type().EarningsMultiplier(),
		Rating:    int(int64(count)/hours) * c.Type().RatingMultiplier(),
		Completed: count,
	}, true, nil
}

// wholeHours is floor((end - start) / 1h). It counts in Unix seconds because
// time.Time.Sub saturates at about 292 years.
func wholeHours(start, end time.Time) int64 {
	secs := end.Unix() - start.Unix()
	if end.Nanosecond() < start.Nanosecond() {
		secs--
	}
	if secs < 0 {
		return -1
	}
	return secs / 3600
}
