// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collectors are created once in main and handed to the HTTP layer and jobs.
type Collectors struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RateLimitExceeded   prometheus.Counter

	AssignmentRunsTotal  *prometheus.CounterVec
	OrdersAssignedTotal  prometheus.Counter
	OrdersCompletedTotal prometheus.Counter

	AggregatesWrittenTotal *prometheus.CounterVec
}

// New creates the collectors and registers them, plus the Go runtime and
// process collectors, on reg.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RateLimitExceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rate_limit_exceeded_total",
			Help: "Total number of rejected HTTP requests due to rate limiting",
		}),
		AssignmentRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assignment_runs_total",
				Help: "Total number of order assignment runs by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		OrdersAssignedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_assigned_total",
			Help: "Total number of orders placed into courier batches",
		}),
		OrdersCompletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_completed_total",
			Help: "Total number of orders completed",
		}),
		AggregatesWrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aggregates_written_total",
				Help: "Total number of aggregates written by committed transactions",
			},
			[]string{"aggregate"},
		),
	}

	var err error
	for _, collector := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequestsTotal,
		c.HTTPRequestDuration,
		c.RateLimitExceeded,
		c.AssignmentRunsTotal,
		c.OrdersAssignedTotal,
		c.OrdersCompletedTotal,
		c.AggregatesWrittenTotal,
	} {
		err = errors.Join(err, reg.Register(collector))
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

// ObserveAssignment records one assignment run.
func (c *Collectors) ObserveAssignment(trigger string, assigned int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	c.AssignmentRunsTotal.WithLabelValues(trigger, result).Inc()
	c.OrdersAssignedTotal.Add(float64(assigned))
}

// ObserveCommit counts the aggregates of one kind written by a committed transaction.
func (c *Collectors) ObserveCommit(aggregate string, written int) {
	c.AggregatesWrittenTotal.WithLabelValues(aggregate).Add(float64(written))
}
