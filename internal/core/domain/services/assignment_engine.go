package services

import (
	"slices"
	"time"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/pkg/errs"
)

// Capacity is the maximum number of orders a courier of each type takes per run.
type Capacity struct {
	Foot int
	Bike int
	Auto int
}

// DefaultCapacity returns the order limits of the delivery potential table:
// FOOT 2, BIKE 4, AUTO 7.
func DefaultCapacity() Capacity {
	return Capacity{Foot: 2, Bike: 4, Auto: 7}
}

// For returns the limit for a courier type, zero for unknown types.
func (c Capacity) For(t courier.Type) int {
	switch t {
	case courier.Foot:
		return c.Foot
	case courier.Bike:
		return c.Bike
	case courier.Auto:
		return c.Auto
	case courier.UnknownType:
	}
	return 0
}

// Validate rejects negative limits.
func (c Capacity) Validate() error {
	for _, t := range courier.AssignmentPriority() {
		if c.For(t) < 0 {
			return errs.NewValueIsOutOfRangeError(t.String()+" capacity", c.For(t), 0, "unbounded")
		}
	}
	return nil
}

// Assignment is the result of one engine run.
type Assignment struct {
	// Date is the reference date the batches were built for.
	Date time.Time
	// Batches maps a courier id to the order ids offered to it, in draw order.
	// Couriers that received nothing are absent.
	Batches map[kernel.ID][]kernel.ID
	// Unassigned lists backlog orders left over, in backlog order.
	Unassigned []kernel.ID

	couriers []kernel.ID
}

// Couriers returns the ids of couriers that received a batch, in processing order.
func (a Assignment) Couriers() []kernel.ID {
	return slices.Clone(a.couriers)
}

// AssignedCount returns the number of orders placed into batches.
func (a Assignment) AssignedCount() int {
	n := 0
	for _, batch := range a.Batches {
		n += len(batch)
	}
	return n
}

// AssignmentEngine partitions the order backlog among couriers.
//
// Algorithm:
//   - couriers are grouped by type and processed AUTO, then BIKE, then FOOT,
//     each group in the order it was given (registration order)
//   - the backlog is indexed by region, keeping backlog order
//   - a courier draws from its regions in ascending region order until its
//     type capacity is reached; every drawn order leaves the pool
//   - orders in regions nobody serves, or left after every courier is full,
//     are reported as unassigned
//
// The engine is a pure function of its inputs and Capacity: it keeps no state
// between runs and identical inputs always give an identical Assignment.
// Weight and time windows do not affect eligibility.
//
// Example:
//
//	engine, _ := services.NewAssignmentEngine(services.DefaultCapacity())
//	result, err := engine.Assign(couriers, backlog, date)
//	for _, courierID := range result.Couriers() {
//	    fmt.Println(courierID, result.Batches[courierID])
//	}
type AssignmentEngine struct {
	capacity Capacity
}

// NewAssignmentEngine creates an engine with the given per-type limits.
func NewAssignmentEngine(capacity Capacity) (AssignmentEngine, error) {
	if err := capacity.Validate(); err != nil {
		return AssignmentEngine{}, err
	}
	return AssignmentEngine{capacity: capacity}, nil
}

// Capacity returns the configured per-type limits.
func (e AssignmentEngine) Capacity() Capacity {
	return e.capacity
}

// Assign builds the batches for date.
//
// Parameters:
//   - couriers: the roster in registration order
//   - backlog: the unassigned orders in backlog order; completed orders and
//     repeated ids are skipped
//   - date: the reference date, copied into the result
//
// Returns:
//   - Assignment: batches plus the unassigned remainder
//   - error: validation error of the first malformed courier or order
func (e AssignmentEngine) Assign(
	couriers []*courier.Courier,
	backlog []*order.Order,
	date time.Time,
) (Assignment, error) {
	pool, backlogIDs, err := indexBacklog(backlog)
	if err != nil {
		return Assignment{}, err
	}

	groups, err := groupByType(couriers)
	if err != nil {
		return Assignment{}, err
	}

	result := Assignment{
		Date:       date,
		Batches:    make(map[kernel.ID][]kernel.ID),
		Unassigned: make([]kernel.ID, 0),
	}
	taken := make(map[kernel.ID]struct{})

	for _, t := range courier.AssignmentPriority() {
		limit := e.capacity.For(t)
		if limit == 0 {
			continue
		}

		for _, c := range groups[t] {
			batch := drawBatch(pool, c.Regions(), limit)
			if len(batch) == 0 {
				continue
			}

			for _, id := range batch {
				taken[id] = struct{}{}
			}
			result.Batches[c.ID()] = append(result.Batches[c.ID()], batch...)
			if !slices.Contains(result.couriers, c.ID()) {
				result.couriers = append(result.couriers, c.ID())
			}
		}
	}

	for _, id := range backlogIDs {
		if _, ok := taken[id]; !ok {
			result.Unassigned = append(result.Unassigned, id)
		}
	}

	return result, nil
}

// drawBatch takes up to limit orders from the courier's regions, ascending.
func drawBatch(pool map[int][]kernel.ID, regions []int, limit int) []kernel.ID {
	slices.Sort(regions)

	batch := make([]kernel.ID, 0, limit)
	for _, region := range regions {
		queue := pool[region]
		n := min(limit-len(batch), len(queue))
		batch = append(batch, queue[:n]...)
		pool[region] = queue[n:]

		if len(batch) == limit {
			break
		}
	}

	return batch
}

func indexBacklog(backlog []*order.Order) (map[int][]kernel.ID, []kernel.ID, error) {
	pool := make(map[int][]kernel.ID)
	ids := make([]kernel.ID, 0, len(backlog))
	seen := make(map[kernel.ID]struct{}, len(backlog))

	for _, o := range backlog {
		if err := o.Validate(); err != nil {
			return nil, nil, err
		}
		if o.IsCompleted() {
			continue
		}
		if _, dup := seen[o.ID()]; dup {
			continue
		}
		seen[o.ID()] = struct{}{}

		pool[o.Region()] = append(pool[o.Region()], o.ID())
		ids = append(ids, o.ID())
	}

	return pool, ids, nil
}

func groupByType(couriers []*courier.Courier) (map[courier.Type][]*courier.Courier, error) {
	groups := make(map[courier.Type][]*courier.Courier)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		groups[c.Type()] = append(groups[c.Type()], c)
	}

	return groups, nil
}
