package courier

import (
	"errors"
	"slices"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"
)

var (
	// ErrRegionsAreRequired is returned when a courier is registered without regions.
	ErrRegionsAreRequired = errs.NewValueIsRequiredError("regions")
	// ErrWorkingHoursAreRequired is returned when a courier is registered without working hours.
	ErrWorkingHoursAreRequired = errs.NewValueIsRequiredError("working hours")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
)

// Courier is the aggregate root for a delivery courier.
//
// A courier serves a set of regions during its working hours and accumulates
// the ids of the orders it has completed. Identity, type, regions and working
// hours are fixed at registration; the completed list only grows.
//
// Example:
//
//	hours, _ := kernel.ParseTimeWindows([]string{"09:00-18:00"})
//	c, err := courier.NewCourier(7, courier.Bike, []int{1, 2}, hours)
//	if err != nil {
//	    return err
//	}
//	c.ServesRegion(2)           // true
//	c.IsWorkingAt(11*60 + 15)   // true
type Courier struct {
	id              kernel.ID
	courierType     Type
	regions         []int
	workingHours    []kernel.TimeWindow
	completedOrders []kernel.ID

	guard guard.ConstructorGuard
}

// NewCourier registers a courier with no completed orders.
//
// Parameters:
//   - id: identity handed out by the courier id allocator
//   - courierType: FOOT, BIKE or AUTO
//   - regions: non-empty; duplicates are collapsed keeping the first occurrence
//   - workingHours: non-empty list of constructed windows
//
// Returns:
//   - *Courier: the new aggregate
//   - error: all validation failures joined together
func NewCourier(
	id kernel.ID,
	courierType Type,
	regions []int,
	workingHours []kernel.TimeWindow,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setType(courierType),
		c.setRegions(regions),
		c.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier rebuilds a courier from persisted state.
// It applies the same validation as NewCourier and additionally checks
// every completed order id.
func RestoreCourier(
	id kernel.ID,
	courierType Type,
	regions []int,
	workingHours []kernel.TimeWindow,
	completedOrders []kernel.ID,
) (*Courier, error) {
	c, err := NewCourier(id, courierType, regions, workingHours)
	if err != nil {
		return nil, err
	}

	for _, orderID := range completedOrders {
		if err = orderID.Validate(); err != nil {
			return nil, err
		}
	}
	c.completedOrders = slices.Clone(completedOrders)

	return c, nil
}

// Validate ensures the courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if c == nil || other == nil {
		return false
	}
	return c.id == other.id
}

func (c *Courier) ID() kernel.ID {
	return c.id
}

func (c *Courier) Type() Type {
	return c.courierType
}

// Regions returns a copy of the served regions in registration order.
func (c *Courier) Regions() []int {
	return slices.Clone(c.regions)
}

// WorkingHours returns a copy of the working windows.
func (c *Courier) WorkingHours() []kernel.TimeWindow {
	return slices.Clone(c.workingHours)
}

// CompletedOrders returns a copy of the completed order ids in completion order.
// The result is empty, never nil.
func (c *Courier) CompletedOrders() []kernel.ID {
	if len(c.completedOrders) == 0 {
		return []kernel.ID{}
	}
	return slices.Clone(c.completedOrders)
}

// ServesRegion reports whether region is one of the courier's regions.
func (c *Courier) ServesRegion(region int) bool {
	return slices.Contains(c.regions, region)
}

// IsWorkingAt reports whether a minute of day falls into any working window.
func (c *Courier) IsWorkingAt(minute int) bool {
	return kernel.AnyContains(c.workingHours, minute)
}

// RecordCompletion appends a completed order id.
// Callers run the completion checks first; this method only validates the id.
func (c *Courier) RecordCompletion(orderID kernel.ID) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.completedOrders = append(c.completedOrders, orderID)
	return nil
}

func (c *Courier) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setType(courierType Type) error {
	if err := courierType.Validate(); err != nil {
		return err
	}
	c.courierType = courierType
	return nil
}

func (c *Courier) setRegions(regions []int) error {
	if len(regions) == 0 {
		return ErrRegionsAreRequired
	}

	unique := make([]int, 0, len(regions))
	for _, r := range regions {
		if !slices.Contains(unique, r) {
			unique = append(unique, r)
		}
	}

	c.regions = unique
	return nil
}

func (c *Courier) setWorkingHours(workingHours []kernel.TimeWindow) error {
	if len(workingHours) == 0 {
		return ErrWorkingHoursAreRequired
	}

	for _, w := range workingHours {
		if err := w.Validate(); err != nil {
			return err
		}
	}

	c.workingHours = slices.Clone(workingHours)
	return nil
}
