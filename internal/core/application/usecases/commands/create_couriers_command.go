package commands

import (
	"errors"
	"fmt"
	"slices"

	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"
)

var (
	ErrCreateCouriersCommandIsNotConstructed = errors.New(
		"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
	)
	ErrCouriersAreRequired = errs.NewValueIsRequiredError("couriers")
)

// CourierDraft is the registration data of one courier, before it has an id.
type CourierDraft struct {
	Type         courier.Type
	Regions      []int
	WorkingHours []kernel.TimeWindow
}

// CreateCouriersCommand registers a batch of couriers.
// The batch is created as a whole or not at all.
//
// Example:
//
//	hours, _ := kernel.ParseTimeWindows([]string{"09:00-18:00"})
//	cmd, err := NewCreateCouriersCommand([]CourierDraft{
//	    {Type: courier.Bike, Regions: []int{1, 2}, WorkingHours: hours},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid couriers: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateCouriersCommand struct { //nolint:recvcheck //using for validation
	drafts []CourierDraft

	guard guard.ConstructorGuard
}

// NewCreateCouriersCommand checks every draft the way the aggregate will.
// Errors name the index of the offending draft.
func NewCreateCouriersCommand(drafts []CourierDraft) (CreateCouriersCommand, error) {
	command := CreateCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDrafts(drafts); err != nil {
		return CreateCouriersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}

func (c CreateCouriersCommand) Drafts() []CourierDraft {
	return slices.Clone(c.drafts)
}

func (c *CreateCouriersCommand) setDrafts(drafts []CourierDraft) error {
	if len(drafts) == 0 {
		return ErrCouriersAreRequired
	}

	var joined error
	for i, d := range drafts {
		// The id is a placeholder; the handler allocates the real one.
		if _, err := courier.NewCourier(1, d.Type, d.Regions, d.WorkingHours); err != nil {
			joined = errors.Join(joined, fmt.Errorf("couriers[%d]: %w", i, err))
		}
	}
	if joined != nil {
		return joined
	}

	c.drafts = slices.Clone(drafts)
	return nil
}
