package commands

import (
	"errors"
	"fmt"
	"slices"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"
)

var (
	ErrCreateOrdersCommandIsNotConstructed = errors.New(
		"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
	)
	ErrOrdersAreRequired = errs.NewValueIsRequiredError("orders")
)

// OrderDraft is the data of one new order, before it has an id.
type OrderDraft struct {
	Weight        float64
	Region        int
	DeliveryHours []kernel.TimeWindow
	Cost          int
}

// CreateOrdersCommand registers a batch of orders in Created status.
type CreateOrdersCommand struct { //nolint:recvcheck //using for validation
	drafts []OrderDraft

	guard guard.ConstructorGuard
}

func NewCreateOrdersCommand(drafts []OrderDraft) (CreateOrdersCommand, error) {
	command := CreateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDrafts(drafts); err != nil {
		return CreateOrdersCommand{}, err
	}

	return command, nil
}

func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

func (c CreateOrdersCommand) Drafts() []OrderDraft {
	return slices.Clone(c.drafts)
}

func (c *CreateOrdersCommand) setDrafts(drafts []OrderDraft) error {
	if len(drafts) == 0 {
		return ErrOrdersAreRequired
	}

	var joined error
	for i, d := range drafts {
		if _, err := order.NewOrder(1, d.Weight, d.Region, d.DeliveryHours, d.Cost); err != nil {
			joined = errors.Join(joined, fmt.Errorf("orders[%d]: %w", i, err))
		}
	}
	if joined != nil {
		return joined
	}

	c.drafts = slices.Clone(drafts)
	return nil
}
