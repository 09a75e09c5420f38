package commands

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"
)

var (
	ErrCompleteOrdersCommandIsNotConstructed = errors.New(
		"CompleteOrdersCommand must be created via NewCompleteOrdersCommand constructor",
	)
	ErrCompleteInfoIsRequired = errs.NewValueIsRequiredError("complete info")
	ErrCompleteTimeIsRequired = errs.NewValueIsRequiredError("complete time")
)

// CompletionEntry reports that a courier delivered an order at an instant.
type CompletionEntry struct {
	CourierID    kernel.ID
	OrderID      kernel.ID
	CompleteTime time.Time
}

// CompleteOrdersCommand is a batch of completion reports applied atomically.
//
// Example:
//
//	cmd, err := NewCompleteOrdersCommand([]CompletionEntry{
//	    {CourierID: 1, OrderID: 7, CompleteTime: time.Date(2023, 5, 1, 11, 15, 0, 0, time.UTC)},
//	})
//	completed, err := handler.Handle(ctx, cmd)
type CompleteOrdersCommand struct { //nolint:recvcheck //using for validation
	entries []CompletionEntry

	guard guard.ConstructorGuard
}

func NewCompleteOrdersCommand(entries []CompletionEntry) (CompleteOrdersCommand, error) {
	command := CompleteOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setEntries(entries); err != nil {
		return CompleteOrdersCommand{}, err
	}

	return command, nil
}

func (c CompleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrdersCommandIsNotConstructed)
}

// Entries returns the reports in request order.
func (c CompleteOrdersCommand) Entries() []CompletionEntry {
	return slices.Clone(c.entries)
}

func (c *CompleteOrdersCommand) setEntries(entries []CompletionEntry) error {
	if len(entries) == 0 {
		return ErrCompleteInfoIsRequired
	}

	var joined error
	for i, e := range entries {
		var err error
		if e.CompleteTime.IsZero() {
			err = ErrCompleteTimeIsRequired
		}
		if err = errors.Join(err, e.CourierID.Validate(), e.OrderID.Validate()); err != nil {
			joined = errors.Join(joined, fmt.Errorf("complete_info[%d]: %w", i, err))
		}
	}
	if joined != nil {
		return joined
	}

	c.entries = slices.Clone(entries)
	return nil
}
