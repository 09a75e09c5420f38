package commands

import (
	"errors"
	"time"

	"lavka/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand runs the batching of the Created backlog for one date.
type AssignOrdersCommand struct {
	date time.Time

	guard guard.ConstructorGuard
}

// NewAssignOrdersCommand keeps only the UTC calendar date of date.
func NewAssignOrdersCommand(date time.Time) AssignOrdersCommand {
	u := date.UTC()
	return AssignOrdersCommand{
		date:  time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC),
		guard: guard.NewConstructorGuard(),
	}
}

func (c AssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
}

func (c AssignOrdersCommand) Date() time.Time {
	return c.date
}
