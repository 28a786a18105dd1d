package commands

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrFinalizeDueCompletionsCommandIsNotConstructed = errors.New(
	"FinalizeDueCompletionsCommand must be created via NewFinalizeDueCompletionsCommand constructor",
)

// FinalizeDueCompletionsCommand completes up to batchSize orders whose scheduled
// completion time has passed.
type FinalizeDueCompletionsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewFinalizeDueCompletionsCommand(batchSize int) (FinalizeDueCompletionsCommand, error) {
	if batchSize <= 0 {
		return FinalizeDueCompletionsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize",
			fmt.Errorf("%d is not greater than 0", batchSize),
		)
	}

	return FinalizeDueCompletionsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c FinalizeDueCompletionsCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeDueCompletionsCommandIsNotConstructed)
}

func (c FinalizeDueCompletionsCommand) BatchSize() int {
	return c.batchSize
}
