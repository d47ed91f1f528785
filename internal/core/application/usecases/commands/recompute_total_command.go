package commands

import (
	"errors"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/guard"
)

var ErrRecomputeTotalCommandIsNotConstructed = errors.New(
	"RecomputeTotalCommand must be created via NewRecomputeTotalCommand constructor",
)

// RecomputeTotalCommand re-derives an order total from its line items and stores it.
type RecomputeTotalCommand struct { //nolint:recvcheck //using for validation
	caller  access.Caller
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewRecomputeTotalCommand(caller access.Caller, orderID order.ID) (RecomputeTotalCommand, error) {
	cmd := RecomputeTotalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCaller(&cmd.caller, caller),
		setOrderID(&cmd.orderID, orderID),
	); err != nil {
		return RecomputeTotalCommand{}, err
	}

	return cmd, nil
}

func (c RecomputeTotalCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeTotalCommandIsNotConstructed)
}

func (c RecomputeTotalCommand) Caller() access.Caller {
	return c.caller
}

func (c RecomputeTotalCommand) OrderID() order.ID {
	return c.orderID
}
