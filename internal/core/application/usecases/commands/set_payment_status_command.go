package commands

import (
	"errors"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/guard"
)

var ErrSetPaymentStatusCommandIsNotConstructed = errors.New(
	"SetPaymentStatusCommand must be created via NewSetPaymentStatusCommand constructor",
)

// SetPaymentStatusCommand marks an order paid or, as a manual correction, unpaid.
type SetPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	caller  access.Caller
	orderID order.ID
	paid    bool

	guard guard.ConstructorGuard
}

func NewSetPaymentStatusCommand(caller access.Caller, orderID order.ID, paid bool) (SetPaymentStatusCommand, error) {
	cmd := SetPaymentStatusCommand{
		paid:  paid,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCaller(&cmd.caller, caller),
		setOrderID(&cmd.orderID, orderID),
	); err != nil {
		return SetPaymentStatusCommand{}, err
	}

	return cmd, nil
}

func (c SetPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetPaymentStatusCommandIsNotConstructed)
}

func (c SetPaymentStatusCommand) Caller() access.Caller {
	return c.caller
}

func (c SetPaymentStatusCommand) OrderID() order.ID {
	return c.orderID
}

func (c SetPaymentStatusCommand) Paid() bool {
	return c.paid
}
