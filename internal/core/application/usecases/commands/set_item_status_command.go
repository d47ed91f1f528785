package commands

import (
	"errors"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/guard"
)

var ErrSetItemStatusCommandIsNotConstructed = errors.New(
	"SetItemStatusCommand must be created via NewSetItemStatusCommand constructor",
)

// SetItemStatusCommand records kitchen progress for every line item of an order with
// the given name.
//
// Example:
//
//	status, _ := order.ParseItemStatus("Started")
//	cmd, err := NewSetItemStatusCommand(employee, 1, "Latte", status)
type SetItemStatusCommand struct { //nolint:recvcheck //using for validation
	caller   access.Caller
	orderID  order.ID
	itemName string
	status   order.ItemStatus

	guard guard.ConstructorGuard
}

func NewSetItemStatusCommand(
	caller access.Caller,
	orderID order.ID,
	itemName string,
	status order.ItemStatus,
) (SetItemStatusCommand, error) {
	cmd := SetItemStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCaller(&cmd.caller, caller),
		setOrderID(&cmd.orderID, orderID),
		setItemName(&cmd.itemName, itemName),
		cmd.setStatus(status),
	); err != nil {
		return SetItemStatusCommand{}, err
	}

	return cmd, nil
}

func (c SetItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetItemStatusCommandIsNotConstructed)
}

func (c SetItemStatusCommand) Caller() access.Caller {
	return c.caller
}

func (c SetItemStatusCommand) OrderID() order.ID {
	return c.orderID
}

func (c SetItemStatusCommand) ItemName() string {
	return c.itemName
}

func (c SetItemStatusCommand) Status() order.ItemStatus {
	return c.status
}

func (c *SetItemStatusCommand) setStatus(status order.ItemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
