package commands

import (
	"errors"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/guard"
)

var ErrAddItemToOpenOrderCommandIsNotConstructed = errors.New(
	"AddItemToOpenOrderCommand must be created via NewAddItemToOpenOrderCommand constructor",
)

// AddItemToOpenOrderCommand attaches one more menu item to an unpaid order of the caller.
type AddItemToOpenOrderCommand struct { //nolint:recvcheck //using for validation
	caller   access.Caller
	orderID  order.ID
	itemName string

	guard guard.ConstructorGuard
}

func NewAddItemToOpenOrderCommand(caller access.Caller, orderID order.ID, itemName string) (AddItemToOpenOrderCommand, error) {
	cmd := AddItemToOpenOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCaller(&cmd.caller, caller),
		setOrderID(&cmd.orderID, orderID),
		setItemName(&cmd.itemName, itemName),
	); err != nil {
		return AddItemToOpenOrderCommand{}, err
	}

	return cmd, nil
}

func (c AddItemToOpenOrderCommand) Validate() error {
	return c.guard.Validate(ErrAddItemToOpenOrderCommandIsNotConstructed)
}

func (c AddItemToOpenOrderCommand) Caller() access.Caller {
	return c.caller
}

func (c AddItemToOpenOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c AddItemToOpenOrderCommand) ItemName() string {
	return c.itemName
}
