package commands

import (
	"errors"
	"strings"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var ErrPlaceFirstItemCommandIsNotConstructed = errors.New(
	"PlaceFirstItemCommand must be created via NewPlaceFirstItemCommand constructor",
)

// PlaceFirstItemCommand opens a new order for owner with one menu item.
// Orders are never created empty; this is the only way an order comes into existence.
//
// Example:
//
//	cmd, err := NewPlaceFirstItemCommand(caller, "alice", "Latte")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Printf("order %s opened, total %s", result.OrderID, result.Total)
type PlaceFirstItemCommand struct { //nolint:recvcheck //using for validation
	caller   access.Caller
	owner    string
	itemName string

	guard guard.ConstructorGuard
}

// NewPlaceFirstItemCommand validates the caller, the owner login and the item name.
func NewPlaceFirstItemCommand(caller access.Caller, owner, itemName string) (PlaceFirstItemCommand, error) {
	cmd := PlaceFirstItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCaller(&cmd.caller, caller),
		cmd.setOwner(owner),
		setItemName(&cmd.itemName, itemName),
	); err != nil {
		return PlaceFirstItemCommand{}, err
	}

	return cmd, nil
}

func (c PlaceFirstItemCommand) Validate() error {
	return c.guard.Validate(ErrPlaceFirstItemCommandIsNotConstructed)
}

func (c PlaceFirstItemCommand) Caller() access.Caller {
	return c.caller
}

// Owner is the login the order will belong to.
func (c PlaceFirstItemCommand) Owner() string {
	return c.owner
}

func (c PlaceFirstItemCommand) ItemName() string {
	return c.itemName
}

func (c *PlaceFirstItemCommand) setOwner(owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return errs.NewValueIsRequiredError("owner")
	}
	c.owner = owner
	return nil
}
