package commands

import (
	"errors"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/guard"
)

var ErrSetItemCommentCommandIsNotConstructed = errors.New(
	"SetItemCommentCommand must be created via NewSetItemCommentCommand constructor",
)

// SetItemCommentCommand attaches or overwrites a preparation note such as "oat milk".
// An empty comment clears the note.
type SetItemCommentCommand struct { //nolint:recvcheck //using for validation
	caller   access.Caller
	orderID  order.ID
	itemName string
	comment  string

	guard guard.ConstructorGuard
}

func NewSetItemCommentCommand(caller access.Caller, orderID order.ID, itemName, comment string) (SetItemCommentCommand, error) {
	cmd := SetItemCommentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setCaller(&cmd.caller, caller),
		setOrderID(&cmd.orderID, orderID),
		setItemName(&cmd.itemName, itemName),
		cmd.setComment(comment),
	); err != nil {
		return SetItemCommentCommand{}, err
	}

	return cmd, nil
}

func (c SetItemCommentCommand) Validate() error {
	return c.guard.Validate(ErrSetItemCommentCommandIsNotConstructed)
}

func (c SetItemCommentCommand) Caller() access.Caller {
	return c.caller
}

func (c SetItemCommentCommand) OrderID() order.ID {
	return c.orderID
}

func (c SetItemCommentCommand) ItemName() string {
	return c.itemName
}

func (c SetItemCommentCommand) Comment() string {
	return c.comment
}

func (c *SetItemCommentCommand) setComment(comment string) error {
	if err := order.ValidateComment(comment); err != nil {
		return err
	}
	c.comment = comment
	return nil
}
