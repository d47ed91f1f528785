package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/services"
)

// SetItemCommentCommandHandler stores comments from the order's owner or from staff.
type SetItemCommentCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
}

func NewSetItemCommentCommandHandler(uowFactory OrderUoWFactory) SetItemCommentCommandHandler {
	return SetItemCommentCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

// Handle fails with NotFound, Forbidden or Locked, in that order of checks.
func (h *SetItemCommentCommandHandler) Handle(ctx context.Context, cmd SetItemCommentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.CanComment(cmd.Caller(), o); err != nil {
		return err
	}

	if err = o.CommentItem(cmd.ItemName(), cmd.Comment(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
