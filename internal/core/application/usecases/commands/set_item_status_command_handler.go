package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/services"
)

// SetItemStatusCommandHandler applies status writes from staff.
//
// The write is stamped when the handler runs. Under the order row lock, a write whose
// stamp is older than the item's last accepted write is dropped, so racing writers to
// the same item converge on the latest one.
type SetItemStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
}

func NewSetItemStatusCommandHandler(uowFactory OrderUoWFactory) SetItemStatusCommandHandler {
	return SetItemStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

func (h *SetItemStatusCommandHandler) Handle(ctx context.Context, cmd SetItemStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.CanSetItemStatus(cmd.Caller()); err != nil {
		return err
	}

	at := time.Now().UTC()

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

	applied, err := o.SetItemStatus(cmd.ItemName(), cmd.Status(), at)
	if err != nil {
		return err
	}
	if applied == 0 {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
