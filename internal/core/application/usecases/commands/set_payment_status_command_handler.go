package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/services"
)

// SetPaymentStatusCommandHandler settles orders. Only staff may call it; a customer is
// refused before the order is even loaded.
type SetPaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
}

func NewSetPaymentStatusCommandHandler(uowFactory OrderUoWFactory) SetPaymentStatusCommandHandler {
	return SetPaymentStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

// Handle sets the flag. Setting the value the order already has writes nothing.
func (h *SetPaymentStatusCommandHandler) Handle(ctx context.Context, cmd SetPaymentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.CanSetPaymentStatus(cmd.Caller()); err != nil {
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

	if !o.SetPaymentStatus(cmd.Paid(), time.Now().UTC()) {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
