package commands

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/services"
)

// RecomputeTotalCommandHandler repairs or confirms a stored total. Running it twice
// in a row returns the same amount.
type RecomputeTotalCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
}

func NewRecomputeTotalCommandHandler(uowFactory OrderUoWFactory) RecomputeTotalCommandHandler {
	return RecomputeTotalCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

func (h *RecomputeTotalCommandHandler) Handle(ctx context.Context, cmd RecomputeTotalCommand) (kernel.Money, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Money{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.Money{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return kernel.Money{}, err
	}

	if err = h.policy.CanRecomputeTotal(cmd.Caller(), o); err != nil {
		return kernel.Money{}, err
	}

	total := o.RecomputeTotal()

	if err = orderRepo.Update(ctx, o); err != nil {
		return kernel.Money{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Money{}, err
	}

	return total, nil
}
