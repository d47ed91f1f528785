package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"
)

// AddItemToOpenOrderCommandHandler attaches items to existing orders.
//
// The order row is locked for the whole transaction, so two attaches to the same
// order run one after the other and both end up in the total.
type AddItemToOpenOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	menu       ports.MenuCatalog
	policy     services.OrderAccessPolicy
}

func NewAddItemToOpenOrderCommandHandler(uowFactory OrderUoWFactory, menu ports.MenuCatalog) AddItemToOpenOrderCommandHandler {
	return AddItemToOpenOrderCommandHandler{
		uowFactory: uowFactory,
		menu:       menu,
		policy:     services.NewOrderAccessPolicy(),
	}
}

// Handle returns the new total. Errors, in check order: NotFound, Forbidden,
// OrderClosed, ItemNotFound.
func (h *AddItemToOpenOrderCommandHandler) Handle(ctx context.Context, cmd AddItemToOpenOrderCommand) (kernel.Money, error) {
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

	if err = h.policy.CanAddItem(cmd.Caller(), o); err != nil {
		return kernel.Money{}, err
	}

	if o.IsPaid() {
		return kernel.Money{}, errs.NewOrderClosedError(o.ID())
	}

	price, found, err := h.menu.Lookup(ctx, cmd.ItemName())
	if err != nil {
		return kernel.Money{}, err
	}
	if !found {
		return kernel.Money{}, errs.NewItemNotFoundError(cmd.ItemName())
	}

	if _, err = o.AttachItem(kernel.NewUUID(), cmd.ItemName(), price, time.Now().UTC()); err != nil {
		return kernel.Money{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return kernel.Money{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Money{}, err
	}

	return o.Total(), nil
}
