package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"
)

// PlaceFirstItemResult is the allocated order number and the order's total.
type PlaceFirstItemResult struct {
	OrderID order.ID
	Total   kernel.Money
}

// PlaceFirstItemCommandHandler opens orders.
//
// Checks run before anything is written, in this order: caller rights, owner existence
// (when staff place on behalf of someone), menu lookup. Number allocation, the order
// row and its first line item then share one transaction.
type PlaceFirstItemCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	menu       ports.MenuCatalog
	users      ports.UserDirectory
	policy     services.OrderAccessPolicy
}

func NewPlaceFirstItemCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	menu ports.MenuCatalog,
	users ports.UserDirectory,
) PlaceFirstItemCommandHandler {
	return PlaceFirstItemCommandHandler{
		uowFactory: uowFactory,
		menu:       menu,
		users:      users,
		policy:     services.NewOrderAccessPolicy(),
	}
}

// Handle returns the new order number and total, or an error without side effects.
func (h *PlaceFirstItemCommandHandler) Handle(ctx context.Context, cmd PlaceFirstItemCommand) (PlaceFirstItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceFirstItemResult{}, err
	}

	caller := cmd.Caller()
	if err := h.policy.CanPlaceOrderFor(caller, cmd.Owner()); err != nil {
		return PlaceFirstItemResult{}, err
	}

	if !caller.Owns(cmd.Owner()) {
		exists, err := h.users.Exists(ctx, cmd.Owner())
		if err != nil {
			return PlaceFirstItemResult{}, err
		}
		if !exists {
			return PlaceFirstItemResult{}, errs.NewObjectNotFoundError("user", cmd.Owner())
		}
	}

	price, found, err := h.menu.Lookup(ctx, cmd.ItemName())
	if err != nil {
		return PlaceFirstItemResult{}, err
	}
	if !found {
		return PlaceFirstItemResult{}, errs.NewItemNotFoundError(cmd.ItemName())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceFirstItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	id, err := uow.OrderIDAllocator().Allocate(ctx)
	if err != nil {
		return PlaceFirstItemResult{}, err
	}

	now := time.Now().UTC()
	o, err := order.NewOrder(id, cmd.Owner(), now)
	if err != nil {
		return PlaceFirstItemResult{}, err
	}

	if _, err = o.AttachItem(kernel.NewUUID(), cmd.ItemName(), price, now); err != nil {
		return PlaceFirstItemResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return PlaceFirstItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceFirstItemResult{}, err
	}

	return PlaceFirstItemResult{OrderID: o.ID(), Total: o.Total()}, nil
}
