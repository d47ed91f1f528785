package services

import (
	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"
)

// OrderAccessPolicy is a domain service deciding which caller may perform which
// order operation.
//
// Business rules:
//   - Customers place orders for themselves only; staff may place on behalf of a customer
//   - Only the owner may add items to an open order
//   - Item status and payment status are staff capabilities
//   - Comments, status views and total recomputation are open to the owner and to staff
//   - Order history of another login and the open-orders board are staff only
//
// Example usage:
//
//	policy := services.NewOrderAccessPolicy()
//	if err := policy.CanSetItemStatus(caller); err != nil {
//	    return err // errs.ErrForbidden
//	}
type OrderAccessPolicy struct{}

// NewOrderAccessPolicy creates a new OrderAccessPolicy instance.
func NewOrderAccessPolicy() OrderAccessPolicy {
	return OrderAccessPolicy{}
}

// CanPlaceOrderFor checks that caller may open an order owned by ownerLogin.
func (p OrderAccessPolicy) CanPlaceOrderFor(caller access.Caller, ownerLogin string) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if caller.IsStaff() || caller.Owns(ownerLogin) {
		return nil
	}
	return errs.NewForbiddenError(caller.Login(), "place an order for "+ownerLogin)
}

// CanAddItem checks that caller owns o.
func (p OrderAccessPolicy) CanAddItem(caller access.Caller, o *order.Order) error {
	if err := p.validate(caller, o); err != nil {
		return err
	}
	if caller.Owns(o.Owner()) {
		return nil
	}
	return errs.NewForbiddenError(caller.Login(), "add items to order "+o.ID().String())
}

func (p OrderAccessPolicy) CanSetItemStatus(caller access.Caller) error {
	return p.requireStaff(caller, "set item status")
}

func (p OrderAccessPolicy) CanSetPaymentStatus(caller access.Caller) error {
	return p.requireStaff(caller, "set payment status")
}

func (p OrderAccessPolicy) CanViewOpenOrders(caller access.Caller) error {
	return p.requireStaff(caller, "view open orders")
}

// CanComment checks that caller owns o or is staff.
func (p OrderAccessPolicy) CanComment(caller access.Caller, o *order.Order) error {
	return p.requireOwnerOrStaff(caller, o, "comment on order")
}

// CanViewOrder checks that caller owns o or is staff.
func (p OrderAccessPolicy) CanViewOrder(caller access.Caller, o *order.Order) error {
	return p.requireOwnerOrStaff(caller, o, "view order")
}

// CanViewStatusOf is CanViewOrder for read models that only carry the order's id and owner.
func (p OrderAccessPolicy) CanViewStatusOf(caller access.Caller, id order.ID, ownerLogin string) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if caller.IsStaff() || caller.Owns(ownerLogin) {
		return nil
	}
	return errs.NewForbiddenError(caller.Login(), "view order "+id.String())
}

// CanRecomputeTotal checks that caller owns o or is staff.
func (p OrderAccessPolicy) CanRecomputeTotal(caller access.Caller, o *order.Order) error {
	return p.requireOwnerOrStaff(caller, o, "recompute total of order")
}

// CanViewHistoryOf checks that caller may list the orders of login.
func (p OrderAccessPolicy) CanViewHistoryOf(caller access.Caller, login string) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if caller.IsStaff() || caller.Owns(login) {
		return nil
	}
	return errs.NewForbiddenError(caller.Login(), "view order history of "+login)
}

func (p OrderAccessPolicy) requireStaff(caller access.Caller, action string) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if !caller.IsStaff() {
		return errs.NewForbiddenError(caller.Login(), action)
	}
	return nil
}

func (p OrderAccessPolicy) requireOwnerOrStaff(caller access.Caller, o *order.Order, action string) error {
	if err := p.validate(caller, o); err != nil {
		return err
	}
	if caller.IsStaff() || caller.Owns(o.Owner()) {
		return nil
	}
	return errs.NewForbiddenError(caller.Login(), action+" "+o.ID().String())
}

func (p OrderAccessPolicy) validate(caller access.Caller, o *order.Order) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	return o.Validate()
}
