package queries

import (
	"errors"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery reads the preparation status of every item of one order.
type GetOrderStatusQuery struct { //nolint:recvcheck //using for validation
	caller  access.Caller
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(caller access.Caller, orderID order.ID) (GetOrderStatusQuery, error) {
	query := GetOrderStatusQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		caller.Validate(),
		orderID.Validate(),
	); err != nil {
		return GetOrderStatusQuery{}, err
	}
	query.caller = caller
	query.orderID = orderID

	return query, nil
}

func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) Caller() access.Caller {
	return q.caller
}

func (q GetOrderStatusQuery) OrderID() order.ID {
	return q.orderID
}
