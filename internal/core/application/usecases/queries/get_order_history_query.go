package queries

import (
	"errors"
	"strings"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

// OrderHistoryLimit is how many of the most recent orders a history lists.
const OrderHistoryLimit = 5

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists the most recent orders of a login, newest first.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(caller, "alice")
//	orders, err := handler.Handle(ctx, query)
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	caller access.Caller
	owner  string

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(caller access.Caller, owner string) (GetOrderHistoryQuery, error) {
	query := GetOrderHistoryQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setCaller(caller),
		query.setOwner(owner),
	); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return query, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) Caller() access.Caller {
	return q.caller
}

func (q GetOrderHistoryQuery) Owner() string {
	return q.owner
}

func (q *GetOrderHistoryQuery) setCaller(caller access.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	q.caller = caller
	return nil
}

func (q *GetOrderHistoryQuery) setOwner(owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return errs.NewValueIsRequiredError("owner")
	}
	q.owner = owner
	return nil
}
