package queries

import (
	"errors"
	"time"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

const (
	// DefaultOpenOrdersMaxAgeHours is the window of the open-orders board: one business day.
	DefaultOpenOrdersMaxAgeHours = 24
	MaxOpenOrdersMaxAgeHours     = 24 * 365
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery lists unpaid orders created within the last maxAgeHours hours.
//
// Example:
//
//	query, err := NewGetOpenOrdersQuery(employee, DefaultOpenOrdersMaxAgeHours)
//	open, err := handler.Handle(ctx, query)
type GetOpenOrdersQuery struct { //nolint:recvcheck //using for validation
	caller      access.Caller
	maxAgeHours int

	guard guard.ConstructorGuard
}

func NewGetOpenOrdersQuery(caller access.Caller, maxAgeHours int) (GetOpenOrdersQuery, error) {
	query := GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		caller.Validate(),
		query.setMaxAgeHours(maxAgeHours),
	); err != nil {
		return GetOpenOrdersQuery{}, err
	}
	query.caller = caller

	return query, nil
}

func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

func (q GetOpenOrdersQuery) Caller() access.Caller {
	return q.caller
}

func (q GetOpenOrdersQuery) MaxAge() time.Duration {
	return time.Duration(q.maxAgeHours) * time.Hour
}

func (q *GetOpenOrdersQuery) setMaxAgeHours(hours int) error {
	if hours <= 0 || hours > MaxOpenOrdersMaxAgeHours {
		return errs.NewValueIsOutOfRangeError("max age hours", hours, 1, MaxOpenOrdersMaxAgeHours)
	}
	q.maxAgeHours = hours
	return nil
}
