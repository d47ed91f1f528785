package order

import (
	"fmt"
	"strconv"

	"cafe/internal/pkg/errs"
)

// ID is the order number handed out by the identity allocator. Valid IDs are positive.
type ID int64

// NewID validates a raw order number, for example one parsed from a request path.
func NewID(value int64) (ID, error) {
	id := ID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal order number.
func ParseID(s string) (ID, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return NewID(value)
}

// Validate rejects zero and negative ids.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
