package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is matched by every validation error of this package.
	ErrInvalidInput = errors.New("invalid input")

	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrForbidden          = errors.New("forbidden")
	ErrOrderClosed        = errors.New("order is closed")
	ErrLocked             = errors.New("item is locked")
	ErrAllocationFailed   = errors.New("order id allocation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ObjectNotFoundError reports that an entity identified by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a validation rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

func (e *ValueIsInvalidError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

func (e *ValueIsOutOfRangeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValueIsRequiredError reports a missing or empty value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

func (e *ValueIsRequiredError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ItemNotFoundError reports a menu catalog miss.
type ItemNotFoundError struct {
	ItemName string
	Cause    error
}

func NewItemNotFoundError(itemName string) *ItemNotFoundError {
	return &ItemNotFoundError{ItemName: itemName}
}

func NewItemNotFoundErrorWithCause(itemName string, cause error) *ItemNotFoundError {
	return &ItemNotFoundError{ItemName: itemName, Cause: cause}
}

func (e *ItemNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrItemNotFound, sanitize(e.ItemName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrItemNotFound, sanitize(e.ItemName))
}

func (e *ItemNotFoundError) Unwrap() error {
	return ErrItemNotFound
}

// ForbiddenError reports that Login is not allowed to perform Action.
type ForbiddenError struct {
	Login  string
	Action string
	Cause  error
}

func NewForbiddenError(login, action string) *ForbiddenError {
	return &ForbiddenError{Login: login, Action: action}
}

func NewForbiddenErrorWithCause(login, action string, cause error) *ForbiddenError {
	return &ForbiddenError{Login: login, Action: action, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	msg := fmt.Sprintf("%s: %s cannot %s", ErrForbidden, sanitize(e.Login), e.Action)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// OrderClosedError reports a mutation attempted on a paid order.
type OrderClosedError struct {
	OrderID any
}

func NewOrderClosedError(orderID any) *OrderClosedError {
	return &OrderClosedError{OrderID: orderID}
}

func (e *OrderClosedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrOrderClosed, e.OrderID)
}

func (e *OrderClosedError) Unwrap() error {
	return ErrOrderClosed
}

// LockedError reports a line item that can no longer be commented on.
type LockedError struct {
	ItemName string
	Cause    error
}

func NewLockedError(itemName string) *LockedError {
	return &LockedError{ItemName: itemName}
}

func NewLockedErrorWithCause(itemName string, cause error) *LockedError {
	return &LockedError{ItemName: itemName, Cause: cause}
}

func (e *LockedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrLocked, sanitize(e.ItemName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrLocked, sanitize(e.ItemName))
}

func (e *LockedError) Unwrap() error {
	return ErrLocked
}

// AllocationFailedError reports that the identity allocator could not produce an id.
type AllocationFailedError struct {
	Cause error
}

func NewAllocationFailedError(cause error) *AllocationFailedError {
	return &AllocationFailedError{Cause: cause}
}

func (e *AllocationFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", ErrAllocationFailed, e.Cause)
	}
	return ErrAllocationFailed.Error()
}

func (e *AllocationFailedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrAllocationFailed, e.Cause}
	}
	return []error{ErrAllocationFailed}
}

// StorageUnavailableError reports a failed storage round-trip. Operation names
// what was being done when the failure happened.
type StorageUnavailableError struct {
	Operation string
	Cause     error
}

func NewStorageUnavailableError(operation string) *StorageUnavailableError {
	return &StorageUnavailableError{Operation: operation}
}

func NewStorageUnavailableErrorWithCause(operation string, cause error) *StorageUnavailableError {
	return &StorageUnavailableError{Operation: operation, Cause: cause}
}

func (e *StorageUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrStorageUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrStorageUnavailable, e.Operation)
}

// Unwrap exposes both the kind and the driver error, so callers can inspect either.
func (e *StorageUnavailableError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStorageUnavailable, e.Cause}
	}
	return []error{ErrStorageUnavailable}
}

// sanitize flattens multi-line values so that user supplied text cannot forge log lines.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
