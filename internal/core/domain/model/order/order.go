package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrOwnerIsRequired = errs.NewValueIsRequiredError("owner")
)

// Order is the aggregate root of the cafe: a header owned by a customer login plus the
// line items attached to it.
//
// Order follows these invariants:
//   - Must have a positive, allocator-issued ID and a non-empty owner login
//   - Total equals the sum of the line item unit prices
//   - Line items are attached only while the order is unpaid
//   - Comments are accepted only on NotStarted items of an unpaid order
//
// Every accepted state change records a DomainEvent that the unit of work drains into the outbox.
type Order struct {
	// id is the allocated order number
	id ID

	// owner is the login of the customer the order belongs to
	owner string

	createdAt time.Time

	// paid closes the order for new items and comments
	paid bool

	// total is kept in sync with items by recomputeTotal
	total kernel.Money

	items []*LineItem

	domainEvents []DomainEvent

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an unpaid, empty order and records OrderPlaced.
//
// Parameters:
//   - id: number issued by the identity allocator (must be positive)
//   - owner: customer login the order belongs to
//   - now: creation timestamp
//
// Example:
//
//	o, err := order.NewOrder(42, "alice", time.Now().UTC())
//	if err != nil {
//	    // Handle validation error
//	}
//	_, err = o.AttachItem(kernel.NewUUID(), "Latte", latte, time.Now().UTC())
func NewOrder(id ID, owner string, now time.Time) (*Order, error) {
	order := &Order{
		createdAt:     now,
		total:         kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwner(owner),
	); err != nil {
		return nil, err
	}

	order.raise(OrderPlaced{OrderID: order.id, Owner: order.owner, At: now})
	return order, nil
}

// RestoreOrder rebuilds an order from storage without recording events. The stored total
// is kept as is; RecomputeTotal re-derives it from the items.
func RestoreOrder(id ID, owner string, createdAt time.Time, paid bool, total kernel.Money, items []*LineItem) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		paid:          paid,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwner(owner),
		order.setTotal(total),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() ID {
	return o.id
}

func (o *Order) Owner() string {
	return o.owner
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) IsPaid() bool {
	return o.paid
}

func (o *Order) Total() kernel.Money {
	return o.total
}

// Items returns the line items in attach order. The slice is a copy; the items are not.
func (o *Order) Items() []*LineItem {
	items := make([]*LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ItemsNamed returns every line item whose name matches itemName exactly.
func (o *Order) ItemsNamed(itemName string) []*LineItem {
	var matched []*LineItem
	for _, item := range o.items {
		if item.itemName == itemName {
			matched = append(matched, item)
		}
	}
	return matched
}

// AttachItem adds a NotStarted line item priced at unitPrice and updates the total.
//
// Returns:
//   - *LineItem: the attached item
//   - error: OrderClosedError if the order is paid, a validation error otherwise
//
// Attaching a name that is already on the order creates a second, independent line item.
func (o *Order) AttachItem(lineItemID kernel.UUID, itemName string, unitPrice kernel.Money, now time.Time) (*LineItem, error) {
	if o.paid {
		return nil, errs.NewOrderClosedError(o.id)
	}

	item, err := NewLineItem(lineItemID, itemName, unitPrice, now)
	if err != nil {
		return nil, err
	}

	o.items = append(o.items, item)
	o.recomputeTotal()

	o.raise(ItemAttached{
		OrderID:    o.id,
		LineItemID: item.id.String(),
		ItemName:   item.itemName,
		UnitPrice:  item.unitPrice.String(),
		Total:      o.total.String(),
		At:         now,
	})
	return item, nil
}

// RecomputeTotal re-derives the total from the line items and returns it.
// It is idempotent and does not record an event.
func (o *Order) RecomputeTotal() kernel.Money {
	o.recomputeTotal()
	return o.total
}

// SetPaymentStatus sets the paid flag. Setting the current value again is a no-op and
// returns false.
func (o *Order) SetPaymentStatus(paid bool, now time.Time) bool {
	if o.paid == paid {
		return false
	}
	o.paid = paid
	o.raise(PaymentStatusChanged{OrderID: o.id, Paid: paid, Total: o.total.String(), At: now})
	return true
}

// SetItemStatus writes status to every line item named itemName.
//
// A write stamped earlier than an item's last accepted write is ignored for that item,
// so concurrent writers converge on the latest timestamp. Any valid status may follow
// any other.
//
// Returns:
//   - int: number of line items the write was applied to
//   - error: ObjectNotFoundError if no line item has that name, a validation error for
//     an invalid status
func (o *Order) SetItemStatus(itemName string, status ItemStatus, at time.Time) (int, error) {
	if err := status.Validate(); err != nil {
		return 0, err
	}

	matched := o.ItemsNamed(itemName)
	if len(matched) == 0 {
		return 0, errs.NewObjectNotFoundError("line item", lineItemKey(o.id, itemName))
	}

	applied := 0
	for _, item := range matched {
		if item.applyStatus(status, at) {
			applied++
		}
	}

	if applied > 0 {
		o.raise(ItemStatusChanged{
			OrderID:  o.id,
			ItemName: itemName,
			Status:   status.String(),
			Applied:  applied,
			At:       at,
		})
	}
	return applied, nil
}

// CommentItem sets the comment of every NotStarted line item named itemName.
//
// Returns:
//   - ObjectNotFoundError if no line item has that name
//   - LockedError if the order is paid or none of the matching items is NotStarted
//   - a validation error if the comment is too long
func (o *Order) CommentItem(itemName, comment string, at time.Time) error {
	if err := ValidateComment(comment); err != nil {
		return err
	}

	matched := o.ItemsNamed(itemName)
	if len(matched) == 0 {
		return errs.NewObjectNotFoundError("line item", lineItemKey(o.id, itemName))
	}

	if o.paid {
		return errs.NewLockedErrorWithCause(itemName, errs.NewOrderClosedError(o.id))
	}

	var open []*LineItem
	for _, item := range matched {
		if item.status.AcceptsComments() {
			open = append(open, item)
		}
	}
	if len(open) == 0 {
		return errs.NewLockedErrorWithCause(itemName, fmt.Errorf("item is %s", matched[0].status))
	}

	for _, item := range open {
		item.applyComment(comment, at)
	}

	o.raise(ItemCommented{OrderID: o.id, ItemName: itemName, Comment: comment, At: at})
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(o.domainEvents))
	copy(events, o.domainEvents)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) recomputeTotal() {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.unitPrice)
	}
	o.total = total
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwner(owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return ErrOwnerIsRequired
	}
	o.owner = owner
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}

func (o *Order) setItems(items []*LineItem) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
	}
	o.items = make([]*LineItem, len(items))
	copy(o.items, items)
	return nil
}

func lineItemKey(id ID, itemName string) string {
	return fmt.Sprintf("order %s item %s", id, itemName)
}
