package order

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

const (
	// MaxItemNameLength matches the width of the menu item name column.
	MaxItemNameLength = 50

	// MaxCommentLength bounds free-text preparation notes.
	MaxCommentLength = 255
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem or RestoreLineItem")

// LineItem is one menu item attached to an order. The unit price is captured at attach
// time, so later menu price changes do not affect the order total.
//
// LineItem is an entity inside the Order aggregate. Its status and comment change only
// through Order methods so that the aggregate can enforce its locking rules.
type LineItem struct {
	id        kernel.UUID
	itemName  string
	unitPrice kernel.Money
	status    ItemStatus
	comment   string
	addedAt   time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewLineItem creates a NotStarted line item with an empty comment.
func NewLineItem(id kernel.UUID, itemName string, unitPrice kernel.Money, now time.Time) (*LineItem, error) {
	item := &LineItem{
		status:        NotStarted,
		addedAt:       now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setItemName(itemName),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem rebuilds a line item from storage.
func RestoreLineItem(
	id kernel.UUID,
	itemName string,
	unitPrice kernel.Money,
	status ItemStatus,
	comment string,
	addedAt time.Time,
	updatedAt time.Time,
) (*LineItem, error) {
	item := &LineItem{
		comment:       comment,
		addedAt:       addedAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setItemName(itemName),
		item.setUnitPrice(unitPrice),
		item.setStatus(status),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (li *LineItem) ID() kernel.UUID {
	return li.id
}

func (li *LineItem) ItemName() string {
	return li.itemName
}

func (li *LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

func (li *LineItem) Status() ItemStatus {
	return li.status
}

func (li *LineItem) Comment() string {
	return li.comment
}

func (li *LineItem) AddedAt() time.Time {
	return li.addedAt
}

// UpdatedAt is the timestamp of the last accepted status or comment write.
func (li *LineItem) UpdatedAt() time.Time {
	return li.updatedAt
}

// applyStatus records status unless a newer write has already been accepted.
// Equal timestamps are applied, so the later writer in commit order wins.
func (li *LineItem) applyStatus(status ItemStatus, at time.Time) bool {
	if at.Before(li.updatedAt) {
		return false
	}
	li.status = status
	li.updatedAt = at
	return true
}

func (li *LineItem) applyComment(comment string, at time.Time) {
	li.comment = comment
	if at.After(li.updatedAt) {
		li.updatedAt = at
	}
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setItemName(itemName string) error {
	name, err := NormalizeItemName(itemName)
	if err != nil {
		return err
	}
	li.itemName = name
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	li.unitPrice = unitPrice
	return nil
}

func (li *LineItem) setStatus(status ItemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	li.status = status
	return nil
}

// NormalizeItemName trims surrounding whitespace and checks the result is a usable menu item name.
func NormalizeItemName(itemName string) (string, error) {
	name := strings.TrimSpace(itemName)
	if name == "" {
		return "", errs.NewValueIsRequiredError("item name")
	}
	if n := utf8.RuneCountInString(name); n > MaxItemNameLength {
		return "", errs.NewValueIsOutOfRangeError("item name length", n, 1, MaxItemNameLength)
	}
	return name, nil
}

// ValidateComment checks the length of a preparation note. Empty comments are allowed and clear the note.
func ValidateComment(comment string) error {
	if n := utf8.RuneCountInString(comment); n > MaxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", n, 0, MaxCommentLength)
	}
	return nil
}
