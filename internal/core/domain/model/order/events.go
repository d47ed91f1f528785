package order

import "time"

// DomainEvent is a fact recorded by the Order aggregate. Events are collected on the
// aggregate and written to the outbox in the same transaction as the state change.
type DomainEvent interface {
	EventName() string
	AggregateID() ID
	OccurredAt() time.Time
}

const (
	OrderPlacedEventName          = "order.placed"
	ItemAttachedEventName         = "order.item_attached"
	ItemStatusChangedEventName    = "order.item_status_changed"
	ItemCommentedEventName        = "order.item_commented"
	PaymentStatusChangedEventName = "order.payment_status_changed"
)

type OrderPlaced struct {
	OrderID ID        `json:"order_id"`
	Owner   string    `json:"owner"`
	At      time.Time `json:"occurred_at"`
}

func (e OrderPlaced) EventName() string     { return OrderPlacedEventName }
func (e OrderPlaced) AggregateID() ID       { return e.OrderID }
func (e OrderPlaced) OccurredAt() time.Time { return e.At }

type ItemAttached struct {
	OrderID    ID        `json:"order_id"`
	LineItemID string    `json:"line_item_id"`
	ItemName   string    `json:"item_name"`
	UnitPrice  string    `json:"unit_price"`
	Total      string    `json:"total"`
	At         time.Time `json:"occurred_at"`
}

func (e ItemAttached) EventName() string     { return ItemAttachedEventName }
func (e ItemAttached) AggregateID() ID       { return e.OrderID }
func (e ItemAttached) OccurredAt() time.Time { return e.At }

type ItemStatusChanged struct {
	OrderID  ID        `json:"order_id"`
	ItemName string    `json:"item_name"`
	Status   string    `json:"status"`
	Applied  int       `json:"applied"`
	At       time.Time `json:"occurred_at"`
}

func (e ItemStatusChanged) EventName() string     { return ItemStatusChangedEventName }
func (e ItemStatusChanged) AggregateID() ID       { return e.OrderID }
func (e ItemStatusChanged) OccurredAt() time.Time { return e.At }

type ItemCommented struct {
	OrderID  ID        `json:"order_id"`
	ItemName string    `json:"item_name"`
	Comment  string    `json:"comment"`
	At       time.Time `json:"occurred_at"`
}

func (e ItemCommented) EventName() string     { return ItemCommentedEventName }
func (e ItemCommented) AggregateID() ID       { return e.OrderID }
func (e ItemCommented) OccurredAt() time.Time { return e.At }

type PaymentStatusChanged struct {
	OrderID ID        `json:"order_id"`
	Paid    bool      `json:"paid"`
	Total   string    `json:"total"`
	At      time.Time `json:"occurred_at"`
}

func (e PaymentStatusChanged) EventName() string     { return PaymentStatusChangedEventName }
func (e PaymentStatusChanged) AggregateID() ID       { return e.OrderID }
func (e PaymentStatusChanged) OccurredAt() time.Time { return e.At }
