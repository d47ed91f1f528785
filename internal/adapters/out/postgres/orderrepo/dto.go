// Package orderrepo persists the Order aggregate: one row in orders plus one row per
// line item in line_items.
package orderrepo

import (
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Items are loaded through the OrderID foreign key.
type OrderDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement:false"`
	Owner     string          `gorm:"type:varchar(50);not null;index:orders_owner_id_idx"`
	CreatedAt time.Time       `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	Paid      bool            `gorm:"not null;default:false"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Items     []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is the line_items row.
type LineItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   int64           `gorm:"not null;index:line_items_order_idx"`
	ItemName  string          `gorm:"type:varchar(50);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status    string          `gorm:"type:varchar(16);not null"`
	Comment   string          `gorm:"type:varchar(255);not null;default:''"`
	AddedAt   time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time       `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (LineItemDTO) TableName() string {
	return "line_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	dtos := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, lineItemFromDomain(aggregate.ID(), item))
	}

	return OrderDTO{
		ID:        aggregate.ID().Int64(),
		Owner:     aggregate.Owner(),
		CreatedAt: aggregate.CreatedAt().UTC(),
		Paid:      aggregate.IsPaid(),
		Total:     aggregate.Total().Amount(),
		Items:     dtos,
	}
}

func lineItemFromDomain(orderID order.ID, item *order.LineItem) LineItemDTO {
	return LineItemDTO{
		ID:        item.ID().Bytes(),
		OrderID:   orderID.Int64(),
		ItemName:  item.ItemName(),
		UnitPrice: item.UnitPrice().Amount(),
		Status:    item.Status().String(),
		Comment:   item.Comment(),
		AddedAt:   item.AddedAt().UTC(),
		UpdatedAt: item.UpdatedAt().UTC(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Stored statuses go through
// ParseItemStatus, so rows written with legacy spellings still load.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := order.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := lineItemToDomain(itemDTO)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", dto.ID, err)
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, dto.Owner, dto.CreatedAt.UTC(), dto.Paid, total, items)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseItemStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreLineItem(id, dto.ItemName, price, status, dto.Comment, dto.AddedAt.UTC(), dto.UpdatedAt.UTC())
}
