// Package menurepo reads menu items for pricing. The menu itself is maintained outside the order core.
package menurepo

import (
	"context"
	"errors"
	"strings"

	"cafe/internal/adapters/out/postgres/pgerr"
	"cafe/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItemDTO struct {
	Name        string          `gorm:"type:varchar(50);primaryKey"`
	Category    string          `gorm:"type:varchar(50);not null;default:''"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	ImageURL    string          `gorm:"column:image_url;type:text;not null;default:''"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormMenuCatalog implements ports.MenuCatalog.
type GormMenuCatalog struct {
	db *gorm.DB
}

func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// Lookup returns the price of itemName. Names match exactly after trimming.
func (c *GormMenuCatalog) Lookup(ctx context.Context, itemName string) (kernel.Money, bool, error) {
	var dto MenuItemDTO
	err := c.db.WithContext(ctx).First(&dto, "name = ?", strings.TrimSpace(itemName)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kernel.Money{}, false, nil
	}
	if err != nil {
		return kernel.Money{}, false, pgerr.Classify("look up menu item", err)
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return kernel.Money{}, false, err
	}
	return price, true, nil
}
