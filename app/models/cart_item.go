package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (controller, quantity) line within a cart. A quantity of
// zero is never persisted; the row is deleted instead.
type CartItem struct {
	ID           uint       `gorm:"primaryKey"`
	CartID       uint       `gorm:"not null;uniqueIndex:idx_cart_controller"`
	Cart         *Cart      `gorm:"foreignKey:CartID"`
	ControllerID uint       `gorm:"not null;uniqueIndex:idx_cart_controller"`
	Controller   Controller `gorm:"foreignKey:ControllerID"`
	Quantity     int        `gorm:"not null;check:quantity >= 0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalPrice is the controller price times the quantity. Requires the
// Controller association to be loaded. Value receiver so templates can
// call it on ranged items.
func (ci CartItem) TotalPrice() decimal.Decimal {
	return ci.Controller.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
