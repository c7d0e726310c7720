package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds one user's pending items. Created lazily on first view/add,
// one row per user. Totals are derived from the items, never stored.
type Cart struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;uniqueIndex"`
	User      User       `gorm:"foreignKey:UserID"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TotalPrice sums price*quantity over the loaded items in decimal.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}

// TotalQuantity sums the quantities over the loaded items.
func (c *Cart) TotalQuantity() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}
