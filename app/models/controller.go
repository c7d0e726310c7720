package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Controller is the product sold by the store: a game controller.
type Controller struct {
	ID          uint            `gorm:"primaryKey"`
	CategoryID  uint            `gorm:"index;not null"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	Name        string          `gorm:"size:200;not null;index"`
	Slug        string          `gorm:"size:200;not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Available   bool            `gorm:"default:true"`
	IsFeatured  bool            `gorm:"default:false"`
	Image       string          `gorm:"size:255"`
	Stock       *int            `gorm:"default:null"`
	CreatedAt   time.Time       `gorm:"index"`
	UpdatedAt   time.Time
}
