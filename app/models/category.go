package models

import (
	"time"
)

type Category struct {
	ID          uint         `gorm:"primaryKey"`
	Name        string       `gorm:"size:200;not null"`
	Slug        string       `gorm:"size:200;not null;uniqueIndex"`
	Description string       `gorm:"type:text"`
	Controllers []Controller `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
