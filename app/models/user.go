package models

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:100;not null;uniqueIndex"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:20;default:'customer';not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
