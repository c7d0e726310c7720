package migrations

import (
	"github.com/gamectrl/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Category{}, &models.Controller{}, &models.Cart{}, &models.CartItem{})
}
