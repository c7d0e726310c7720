package repositories

import (
	"context"
	"errors"

	"github.com/gamectrl/storefront/app/models"
	"gorm.io/gorm"
)

type CartItemRepositoryImpl interface {
	Add(ctx context.Context, item *models.CartItem) error
	Update(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, item *models.CartItem) error
	// GetOwnedByUser loads an item only when it belongs to the given user's
	// cart. A foreign item id behaves like a nonexistent one.
	GetOwnedByUser(ctx context.Context, itemID, userID uint) (*models.CartItem, error)
}

type cartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &cartItemRepository{db}
}

func (r *cartItemRepository) Add(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartItemRepository) Update(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartItemRepository) Delete(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *cartItemRepository) GetOwnedByUser(ctx context.Context, itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
