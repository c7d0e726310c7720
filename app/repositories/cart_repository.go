package repositories

import (
	"context"
	"errors"

	"github.com/gamectrl/storefront/app/models"
	"gorm.io/gorm"
)

type CartRepositoryImpl interface {
	GetOrCreateByUserID(ctx context.Context, userID uint) (*models.Cart, error)
	GetWithItems(ctx context.Context, cartID uint) (*models.Cart, error)
	GetItemCount(ctx context.Context, userID uint) (int, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

// GetOrCreateByUserID returns the user's cart, creating an empty one on
// first use. The unique index on user_id keeps concurrent first requests
// from producing two carts; on a duplicate-key race the existing row wins.
func (r *cartRepository) GetOrCreateByUserID(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		var retryErr error
		if retryErr = r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error; retryErr == nil {
			return &cart, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetWithItems(ctx context.Context, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at") }).
		Preload("Items.Controller").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetItemCount(ctx context.Context, userID uint) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Select("SUM(cart_items.quantity)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
