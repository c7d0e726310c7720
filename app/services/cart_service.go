package services

import (
	"context"
	"fmt"

	"github.com/gamectrl/storefront/app/models"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/gamectrl/storefront/app/validators"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartService orchestrates validator and store for cart mutations. Every
// mutation path returns one of the validators sentinels (or a wrapped store
// error) so the handler layer can decide between 404 and the uniform
// redirect.
type CartService struct {
	db           *gorm.DB
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	ctrlRepo     repositories.ControllerRepositoryImpl
	validator    *validators.CartValidator
}

func NewCartService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	ctrlRepo repositories.ControllerRepositoryImpl,
	validator *validators.CartValidator,
) *CartService {
	return &CartService{
		db:           db,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		ctrlRepo:     ctrlRepo,
		validator:    validator,
	}
}

// GetUserCart returns the user's cart with items and controllers loaded,
// creating an empty cart on first use.
func (s *CartService) GetUserCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	detailed, err := s.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if detailed == nil {
		return cart, nil
	}
	return detailed, nil
}

// AddItem adds qty of a controller to the user's cart, merging into an
// existing line when one exists. Increments are applied as atomic
// quantity = quantity + n expressions, and first-time inserts upsert on the
// (cart_id, controller_id) unique key, so two concurrent adds of 1 end as
// quantity 2, never as a lost increment or a duplicate line.
func (s *CartService) AddItem(ctx context.Context, userID, controllerID uint, qty int) error {
	if qty == 0 {
		// Zero quantities are never persisted.
		return nil
	}

	controller, err := s.ctrlRepo.GetByID(ctx, controllerID)
	if err != nil {
		return fmt.Errorf("failed to look up controller %d: %w", controllerID, err)
	}
	if controller == nil {
		return validators.ErrControllerNotFound
	}
	if err := s.validator.Controller(controller); err != nil {
		return err
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get or create cart: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		err := tx.Preload("Controller").
			Where("cart_id = ?", cart.ID).
			Find(&items).Error
		if err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		cart.Items = items

		if err := s.validator.CartLimits(cart, qty); err != nil {
			return err
		}

		var existing *models.CartItem
		for i := range items {
			if items[i].ControllerID == controllerID {
				existing = &items[i]
				break
			}
		}

		if existing == nil {
			// A concurrent first add for the same controller falls
			// through to the same increment via the unique key.
			item := models.CartItem{
				CartID:       cart.ID,
				ControllerID: controllerID,
				Quantity:     qty,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "controller_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": gorm.Expr("quantity + ?", qty),
				}),
			}).Create(&item).Error
			if err != nil {
				return fmt.Errorf("failed to add cart item: %w", err)
			}
			return nil
		}

		newQty := existing.Quantity + qty
		if err := s.validator.QuantityInRange(newQty); err != nil {
			return err
		}
		if err := s.validator.CartLimits(cart, newQty-existing.Quantity); err != nil {
			return err
		}

		err = tx.Model(&models.CartItem{}).
			Where("id = ?", existing.ID).
			Update("quantity", gorm.Expr("quantity + ?", qty)).Error
		if err != nil {
			return fmt.Errorf("failed to update cart item quantity: %w", err)
		}
		return nil
	})
}

// UpdateItem sets an item's quantity to exactly qty; qty zero removes the
// line. The lookup is scoped to the requesting user's cart, so an item id
// from someone else's cart behaves like a nonexistent one.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, qty int) error {
	item, err := s.cartItemRepo.GetOwnedByUser(ctx, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to look up cart item %d: %w", itemID, err)
	}
	if item == nil {
		return validators.ErrItemNotFound
	}

	if qty > 0 {
		item.Quantity = qty
		if err := s.cartItemRepo.Update(ctx, item); err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
		return nil
	}

	if err := s.cartItemRepo.Delete(ctx, item); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}
