package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/gamectrl/storefront/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ControllerRepositoryImpl interface {
	GetByID(ctx context.Context, id uint) (*models.Controller, error)
	GetBySlug(ctx context.Context, slug string) (*models.Controller, error)
	GetByCategoryID(ctx context.Context, categoryID uint) ([]models.Controller, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Controller, error)
	GetAll(ctx context.Context) ([]models.Controller, error)
	Create(ctx context.Context, controller *models.Controller) error
	Update(ctx context.Context, controller *models.Controller) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	SumPriceSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}

type controllerRepository struct {
	db *gorm.DB
}

func NewControllerRepository(db *gorm.DB) ControllerRepositoryImpl {
	return &controllerRepository{db}
}

func (r *controllerRepository) GetByID(ctx context.Context, id uint) (*models.Controller, error) {
	var controller models.Controller
	err := r.db.WithContext(ctx).Preload("Category").First(&controller, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &controller, nil
}

func (r *controllerRepository) GetBySlug(ctx context.Context, slug string) (*models.Controller, error) {
	var controller models.Controller
	err := r.db.WithContext(ctx).Preload("Category").First(&controller, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &controller, nil
}

func (r *controllerRepository) GetByCategoryID(ctx context.Context, categoryID uint) ([]models.Controller, error) {
	var controllers []models.Controller
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&controllers).Error
	return controllers, err
}

func (r *controllerRepository) GetFeatured(ctx context.Context, limit int) ([]models.Controller, error) {
	var controllers []models.Controller
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&controllers).Error
	return controllers, err
}

func (r *controllerRepository) GetAll(ctx context.Context) ([]models.Controller, error) {
	var controllers []models.Controller
	err := r.db.WithContext(ctx).Preload("Category").Order("name").Find(&controllers).Error
	return controllers, err
}

func (r *controllerRepository) Create(ctx context.Context, controller *models.Controller) error {
	return r.db.WithContext(ctx).Create(controller).Error
}

func (r *controllerRepository) Update(ctx context.Context, controller *models.Controller) error {
	return r.db.WithContext(ctx).Save(controller).Error
}

func (r *controllerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Controller{}).Count(&count).Error
	return count, err
}

func (r *controllerRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Controller{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *controllerRepository) SumPriceSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Controller{}).
		Where("created_at >= ?", since).
		Select("SUM(price)").
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
