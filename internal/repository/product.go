package repository

import (
	"context"
	"errors"

	"digital-storefront/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	SetAvailability(ctx context.Context, productID string, available bool) error
	Delete(ctx context.Context, tx *gorm.DB, productID string) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
	FindAvailable(ctx context.Context, limit int) ([]*model.Product, error)
	FindMostPopular(ctx context.Context, limit int) ([]*model.Product, error)
	CountByAvailability(ctx context.Context) (active int64, inactive int64, err error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"description":    product.Description,
			"price_in_cents": product.PriceInCents,
			"file_path":      product.FilePath,
			"image_path":     product.ImagePath,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepoImpl) SetAvailability(ctx context.Context, productID string, available bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("is_available_for_purchase", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, tx *gorm.DB, productID string) error {
	result := tx.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

// FindAvailable returns purchasable products, newest first. limit <= 0 means no limit.
func (r *productRepoImpl) FindAvailable(ctx context.Context, limit int) ([]*model.Product, error) {
	var products []*model.Product
	query := r.db.WithContext(ctx).
		Where("is_available_for_purchase = ?", true).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindMostPopular(ctx context.Context, limit int) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.*").
		Joins("LEFT JOIN orders ON orders.product_id = products.id").
		Where("products.is_available_for_purchase = ?", true).
		Group("products.id").
		Order("COUNT(orders.id) DESC").
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) CountByAvailability(ctx context.Context) (int64, int64, error) {
	var active, inactive int64
	if err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("is_available_for_purchase = ?", true).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("is_available_for_purchase = ?", false).
		Count(&inactive).Error; err != nil {
		return 0, 0, err
	}
	return active, inactive, nil
}
