package repository

import (
	"context"
	"errors"

	"digital-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SalesSummary struct {
	AmountInCents int64
	NumberOfSales int64
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	ExistsForBuyer(ctx context.Context, email, productID string) (bool, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	Delete(ctx context.Context, orderID string) error
	SalesSummary(ctx context.Context) (*SalesSummary, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ExistsForBuyer(ctx context.Context, email, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Joins("JOIN users ON users.id = orders.user_id").
		Where("users.email = ?", email).
		Where("orders.product_id = ?", productID).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("product_id = ?", productID).
		Count(&count).Error

	return count, err
}

func (r *orderRepoImpl) FindAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Product").
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) Delete(ctx context.Context, orderID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&model.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepoImpl) SalesSummary(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(price_paid_in_cents), 0) AS amount_in_cents, COUNT(*) AS number_of_sales").
		Scan(&summary).Error

	if err != nil {
		return nil, err
	}

	return &summary, nil
}
