package repository

import (
	"context"
	"errors"

	"digital-storefront/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserSummary struct {
	ID               string
	Email            string
	OrderCount       int64
	TotalPaidInCents int64
}

type UserRepository interface {
	FindOrCreateByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListWithOrderStats(ctx context.Context) ([]*UserSummary, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, userID string) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) FindOrCreateByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	var user model.User
	err := tx.WithContext(ctx).
		Where(model.User{Email: email}).
		Attrs(model.User{ID: uuid.NewString()}).
		FirstOrCreate(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost the insert race to a concurrent delivery for the same buyer
		err = tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) ListWithOrderStats(ctx context.Context) ([]*UserSummary, error) {
	var users []*UserSummary
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select(`users.id AS id,
			users.email AS email,
			COUNT(orders.id) AS order_count,
			COALESCE(SUM(orders.price_paid_in_cents), 0) AS total_paid_in_cents`).
		Joins("LEFT JOIN orders ON orders.user_id = users.id").
		Group("users.id, users.email, users.created_at").
		Order("users.created_at DESC").
		Scan(&users).
		Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepoImpl) Delete(ctx context.Context, tx *gorm.DB, userID string) error {
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Order{}).Error; err != nil {
		return err
	}

	result := tx.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&model.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
