package repository

import (
	"context"
	"errors"
	"time"

	"digital-storefront/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialTTL is the fixed validity window of a download verification.
const CredentialTTL = 24 * time.Hour

type DownloadVerificationRepository interface {
	Mint(ctx context.Context, tx *gorm.DB, productID string, now time.Time) (*model.DownloadVerification, error)
	FindByID(ctx context.Context, id string) (*model.DownloadVerification, error)
	// Resolve returns the product behind a token that is still valid at now.
	Resolve(ctx context.Context, id string, now time.Time) (*model.Product, error)
	DeleteByProduct(ctx context.Context, tx *gorm.DB, productID string) error
}

type downloadVerificationRepoImpl struct {
	db *gorm.DB
}

func NewDownloadVerificationRepository(db *gorm.DB) DownloadVerificationRepository {
	return &downloadVerificationRepoImpl{
		db: db,
	}
}

func (r *downloadVerificationRepoImpl) Mint(ctx context.Context, tx *gorm.DB, productID string, now time.Time) (*model.DownloadVerification, error) {
	verification := &model.DownloadVerification{
		ID:        uuid.NewString(),
		ProductID: productID,
		ExpiresAt: now.Add(CredentialTTL),
		CreatedAt: now,
	}

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(verification).Error; err != nil {
		return nil, err
	}

	return verification, nil
}

func (r *downloadVerificationRepoImpl) FindByID(ctx context.Context, id string) (*model.DownloadVerification, error) {
	var verification model.DownloadVerification
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}

	return &verification, nil
}

func (r *downloadVerificationRepoImpl) Resolve(ctx context.Context, id string, now time.Time) (*model.Product, error) {
	var verification model.DownloadVerification
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", id).
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}

	if !now.Before(verification.ExpiresAt) {
		return nil, ErrCredentialExpired
	}
	if verification.Product.ID == "" {
		return nil, ErrCredentialNotFound
	}

	return &verification.Product, nil
}

func (r *downloadVerificationRepoImpl) DeleteByProduct(ctx context.Context, tx *gorm.DB, productID string) error {
	return tx.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.DownloadVerification{}).Error
}
