package repository

import (
	"context"
	"errors"
	"time"

	"digital-storefront/internal/model"

	"gorm.io/gorm"
)

var ErrEventAlreadyProcessed = errors.New("webhook event already processed")

type WebhookEventRepository interface {
	// Claim inserts the ledger row; a second claim of the same event id fails
	// with ErrEventAlreadyProcessed.
	Claim(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) error
	RecordFulfillment(ctx context.Context, tx *gorm.DB, eventID, orderID, downloadVerificationID string) error
	FindByID(ctx context.Context, eventID string) (*model.WebhookEvent, error)
	MarkNotified(ctx context.Context, eventID string, at time.Time) error
}

type webhookEventRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepositoryImpl{db: db}
}

func (r *webhookEventRepositoryImpl) Claim(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) error {
	err := tx.WithContext(ctx).Create(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEventAlreadyProcessed
	}
	return err
}

func (r *webhookEventRepositoryImpl) RecordFulfillment(ctx context.Context, tx *gorm.DB, eventID, orderID, downloadVerificationID string) error {
	return tx.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{
			"order_id":                 orderID,
			"download_verification_id": downloadVerificationID,
		}).Error
}

func (r *webhookEventRepositoryImpl) FindByID(ctx context.Context, eventID string) (*model.WebhookEvent, error) {
	var event model.WebhookEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *webhookEventRepositoryImpl) MarkNotified(ctx context.Context, eventID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Update("notified_at", at).Error
}
