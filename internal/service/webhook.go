package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"digital-storefront/internal/client"
	"digital-storefront/internal/metrics"
	"digital-storefront/internal/model"
	"digital-storefront/internal/notification"
	"digital-storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type WebhookResult string

const (
	WebhookProcessed  WebhookResult = "processed"
	WebhookIgnored    WebhookResult = "ignored"
	WebhookDuplicate  WebhookResult = "duplicate"
	WebhookRenotified WebhookResult = "renotified"
)

type WebhookService interface {
	HandleWebhook(ctx context.Context, signature string, body []byte) (WebhookResult, error)
}

type webhookServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	receiptSender    notification.ReceiptSender
	productRepo      repository.ProductRepository
	userRepo         repository.UserRepository
	orderRepo        repository.OrderRepository
	verificationRepo repository.DownloadVerificationRepository
	webhookEventRepo repository.WebhookEventRepository
	log              zerolog.Logger
	nowFn            func() time.Time
}

func NewWebhookService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	receiptSender notification.ReceiptSender,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	verificationRepo repository.DownloadVerificationRepository,
	webhookEventRepo repository.WebhookEventRepository,
	log zerolog.Logger,
) WebhookService {
	return &webhookServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		receiptSender:    receiptSender,
		productRepo:      productRepo,
		userRepo:         userRepo,
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
		webhookEventRepo: webhookEventRepo,
		log:              log,
		nowFn:            time.Now,
	}
}

// HandleWebhook verifies a Stripe delivery and fulfills charge.succeeded events
// at most once per event id.
func (s *webhookServiceImpl) HandleWebhook(ctx context.Context, signature string, body []byte) (WebhookResult, error) {
	event, err := s.stripeClient.ConstructEvent(body, signature)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues("invalid_signature").Inc()
		return "", fmt.Errorf("%w: %v", ErrWebhookVerification, err)
	}

	if event.Type != model.StripeEventChargeSucceeded {
		metrics.WebhookEvents.WithLabelValues(string(WebhookIgnored)).Inc()
		return WebhookIgnored, nil
	}

	result, err := s.handleChargeSucceeded(ctx, event)
	if err != nil {
		outcome := "failed"
		if errors.Is(err, ErrMissingCorrelation) || errors.Is(err, ErrWebhookVerification) {
			outcome = "missing_correlation"
		}
		metrics.WebhookEvents.WithLabelValues(outcome).Inc()
		return "", err
	}

	metrics.WebhookEvents.WithLabelValues(string(result)).Inc()
	return result, nil
}

func (s *webhookServiceImpl) handleChargeSucceeded(ctx context.Context, event *model.StripeWebhookEvent) (WebhookResult, error) {
	var charge model.StripeCharge
	if err := json.Unmarshal(event.Object, &charge); err != nil {
		return "", fmt.Errorf("%w: decode charge: %v", ErrWebhookVerification, err)
	}

	productID := charge.Metadata[model.StripeMetadataProductID]
	email := strings.TrimSpace(charge.BillingDetails.Email)
	if productID == "" || email == "" {
		return "", fmt.Errorf("event %s: %w", event.ID, ErrMissingCorrelation)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("event %s references unknown product %s: %w", event.ID, productID, ErrMissingCorrelation)
		}
		return "", fmt.Errorf("find product: %w", err)
	}

	existing, err := s.webhookEventRepo.FindByID(ctx, event.ID)
	switch {
	case err == nil:
		return s.resumeNotification(ctx, existing, product)
	case !errors.Is(err, repository.ErrNotFound):
		return "", fmt.Errorf("find webhook event: %w", err)
	}

	order, verification, err := s.fulfill(ctx, event, &charge, product, email)
	if errors.Is(err, repository.ErrEventAlreadyProcessed) {
		s.log.Info().Str("event_id", event.ID).Msg("stripe event claimed by a concurrent delivery")
		return WebhookDuplicate, nil
	}
	if err != nil {
		return "", err
	}

	metrics.OrdersRecorded.Inc()
	metrics.CredentialsMinted.WithLabelValues("webhook").Inc()
	s.log.Info().
		Str("event_id", event.ID).
		Str("order_id", order.ID).
		Str("product_id", product.ID).
		Int64("price_paid_in_cents", order.PricePaidInCents).
		Msg("order recorded")

	if err := s.notify(ctx, event.ID, email, order, product, verification.ID); err != nil {
		return "", err
	}

	return WebhookProcessed, nil
}

// fulfill records the ledger row, buyer, order and download verification in one transaction.
func (s *webhookServiceImpl) fulfill(
	ctx context.Context,
	event *model.StripeWebhookEvent,
	charge *model.StripeCharge,
	product *model.Product,
	email string,
) (*model.Order, *model.DownloadVerification, error) {
	now := s.nowFn()
	var order *model.Order
	var verification *model.DownloadVerification

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.webhookEventRepo.Claim(ctx, tx, &model.WebhookEvent{
			EventID:     event.ID,
			EventType:   event.Type,
			BuyerEmail:  email,
			ProcessedAt: now,
		})
		if err != nil {
			return err
		}

		user, err := s.userRepo.FindOrCreateByEmail(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("upsert buyer: %w", err)
		}

		eventID := event.ID
		order = &model.Order{
			ID:               uuid.NewString(),
			UserID:           user.ID,
			ProductID:        product.ID,
			PricePaidInCents: charge.Amount,
			PaymentEventID:   &eventID,
			CreatedAt:        now,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		verification, err = s.verificationRepo.Mint(ctx, tx, product.ID, now)
		if err != nil {
			return fmt.Errorf("mint download verification: %w", err)
		}

		if err := s.webhookEventRepo.RecordFulfillment(ctx, tx, event.ID, order.ID, verification.ID); err != nil {
			return fmt.Errorf("record fulfillment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return order, verification, nil
}

// resumeNotification handles a redelivered event: the order already exists, so the
// receipt is only re-sent when the previous attempt did not get it out.
func (s *webhookServiceImpl) resumeNotification(ctx context.Context, event *model.WebhookEvent, product *model.Product) (WebhookResult, error) {
	if event.NotifiedAt != nil {
		s.log.Info().Str("event_id", event.EventID).Msg("duplicate stripe event ignored")
		return WebhookDuplicate, nil
	}

	order, err := s.orderRepo.FindByID(ctx, event.OrderID)
	if err != nil {
		return "", fmt.Errorf("find order for event %s: %w", event.EventID, err)
	}

	if err := s.notify(ctx, event.EventID, event.BuyerEmail, order, product, event.DownloadVerificationID); err != nil {
		return "", err
	}

	return WebhookRenotified, nil
}

func (s *webhookServiceImpl) notify(
	ctx context.Context,
	eventID string,
	email string,
	order *model.Order,
	product *model.Product,
	downloadVerificationID string,
) error {
	err := s.receiptSender.SendReceipt(ctx, &notification.Receipt{
		BuyerEmail:             email,
		OrderID:                order.ID,
		OrderCreatedAt:         order.CreatedAt,
		PricePaidInCents:       order.PricePaidInCents,
		ProductName:            product.Name,
		ProductDescription:     product.Description,
		ProductImagePath:       product.ImagePath,
		DownloadVerificationID: downloadVerificationID,
	})
	if err != nil {
		metrics.ReceiptEmailFailures.Inc()
		s.log.Error().Err(err).Str("event_id", eventID).Str("order_id", order.ID).Msg("receipt email failed")
		return fmt.Errorf("send receipt: %w", err)
	}

	if err := s.webhookEventRepo.MarkNotified(ctx, eventID, s.nowFn()); err != nil {
		return fmt.Errorf("mark event notified: %w", err)
	}
	return nil
}
