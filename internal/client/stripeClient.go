package client

import (
	"context"
	"errors"
	"fmt"

	"digital-storefront/internal/config"
	"digital-storefront/internal/model"

	"github.com/stripe/stripe-go/v82"
	stripeapi "github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

type StripeClient interface {
	CreatePaymentIntent(ctx context.Context, productID string, amountInCents int64) (*model.StripePaymentIntent, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*model.StripePaymentIntent, error)
	// ConstructEvent verifies the Stripe-Signature header against the webhook secret.
	ConstructEvent(payload []byte, signature string) (*model.StripeWebhookEvent, error)
}

type stripeClientImpl struct {
	api           *stripeapi.API
	webhookSecret string
	currency      string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		api:           stripeapi.New(stripeCfg.SecretKey, nil),
		webhookSecret: stripeCfg.WebhookSecretKey,
		currency:      stripeCfg.Currency,
	}
}

func (c *stripeClientImpl) CreatePaymentIntent(ctx context.Context, productID string, amountInCents int64) (*model.StripePaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountInCents),
		Currency:    stripe.String(c.currency),
		Description: stripe.String("Digital product"),
	}
	params.Context = ctx
	params.AddMetadata(model.StripeMetadataProductID, productID)

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}

	return toPaymentIntent(pi), nil
}

func (c *stripeClientImpl) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*model.StripePaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get payment intent: %w", err)
	}

	return toPaymentIntent(pi), nil
}

func (c *stripeClientImpl) ConstructEvent(payload []byte, signature string) (*model.StripeWebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}
	if event.ID == "" || event.Data == nil {
		return nil, errors.New("stripe event without id or data")
	}

	return &model.StripeWebhookEvent{
		ID:     event.ID,
		Type:   string(event.Type),
		Object: event.Data.Raw,
	}, nil
}

func toPaymentIntent(pi *stripe.PaymentIntent) *model.StripePaymentIntent {
	return &model.StripePaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Metadata:     pi.Metadata,
	}
}
