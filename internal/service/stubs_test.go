package service

import (
	"context"
	"errors"
	"sync"

	"digital-storefront/internal/model"
	"digital-storefront/internal/notification"
)

type stubStripeClient struct {
	intent      *model.StripePaymentIntent
	err         error
	createCalls int
	getCalls    int
}

func (s *stubStripeClient) CreatePaymentIntent(_ context.Context, productID string, amountInCents int64) (*model.StripePaymentIntent, error) {
	s.createCalls++
	if s.err != nil {
		return nil, s.err
	}
	intent := *s.intent
	intent.Amount = amountInCents
	intent.Metadata = map[string]string{model.StripeMetadataProductID: productID}
	return &intent, nil
}

func (s *stubStripeClient) GetPaymentIntent(_ context.Context, _ string) (*model.StripePaymentIntent, error) {
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.intent, nil
}

func (s *stubStripeClient) ConstructEvent(_ []byte, _ string) (*model.StripeWebhookEvent, error) {
	return nil, errors.New("not used")
}

type stubReceiptSender struct {
	mu       sync.Mutex
	err      error
	attempts []*notification.Receipt
}

func (s *stubReceiptSender) SendReceipt(_ context.Context, receipt *notification.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, receipt)
	return s.err
}
