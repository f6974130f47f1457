package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"digital-storefront/internal/model"
	"digital-storefront/internal/repository"
	"digital-storefront/internal/testutil"
)

func TestWebhookEventClaimTwice(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWebhookEventRepository(db)
	ctx := context.Background()

	event := func() *model.WebhookEvent {
		return &model.WebhookEvent{
			EventID:     "evt_123",
			EventType:   model.StripeEventChargeSucceeded,
			BuyerEmail:  "buyer@example.com",
			ProcessedAt: time.Now(),
		}
	}

	if err := repo.Claim(ctx, db, event()); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if err := repo.Claim(ctx, db, event()); !errors.Is(err, repository.ErrEventAlreadyProcessed) {
		t.Fatalf("second claim err = %v, want ErrEventAlreadyProcessed", err)
	}
}

func TestWebhookEventFulfillmentAndNotification(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWebhookEventRepository(db)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "evt_missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("find missing err = %v, want ErrNotFound", err)
	}

	err := repo.Claim(ctx, db, &model.WebhookEvent{
		EventID:     "evt_1",
		EventType:   model.StripeEventChargeSucceeded,
		BuyerEmail:  "buyer@example.com",
		ProcessedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := repo.RecordFulfillment(ctx, db, "evt_1", "order-1", "verification-1"); err != nil {
		t.Fatalf("record fulfillment: %v", err)
	}

	got, err := repo.FindByID(ctx, "evt_1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.OrderID != "order-1" || got.DownloadVerificationID != "verification-1" {
		t.Fatalf("fulfillment = (%q, %q), want (order-1, verification-1)", got.OrderID, got.DownloadVerificationID)
	}
	if got.NotifiedAt != nil {
		t.Fatalf("NotifiedAt = %v before notification, want nil", got.NotifiedAt)
	}

	if err := repo.MarkNotified(ctx, "evt_1", time.Now()); err != nil {
		t.Fatalf("mark notified: %v", err)
	}
	got, err = repo.FindByID(ctx, "evt_1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.NotifiedAt == nil {
		t.Fatal("NotifiedAt is nil after MarkNotified")
	}
}
