package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"digital-storefront/internal/cache"
	"digital-storefront/internal/client"
	"digital-storefront/internal/config"
	"digital-storefront/internal/dto"
	"digital-storefront/internal/notification"
	"digital-storefront/internal/repository"
	"digital-storefront/internal/service"
	"digital-storefront/internal/storage"
	"digital-storefront/internal/testutil"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type discardEmailClient struct{}

func (discardEmailClient) Send(context.Context, *client.Email) error { return nil }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	cfg := &config.Config{
		BaseURL: "http://localhost:8080",
		Stripe:  config.Stripe{SecretKey: "sk_test_unused", WebhookSecretKey: "whsec_test", Currency: "usd"},
		Admin:   config.Admin{Username: "admin", HashedPassword: string(hash)},
		Storage: config.Storage{PrivateDir: t.TempDir(), PublicDir: t.TempDir()},
	}

	db := testutil.NewTestDB(t)
	log := zerolog.Nop()
	stripeClient := client.NewStripeClient(&cfg.Stripe)
	assetStore := storage.NewLocalStore(cfg.Storage.PrivateDir, cfg.Storage.PublicDir)
	productCache := cache.NewProductCache(nil)

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	verificationRepo := repository.NewDownloadVerificationRepository(db)

	services := Services{
		Checkout: service.NewCheckoutService(db, stripeClient, cfg.BaseURL, productRepo, orderRepo, verificationRepo),
		Webhook: service.NewWebhookService(
			db, stripeClient, notification.NewReceiptSender(discardEmailClient{}, cfg.BaseURL),
			productRepo, userRepo, orderRepo, verificationRepo,
			repository.NewWebhookEventRepository(db),
			log,
		),
		Download: service.NewDownloadService(verificationRepo, assetStore),
		Catalog:  service.NewCatalogService(productRepo, productCache, log),
		Admin:    service.NewAdminService(db, productRepo, orderRepo, userRepo, verificationRepo, assetStore, productCache, log),
	}

	return NewServer(cfg, services, log).Handler()
}

func TestAdminRequiresBasicAuth(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		user     string
		password string
		want     int
	}{
		{"no credentials", "", "", http.StatusUnauthorized},
		{"wrong password", "admin", "guess", http.StatusUnauthorized},
		{"wrong user", "root", "s3cret", http.StatusUnauthorized},
		{"valid", "admin", "s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if tt.user != "" {
				req.SetBasicAuth(tt.user, tt.password)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
				t.Fatal("missing WWW-Authenticate challenge")
			}
		})
	}
}

func TestAdminCreateProductValidation(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("name", "Go Course")
	form.WriteField("description", "")
	form.WriteField("priceInCents", "0")
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/products", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.SetBasicAuth("admin", "s3cret")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, field := range []string{"description", "priceInCents", "file", "image"} {
		if len(resp.Errors[field]) == 0 {
			t.Errorf("no error reported for %s: %v", field, resp.Errors)
		}
	}
	if _, ok := resp.Errors["name"]; ok {
		t.Errorf("unexpected error for name: %v", resp.Errors["name"])
	}
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path     string
		want     int
		location string
	}{
		{"/api/health", http.StatusOK, ""},
		{"/api/products", http.StatusOK, ""},
		{"/api/products/popular", http.StatusOK, ""},
		{"/api/products/newest", http.StatusOK, ""},
		{"/api/products/missing", http.StatusNotFound, ""},
		{"/api/orders/exists", http.StatusBadRequest, ""},
		{"/products/missing/purchase", http.StatusNotFound, ""},
		{"/products/download/not-a-token", http.StatusTemporaryRedirect, "/products/download/expired"},
		{"/products/download/expired", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.location != "" && rec.Header().Get("Location") != tt.location {
				t.Fatalf("location = %q, want %q", rec.Header().Get("Location"), tt.location)
			}
		})
	}
}

func TestStripeWebhookRejectsUnsignedDelivery(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBufferString(`{"id":"evt_1","type":"charge.succeeded"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
