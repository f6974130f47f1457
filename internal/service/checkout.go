package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digital-storefront/internal/client"
	"digital-storefront/internal/dto"
	"digital-storefront/internal/metrics"
	"digital-storefront/internal/model"
	"digital-storefront/internal/notification"
	"digital-storefront/internal/repository"

	"gorm.io/gorm"
)

type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, productID string) (*dto.PurchaseResponse, error)
	PurchaseSuccess(ctx context.Context, paymentIntentID string) (*dto.PurchaseSuccessResponse, error)
	OrderExistsForBuyer(ctx context.Context, email, productID string) (bool, error)
}

type checkoutServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	baseURL          string
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	verificationRepo repository.DownloadVerificationRepository
	nowFn            func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	baseURL string,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	verificationRepo repository.DownloadVerificationRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		baseURL:          strings.TrimRight(baseURL, "/"),
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
		nowFn:            time.Now,
	}
}

func (s *checkoutServiceImpl) CreatePaymentIntent(ctx context.Context, productID string) (*dto.PurchaseResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	if !product.IsAvailableForPurchase {
		return nil, fmt.Errorf("product %s not for sale: %w", productID, ErrNotFound)
	}

	intent, err := s.stripeClient.CreatePaymentIntent(ctx, product.ID, product.PriceInCents)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("payment intent %s has no client secret: %w", intent.ID, ErrProviderContractViolation)
	}

	return &dto.PurchaseResponse{
		Product:      dto.NewProductResponse(product),
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (s *checkoutServiceImpl) PurchaseSuccess(ctx context.Context, paymentIntentID string) (*dto.PurchaseSuccessResponse, error) {
	intent, err := s.stripeClient.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}

	productID := intent.Metadata[model.StripeMetadataProductID]
	if productID == "" {
		return nil, fmt.Errorf("payment intent %s has no product: %w", intent.ID, ErrNotFound)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	resp := &dto.PurchaseSuccessResponse{
		Success: intent.Status == model.PaymentIntentStatusSucceeded,
		Product: dto.NewProductResponse(product),
	}
	if !resp.Success {
		resp.RetryURL = fmt.Sprintf("%s/products/%s/purchase", s.baseURL, product.ID)
		return resp, nil
	}

	verification, err := s.verificationRepo.Mint(ctx, s.db, product.ID, s.nowFn())
	if err != nil {
		return nil, fmt.Errorf("mint download verification: %w", err)
	}
	metrics.CredentialsMinted.WithLabelValues("purchase_success").Inc()

	resp.DownloadURL = notification.DownloadURL(s.baseURL, verification.ID)
	return resp, nil
}

func (s *checkoutServiceImpl) OrderExistsForBuyer(ctx context.Context, email, productID string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || productID == "" {
		verr := &ValidationError{}
		if email == "" {
			verr.add("email", "Required")
		}
		if productID == "" {
			verr.add("productId", "Required")
		}
		return false, verr
	}

	exists, err := s.orderRepo.ExistsForBuyer(ctx, email, productID)
	if err != nil {
		return false, fmt.Errorf("check order exists: %w", err)
	}
	return exists, nil
}
