package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"digital-storefront/internal/cache"
	"digital-storefront/internal/dto"
	"digital-storefront/internal/model"
	"digital-storefront/internal/money"
	"digital-storefront/internal/repository"
	"digital-storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ProductInput struct {
	Name         string
	Description  string
	PriceInCents string
	File         *Upload
	Image        *Upload
}

type AdminService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)

	ListProducts(ctx context.Context) ([]*model.Product, error)
	CreateProduct(ctx context.Context, input *ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, input *ProductInput) (*model.Product, error)
	SetProductAvailability(ctx context.Context, productID string, available bool) error
	DeleteProduct(ctx context.Context, productID string) error

	ListOrders(ctx context.Context) ([]*model.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error

	ListUsers(ctx context.Context) ([]*repository.UserSummary, error)
	DeleteUser(ctx context.Context, userID string) error
}

type adminServiceImpl struct {
	db               *gorm.DB
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	userRepo         repository.UserRepository
	verificationRepo repository.DownloadVerificationRepository
	assetStore       storage.AssetStore
	productCache     cache.ProductCache
	log              zerolog.Logger
}

func NewAdminService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	verificationRepo repository.DownloadVerificationRepository,
	assetStore storage.AssetStore,
	productCache cache.ProductCache,
	log zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		db:               db,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		assetStore:       assetStore,
		productCache:     productCache,
		log:              log,
	}
}

func (s *adminServiceImpl) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	sales, err := s.orderRepo.SalesSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	active, inactive, err := s.productRepo.CountByAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	average := money.AverageCents(sales.AmountInCents, userCount)
	return &dto.DashboardResponse{
		Sales: dto.SalesData{
			AmountInCents: sales.AmountInCents,
			Amount:        money.FormatCents(sales.AmountInCents),
			NumberOfSales: sales.NumberOfSales,
		},
		Users: dto.UsersData{
			UserCount:                  userCount,
			AverageValuePerUserInCents: average,
			AverageValuePerUser:        money.FormatCents(average),
		},
		Products: dto.ProductsData{
			ActiveCount:   active,
			InactiveCount: inactive,
		},
	}, nil
}

func (s *adminServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *adminServiceImpl) CreateProduct(ctx context.Context, input *ProductInput) (*model.Product, error) {
	price, err := validateProductInput(input, true)
	if err != nil {
		return nil, err
	}

	filePath, err := s.assetStore.StorePrivate(ctx, input.File.Filename, input.File.Content)
	if err != nil {
		return nil, fmt.Errorf("store product file: %w", err)
	}
	imagePath, err := s.assetStore.StorePublic(ctx, input.Image.Filename, input.Image.Content)
	if err != nil {
		s.release(ctx, filePath)
		return nil, fmt.Errorf("store product image: %w", err)
	}

	product := &model.Product{
		ID:                     uuid.NewString(),
		Name:                   strings.TrimSpace(input.Name),
		Description:            strings.TrimSpace(input.Description),
		PriceInCents:           price,
		FilePath:               filePath,
		ImagePath:              imagePath,
		IsAvailableForPurchase: false,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		s.release(ctx, filePath, imagePath)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidateShelves(ctx)
	return product, nil
}

func (s *adminServiceImpl) UpdateProduct(ctx context.Context, productID string, input *ProductInput) (*model.Product, error) {
	price, err := validateProductInput(input, false)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	var stored, replaced []string
	if hasContent(input.File) {
		filePath, err := s.assetStore.StorePrivate(ctx, input.File.Filename, input.File.Content)
		if err != nil {
			return nil, fmt.Errorf("store product file: %w", err)
		}
		stored = append(stored, filePath)
		replaced = append(replaced, product.FilePath)
		product.FilePath = filePath
	}
	if hasContent(input.Image) {
		imagePath, err := s.assetStore.StorePublic(ctx, input.Image.Filename, input.Image.Content)
		if err != nil {
			s.release(ctx, stored...)
			return nil, fmt.Errorf("store product image: %w", err)
		}
		stored = append(stored, imagePath)
		replaced = append(replaced, product.ImagePath)
		product.ImagePath = imagePath
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.PriceInCents = price
	if err := s.productRepo.Update(ctx, product); err != nil {
		s.release(ctx, stored...)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.release(ctx, replaced...)
	s.invalidateShelves(ctx)
	return product, nil
}

func (s *adminServiceImpl) SetProductAvailability(ctx context.Context, productID string, available bool) error {
	if err := s.productRepo.SetAvailability(ctx, productID, available); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("set product availability: %w", err)
	}

	s.invalidateShelves(ctx)
	return nil
}

// DeleteProduct refuses products that have orders; order history keeps its product.
func (s *adminServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("find product: %w", err)
	}

	orders, err := s.orderRepo.CountByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("count product orders: %w", err)
	}
	if orders > 0 {
		return fmt.Errorf("product %s has %d orders: %w", productID, orders, ErrConflict)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.verificationRepo.DeleteByProduct(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete download verifications: %w", err)
		}
		return s.productRepo.Delete(ctx, tx, productID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("delete product: %w", err)
	}

	s.release(ctx, product.FilePath, product.ImagePath)
	s.invalidateShelves(ctx)
	return nil
}

func (s *adminServiceImpl) ListOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *adminServiceImpl) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("delete order: %w", err)
	}

	s.invalidateShelves(ctx)
	return nil
}

func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]*repository.UserSummary, error) {
	return s.userRepo.ListWithOrderStats(ctx)
}

func (s *adminServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.invalidateShelves(ctx)
	return nil
}

// release removes assets no longer referenced; failures leave orphans, never errors.
func (s *adminServiceImpl) release(ctx context.Context, locations ...string) {
	for _, location := range locations {
		if err := s.assetStore.Release(ctx, location); err != nil {
			s.log.Warn().Err(err).Str("location", location).Msg("release asset failed")
		}
	}
}

func (s *adminServiceImpl) invalidateShelves(ctx context.Context) {
	if err := s.productCache.Invalidate(ctx, popularCacheKey); err != nil {
		s.log.Warn().Err(err).Msg("product cache invalidation failed")
	}
}

func validateProductInput(input *ProductInput, create bool) (int64, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		verr.add("name", "Required")
	}
	if strings.TrimSpace(input.Description) == "" {
		verr.add("description", "Required")
	}

	price, err := strconv.ParseInt(strings.TrimSpace(input.PriceInCents), 10, 64)
	switch {
	case err != nil:
		verr.add("priceInCents", "Expected an integer")
	case price < 1:
		verr.add("priceInCents", "Must be at least 1")
	}

	if create && !hasContent(input.File) {
		verr.add("file", "Required")
	}
	if create && !hasContent(input.Image) {
		verr.add("image", "Required")
	}
	if hasContent(input.Image) && !strings.HasPrefix(input.Image.ContentType, "image/") {
		verr.add("image", "Must be an image")
	}

	return price, verr.orNil()
}

func hasContent(upload *Upload) bool {
	return upload != nil && upload.Size > 0
}
