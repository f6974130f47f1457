package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital-storefront/internal/cache"
	"digital-storefront/internal/model"
	"digital-storefront/internal/repository"

	"github.com/rs/zerolog"
)

const (
	shelfSize = 6

	popularCacheKey = "most-popular"
	popularCacheTTL = 24 * time.Hour
)

type CatalogService interface {
	ListAvailable(ctx context.Context) ([]*model.Product, error)
	MostPopular(ctx context.Context) ([]*model.Product, error)
	Newest(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	productCache cache.ProductCache
	log          zerolog.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, productCache cache.ProductCache, log zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		productCache: productCache,
		log:          log,
	}
}

func (s *catalogServiceImpl) ListAvailable(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAvailable(ctx, 0)
}

func (s *catalogServiceImpl) MostPopular(ctx context.Context) ([]*model.Product, error) {
	products, ok, err := s.productCache.Get(ctx, popularCacheKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("product cache read failed")
	}
	if ok {
		return products, nil
	}

	products, err = s.productRepo.FindMostPopular(ctx, shelfSize)
	if err != nil {
		return nil, fmt.Errorf("find most popular products: %w", err)
	}

	if err := s.productCache.Set(ctx, popularCacheKey, products, popularCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("product cache write failed")
	}
	return products, nil
}

func (s *catalogServiceImpl) Newest(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAvailable(ctx, shelfSize)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}
