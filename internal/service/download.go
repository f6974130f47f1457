package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"digital-storefront/internal/metrics"
	"digital-storefront/internal/repository"
	"digital-storefront/internal/storage"
)

// Download is an opened product file ready to stream. Callers must Close it.
type Download struct {
	*storage.Asset
	Filename string
}

type DownloadService interface {
	// Resolve returns repository.ErrCredentialExpired or repository.ErrCredentialNotFound
	// for tokens that must not be served.
	Resolve(ctx context.Context, downloadVerificationID string) (*Download, error)
}

type downloadServiceImpl struct {
	verificationRepo repository.DownloadVerificationRepository
	assetStore       storage.AssetStore
	nowFn            func() time.Time
}

func NewDownloadService(
	verificationRepo repository.DownloadVerificationRepository,
	assetStore storage.AssetStore,
) DownloadService {
	return &downloadServiceImpl{
		verificationRepo: verificationRepo,
		assetStore:       assetStore,
		nowFn:            time.Now,
	}
}

func (s *downloadServiceImpl) Resolve(ctx context.Context, downloadVerificationID string) (*Download, error) {
	product, err := s.verificationRepo.Resolve(ctx, downloadVerificationID, s.nowFn())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCredentialExpired):
			metrics.Downloads.WithLabelValues("expired").Inc()
		case errors.Is(err, repository.ErrCredentialNotFound):
			metrics.Downloads.WithLabelValues("unknown").Inc()
		}
		return nil, err
	}

	asset, err := s.assetStore.Open(ctx, product.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			return nil, fmt.Errorf("file for product %s: %w", product.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("open product file: %w", err)
	}

	metrics.Downloads.WithLabelValues("served").Inc()
	return &Download{
		Asset:    asset,
		Filename: product.Name + path.Ext(product.FilePath),
	}, nil
}
