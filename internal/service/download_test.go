package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"digital-storefront/internal/repository"
	"digital-storefront/internal/storage"
	"digital-storefront/internal/testutil"
)

func TestDownloadResolve(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewLocalStore(t.TempDir(), t.TempDir())
	ctx := context.Background()

	location, err := store.StorePrivate(ctx, "course.zip", strings.NewReader("zip-bytes"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	product := testutil.CreateProduct(t, db, 10000)
	if err := db.Model(product).Update("file_path", location).Error; err != nil {
		t.Fatalf("update file path: %v", err)
	}

	verificationRepo := repository.NewDownloadVerificationRepository(db)
	mintedAt := time.Now()
	verification, err := verificationRepo.Mint(ctx, db, product.ID, mintedAt)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	svc := NewDownloadService(verificationRepo, store).(*downloadServiceImpl)

	t.Run("valid token streams the file", func(t *testing.T) {
		svc.nowFn = func() time.Time { return mintedAt.Add(time.Hour) }

		download, err := svc.Resolve(ctx, verification.ID)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		defer download.Close()

		if want := product.Name + ".zip"; download.Filename != want {
			t.Errorf("filename = %q, want %q", download.Filename, want)
		}
		if download.Size != int64(len("zip-bytes")) {
			t.Errorf("size = %d, want %d", download.Size, len("zip-bytes"))
		}
		body, err := io.ReadAll(download)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(body) != "zip-bytes" {
			t.Errorf("body = %q, want zip-bytes", body)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		svc.nowFn = func() time.Time { return verification.ExpiresAt }

		if _, err := svc.Resolve(ctx, verification.ID); !errors.Is(err, repository.ErrCredentialExpired) {
			t.Fatalf("err = %v, want ErrCredentialExpired", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		svc.nowFn = time.Now

		if _, err := svc.Resolve(ctx, "not-a-token"); !errors.Is(err, repository.ErrCredentialNotFound) {
			t.Fatalf("err = %v, want ErrCredentialNotFound", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		svc.nowFn = func() time.Time { return mintedAt }
		if err := store.Release(ctx, location); err != nil {
			t.Fatalf("release: %v", err)
		}

		if _, err := svc.Resolve(ctx, verification.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
