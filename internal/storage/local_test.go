package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorePrivateRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir(), t.TempDir())
	ctx := context.Background()

	location, err := store.StorePrivate(ctx, "course.zip", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasSuffix(location, "~course.zip") {
		t.Fatalf("location = %q, want original name suffix", location)
	}

	asset, err := store.Open(ctx, location)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, err := io.ReadAll(asset)
	asset.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "payload" || asset.Size != int64(len("payload")) {
		t.Fatalf("asset = %q (%d bytes), want payload", body, asset.Size)
	}

	if err := store.Release(ctx, location); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := store.Open(ctx, location); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("open released err = %v, want ErrAssetNotFound", err)
	}
	if err := store.Release(ctx, location); err != nil {
		t.Fatalf("releasing twice: %v", err)
	}
}

func TestLocalStorePublicLocation(t *testing.T) {
	publicDir := t.TempDir()
	store := NewLocalStore(t.TempDir(), publicDir)
	ctx := context.Background()

	location, err := store.StorePublic(ctx, "cover.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasPrefix(location, "/products/") {
		t.Fatalf("location = %q, want /products/ url path", location)
	}
	if _, err := os.Stat(filepath.Join(publicDir, location)); err != nil {
		t.Fatalf("stat public file: %v", err)
	}

	if err := store.Release(ctx, location); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(filepath.Join(publicDir, location)); !os.IsNotExist(err) {
		t.Fatalf("public file still present: %v", err)
	}
}
