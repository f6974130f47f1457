package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrAssetNotFound = errors.New("asset not found")

// Asset is an opened private asset. Callers must Close it.
type Asset struct {
	io.ReadCloser
	Size int64
}

type AssetStore interface {
	// StorePrivate saves a downloadable product file and returns its location.
	StorePrivate(ctx context.Context, filename string, r io.Reader) (string, error)
	// StorePublic saves a publicly served image and returns its url path.
	StorePublic(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, location string) (*Asset, error)
	Release(ctx context.Context, location string) error
}

type localStoreImpl struct {
	privateDir string
	publicDir  string
}

// NewLocalStore keeps private files under privateDir and public images under
// publicDir/products, served at /products/<name>.
func NewLocalStore(privateDir, publicDir string) AssetStore {
	return &localStoreImpl{
		privateDir: privateDir,
		publicDir:  publicDir,
	}
}

func (s *localStoreImpl) StorePrivate(ctx context.Context, filename string, r io.Reader) (string, error) {
	location := path.Join(filepath.ToSlash(s.privateDir), assetName(filename))
	if err := writeFile(filepath.FromSlash(location), r); err != nil {
		return "", err
	}
	return location, nil
}

func (s *localStoreImpl) StorePublic(ctx context.Context, filename string, r io.Reader) (string, error) {
	location := "/products/" + assetName(filename)
	if err := writeFile(s.publicPath(location), r); err != nil {
		return "", err
	}
	return location, nil
}

func (s *localStoreImpl) Open(ctx context.Context, location string) (*Asset, error) {
	f, err := os.Open(s.resolve(location))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("open asset: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat asset: %w", err)
	}

	return &Asset{ReadCloser: f, Size: info.Size()}, nil
}

func (s *localStoreImpl) Release(ctx context.Context, location string) error {
	err := os.Remove(s.resolve(location))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}

func (s *localStoreImpl) resolve(location string) string {
	if strings.HasPrefix(location, "/products/") {
		return s.publicPath(location)
	}
	return filepath.FromSlash(location)
}

func (s *localStoreImpl) publicPath(location string) string {
	return filepath.Join(s.publicDir, filepath.FromSlash(strings.TrimPrefix(location, "/")))
}

// assetName keeps the original name after a random prefix so the extension survives.
func assetName(filename string) string {
	return uuid.NewString() + "~" + filepath.Base(filename)
}

func writeFile(name string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write asset: %w", err)
	}
	return f.Close()
}
