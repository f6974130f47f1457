package service

import (
	"context"
	"testing"
	"time"

	"digital-storefront/internal/model"
	"digital-storefront/internal/repository"
	"digital-storefront/internal/testutil"

	"github.com/rs/zerolog"
)

type memoryProductCache struct {
	entries map[string][]*model.Product
	sets    int
}

func (c *memoryProductCache) Get(_ context.Context, key string) ([]*model.Product, bool, error) {
	products, ok := c.entries[key]
	return products, ok, nil
}

func (c *memoryProductCache) Set(_ context.Context, key string, products []*model.Product, _ time.Duration) error {
	c.sets++
	c.entries[key] = products
	return nil
}

func (c *memoryProductCache) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func TestMostPopularUsesCache(t *testing.T) {
	db := testutil.NewTestDB(t)
	product := testutil.CreateProduct(t, db, 1000)
	productCache := &memoryProductCache{entries: map[string][]*model.Product{}}
	svc := NewCatalogService(repository.NewProductRepository(db), productCache, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.MostPopular(ctx)
	if err != nil {
		t.Fatalf("MostPopular: %v", err)
	}
	if len(first) != 1 || first[0].ID != product.ID {
		t.Fatalf("popular = %v, want the single product", first)
	}

	// a product added after caching is not visible until the entry expires
	testutil.CreateProduct(t, db, 2000)
	second, err := svc.MostPopular(ctx)
	if err != nil {
		t.Fatalf("MostPopular: %v", err)
	}
	if len(second) != 1 || productCache.sets != 1 {
		t.Fatalf("got %d products after %d cache writes, want 1 and 1", len(second), productCache.sets)
	}
}

func TestNewestIsCapped(t *testing.T) {
	db := testutil.NewTestDB(t)
	for i := 0; i < shelfSize+2; i++ {
		testutil.CreateProduct(t, db, 1000)
	}
	svc := NewCatalogService(repository.NewProductRepository(db), &memoryProductCache{entries: map[string][]*model.Product{}}, zerolog.Nop())

	products, err := svc.Newest(context.Background())
	if err != nil {
		t.Fatalf("Newest: %v", err)
	}
	if len(products) != shelfSize {
		t.Fatalf("got %d products, want %d", len(products), shelfSize)
	}
}
