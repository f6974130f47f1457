package testutil

import (
	"testing"
	"time"

	"digital-storefront/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateProduct(t *testing.T, db *gorm.DB, priceInCents int64) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:                     uuid.NewString(),
		Name:                   "Course " + uuid.NewString()[:8],
		Description:            "A downloadable course",
		PriceInCents:           priceInCents,
		FilePath:               "products/" + uuid.NewString() + "~course.zip",
		ImagePath:              "/products/" + uuid.NewString() + "~cover.png",
		IsAvailableForPurchase: true,
		CreatedAt:              time.Now(),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func Count(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}
