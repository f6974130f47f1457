package repository_test

import (
	"context"
	"errors"
	"testing"

	"digital-storefront/internal/model"
	"digital-storefront/internal/repository"
	"digital-storefront/internal/testutil"
)

func TestUserFindOrCreateByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.FindOrCreateByEmail(ctx, db, "buyer@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.FindOrCreateByEmail(ctx, db, "buyer@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if first.ID == "" || first.ID != second.ID {
		t.Fatalf("ids = (%q, %q), want the same non-empty id", first.ID, second.ID)
	}
	if n := testutil.Count(t, db, &model.User{}); n != 1 {
		t.Fatalf("users = %d, want 1", n)
	}
}

func TestUserListWithOrderStatsAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	product := testutil.CreateProduct(t, db, 1500)
	ctx := context.Background()

	order := createOrder(t, db, "buyer@example.com", product, 1500)
	createOrder(t, db, "buyer@example.com", product, 1500)
	if _, err := repo.FindOrCreateByEmail(ctx, db, "browser@example.com"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	users, err := repo.ListWithOrderStats(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	stats := make(map[string]*repository.UserSummary, len(users))
	for _, u := range users {
		stats[u.Email] = u
	}
	if got := stats["buyer@example.com"]; got == nil || got.OrderCount != 2 || got.TotalPaidInCents != 3000 {
		t.Fatalf("buyer stats = %+v, want 2 orders totalling 3000", got)
	}
	if got := stats["browser@example.com"]; got == nil || got.OrderCount != 0 || got.TotalPaidInCents != 0 {
		t.Fatalf("browser stats = %+v, want no orders", got)
	}

	if err := repo.Delete(ctx, db, order.UserID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "buyer@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("find deleted err = %v, want ErrNotFound", err)
	}
	if n := testutil.Count(t, db, &model.Order{}); n != 0 {
		t.Fatalf("orders after user delete = %d, want 0", n)
	}
}
