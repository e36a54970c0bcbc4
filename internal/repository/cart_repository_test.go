package repository

import (
	"context"
	"testing"

	"github.com/autoluxe/internal/models"
)

func TestCartRepositorySaveAndClear(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	userID := models.NewObjectID()

	got, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("get missing cart failed: %v", err)
	}
	if got != nil {
		t.Fatalf("cart should not exist yet")
	}

	cart := &models.Cart{UserID: userID, Items: models.CartLines{{
		Product: models.CartProduct{
			ID:       models.NewObjectID(),
			Name:     "Dash Cam",
			Price:    models.MustMoney("89.50"),
			Stock:    4,
			Category: "Gadget",
			Kind:     models.KindGadget,
		},
		Quantity: 2,
	}}}
	if err := repo.Save(ctx, cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	got, err = repo.GetByUser(ctx, userID)
	if err != nil || got == nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 || got.Items[0].Product.Kind != models.KindGadget {
		t.Fatalf("cart lines not persisted: %+v", got.Items)
	}
	if got.Items[0].Product.Price.String() != "89.50" {
		t.Fatalf("price want 89.50 got %s", got.Items[0].Product.Price.String())
	}

	if err := repo.ClearByUser(ctx, userID); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	got, err = repo.GetByUser(ctx, userID)
	if err != nil || got == nil {
		t.Fatalf("cart row should persist after clear: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("cart lines want 0 got %d", len(got.Items))
	}
}
