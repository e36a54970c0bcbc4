package service

import (
	"errors"
	"testing"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
)

func TestReviewEligibilityAndRemoval(t *testing.T) {
	db := openServiceTestDB(t)
	ctx := t.Context()
	orderRepo := repository.NewOrderRepository(db)
	svc := NewReviewService(repository.NewReviewRepository(db), orderRepo, config.ReviewConfig{MaxCommentLength: 20})

	buyer := seedUser(t, db, "Mia", "mia@example.com", false)
	stranger := seedUser(t, db, "Leo", "leo@example.com", false)
	itemID := models.NewObjectID()

	order := &models.Order{
		UserID:        buyer.ID,
		Shipping:      models.ShippingInfo{FirstName: "Mia", LastName: "Wong", Phone: "1", Address: "a", City: "c"},
		TotalPrice:    models.MustMoney("10.00"),
		PaymentMethod: constants.PaymentMethodCOD,
		Status:        constants.OrderStatusPending,
	}
	if err := orderRepo.Create(ctx, order, []models.OrderItem{{ItemID: itemID, Kind: models.KindProduct, Name: "Wax", Price: models.MustMoney("10.00"), Quantity: 1}}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.Add(ctx, buyer.ID, itemID, 6, ""); !errors.Is(err, ErrReviewRatingInvalid) {
		t.Fatalf("want ErrReviewRatingInvalid got %v", err)
	}
	if _, err := svc.Add(ctx, buyer.ID, itemID, 5, "great"); !errors.Is(err, ErrReviewNotEligible) {
		t.Fatalf("pending order should not qualify, got %v", err)
	}

	if _, err := orderRepo.UpdateStatus(ctx, order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	review, err := svc.Add(ctx, buyer.ID, itemID, 5, "<b>Great</b> shine, would buy again")
	if err != nil {
		t.Fatalf("add review failed: %v", err)
	}
	if review.Comment != "Great shine, would b" {
		t.Fatalf("comment should be sanitized and truncated, got %q", review.Comment)
	}
	if _, err := svc.Add(ctx, stranger.ID, itemID, 4, "nice"); !errors.Is(err, ErrReviewNotEligible) {
		t.Fatalf("stranger want ErrReviewNotEligible got %v", err)
	}

	views, err := svc.ListForItem(ctx, itemID)
	if err != nil || len(views) != 1 || views[0].UserName != "Mia" {
		t.Fatalf("list reviews failed: %+v err=%v", views, err)
	}

	if err := svc.Remove(ctx, review.ID, stranger.ID, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden got %v", err)
	}
	if err := svc.Remove(ctx, review.ID, stranger.ID, true); err != nil {
		t.Fatalf("admin remove failed: %v", err)
	}
	if err := svc.Remove(ctx, review.ID, buyer.ID, false); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("want ErrReviewNotFound got %v", err)
	}
}
