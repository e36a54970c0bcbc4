package service

import (
	"errors"
	"testing"

	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
)

func TestContactSubmitListDelete(t *testing.T) {
	db := openServiceTestDB(t)
	ctx := t.Context()
	svc := NewContactService(repository.NewContactRepository(db))

	if _, err := svc.Submit(ctx, ContactInput{Name: "Mia", Email: "mia@example.com", Subject: "Hi"}); !errors.Is(err, ErrContactFieldsRequired) {
		t.Fatalf("want ErrContactFieldsRequired got %v", err)
	}
	if _, err := svc.Submit(ctx, ContactInput{Name: "Mia", Email: "not-an-email", Subject: "Hi", Message: "Hello"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}

	msg, err := svc.Submit(ctx, ContactInput{Name: " Mia ", Email: "Mia@Example.com", Subject: "Booking", Message: "<script>x</script>Need a detail slot"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if msg.Email != "mia@example.com" || msg.Name != "Mia" {
		t.Fatalf("unexpected normalized message: %+v", msg)
	}
	if msg.Message != "Need a detail slot" {
		t.Fatalf("message should be sanitized, got %q", msg.Message)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list want 1 got %d err=%v", len(list), err)
	}
	got, err := svc.Get(ctx, msg.ID)
	if err != nil || got.Subject != "Booking" {
		t.Fatalf("get failed: %+v err=%v", got, err)
	}
	if _, err := svc.Get(ctx, "bad-id"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("want ErrInvalidID got %v", err)
	}

	if err := svc.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, msg.ID); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("second delete want ErrContactNotFound got %v", err)
	}
	if _, err := svc.Get(ctx, models.NewObjectID()); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("want ErrContactNotFound got %v", err)
	}
}
