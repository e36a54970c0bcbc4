package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"

	"gorm.io/gorm"
)

type orderServiceFixture struct {
	db          *gorm.DB
	svc         *OrderService
	cartSvc     *CartService
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	user        *models.User
}

func newOrderServiceFixture(t *testing.T, cfg config.OrderConfig) orderServiceFixture {
	t.Helper()
	db := openServiceTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	return orderServiceFixture{
		db:          db,
		svc:         NewOrderService(orderRepo, catalogRepo, cartRepo, nil, newDisabledQueueClient(t), nil, cfg),
		cartSvc:     NewCartService(cartRepo, catalogRepo, nil),
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		user:        seedUser(t, db, "Mia", "mia@example.com", false),
	}
}

func validShipping() ShippingInput {
	return ShippingInput{
		FirstName: "Mia",
		LastName:  "Wong",
		Phone:     "+1 555 0100",
		Address:   "12 Harbour Rd",
		City:      "Auckland",
	}
}

func TestOrderConfirmDecrementsStockAndClearsCart(t *testing.T) {
	f := newOrderServiceFixture(t, config.OrderConfig{})
	ctx := t.Context()
	wax := seedCatalogItem(t, f.catalogRepo, models.KindProduct, "Ceramic Wax", "24.00", 5)
	cam := seedCatalogItem(t, f.catalogRepo, models.KindGadget, "Dash Cam", "89.50", 3)

	if _, err := f.cartSvc.Replace(ctx, f.user.ID, []CartLineInput{
		{ItemID: wax.ID, Quantity: 2, Category: "Interior"},
		{ItemID: cam.ID, Quantity: 1, Category: "Gadget"},
	}); err != nil {
		t.Fatalf("replace cart failed: %v", err)
	}

	incomplete := validShipping()
	incomplete.City = " "
	if _, err := f.svc.Confirm(ctx, f.user.ID, incomplete); !errors.Is(err, ErrShippingIncomplete) {
		t.Fatalf("want ErrShippingIncomplete got %v", err)
	}

	order, err := f.svc.Confirm(ctx, f.user.ID, validShipping())
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if order.TotalPrice.String() != "137.50" {
		t.Fatalf("total want 137.50 got %s", order.TotalPrice.String())
	}
	if order.Status != constants.OrderStatusPending || order.PaymentMethod != constants.PaymentMethodCOD {
		t.Fatalf("unexpected order status/payment: %s/%s", order.Status, order.PaymentMethod)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(order.Items))
	}
	if got := reloadStock(t, f.catalogRepo, models.KindProduct, wax.ID); got != 3 {
		t.Fatalf("wax stock want 3 got %d", got)
	}
	if got := reloadStock(t, f.catalogRepo, models.KindGadget, cam.ID); got != 2 {
		t.Fatalf("cam stock want 2 got %d", got)
	}

	cart, err := f.cartRepo.GetByUser(ctx, f.user.ID)
	if err != nil || cart == nil || len(cart.Items) != 0 {
		t.Fatalf("cart should be cleared: %+v err=%v", cart, err)
	}
	if _, err := f.svc.Confirm(ctx, f.user.ID, validShipping()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}

	orders, err := f.svc.ListForUser(ctx, f.user.ID)
	if err != nil || len(orders) != 1 {
		t.Fatalf("list orders want 1 got %d err=%v", len(orders), err)
	}
}

func TestOrderConfirmInsufficientStockRollsBack(t *testing.T) {
	f := newOrderServiceFixture(t, config.OrderConfig{})
	ctx := t.Context()
	wax := seedCatalogItem(t, f.catalogRepo, models.KindProduct, "Ceramic Wax", "24.00", 5)
	cam := seedCatalogItem(t, f.catalogRepo, models.KindGadget, "Dash Cam", "89.50", 1)

	cart := &models.Cart{UserID: f.user.ID, Items: models.CartLines{
		{Product: models.CartProduct{ID: wax.ID, Name: wax.Name, Price: wax.Price, Category: "Interior", Kind: models.KindProduct}, Quantity: 2},
		{Product: models.CartProduct{ID: cam.ID, Name: cam.Name, Price: cam.Price, Category: "Gadget", Kind: models.KindGadget}, Quantity: 4},
	}}
	if err := f.cartRepo.Save(ctx, cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	_, err := f.svc.Confirm(ctx, f.user.ID, validShipping())
	var stockErr *StockError
	if !errors.As(err, &stockErr) || stockErr.ItemID != cam.ID || stockErr.Available != 1 {
		t.Fatalf("want StockError for cam got %v", err)
	}
	if got := reloadStock(t, f.catalogRepo, models.KindProduct, wax.ID); got != 5 {
		t.Fatalf("wax stock should be untouched, got %d", got)
	}
	var count int64
	f.db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("orders want 0 got %d", count)
	}
	stored, _ := f.cartRepo.GetByUser(ctx, f.user.ID)
	if stored == nil || len(stored.Items) != 2 {
		t.Fatalf("cart should be kept after failed checkout")
	}
}

func TestOrderConcurrentConfirmSellsLastUnitOnce(t *testing.T) {
	f := newOrderServiceFixture(t, config.OrderConfig{})
	ctx := t.Context()
	sqlDB, err := f.db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cam := seedCatalogItem(t, f.catalogRepo, models.KindGadget, "Dash Cam", "89.50", 1)
	buyers := []*models.User{f.user, seedUser(t, f.db, "Noah", "noah@example.com", false)}
	for _, buyer := range buyers {
		if _, err := f.cartSvc.AddItem(ctx, AddCartItemInput{UserID: buyer.ID, ItemID: cam.ID, Category: "Gadget", Quantity: 1}); err != nil {
			t.Fatalf("add cart item failed: %v", err)
		}
	}

	errs := make([]error, len(buyers))
	var wg sync.WaitGroup
	for i, buyer := range buyers {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = f.svc.Confirm(ctx, userID, validShipping())
		}(i, buyer.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr *StockError
		if !errors.As(err, &stockErr) || stockErr.Available != 0 {
			t.Fatalf("want StockError with 0 available got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("successful checkouts want 1 got %d", succeeded)
	}
	if got := reloadStock(t, f.catalogRepo, models.KindGadget, cam.ID); got != 0 {
		t.Fatalf("stock want 0 got %d", got)
	}
	var count int64
	f.db.Model(&models.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("orders want 1 got %d", count)
	}
}

func TestOrderCancelRestoresStock(t *testing.T) {
	cases := []struct {
		name         string
		legacy       bool
		wantCamStock int
		wantWaxStock int
	}{
		{name: "all_kinds", legacy: false, wantWaxStock: 5, wantCamStock: 3},
		{name: "legacy_product_only", legacy: true, wantWaxStock: 5, wantCamStock: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderServiceFixture(t, config.OrderConfig{LegacyCancelRestoreProductOnly: tc.legacy})
			ctx := t.Context()
			wax := seedCatalogItem(t, f.catalogRepo, models.KindProduct, "Ceramic Wax", "24.00", 5)
			cam := seedCatalogItem(t, f.catalogRepo, models.KindGadget, "Dash Cam", "89.50", 3)
			if _, err := f.cartSvc.Replace(ctx, f.user.ID, []CartLineInput{
				{ItemID: wax.ID, Quantity: 2, Category: "Interior"},
				{ItemID: cam.ID, Quantity: 1, Category: "Gadget"},
			}); err != nil {
				t.Fatalf("replace cart failed: %v", err)
			}
			order, err := f.svc.Confirm(ctx, f.user.ID, validShipping())
			if err != nil {
				t.Fatalf("confirm failed: %v", err)
			}

			other := seedUser(t, f.db, "Leo", "leo@example.com", false)
			if err := f.svc.Cancel(ctx, order.ID, other.ID); !errors.Is(err, ErrOrderNotFound) {
				t.Fatalf("foreign cancel want ErrOrderNotFound got %v", err)
			}
			if err := f.svc.Cancel(ctx, order.ID, f.user.ID); err != nil {
				t.Fatalf("cancel failed: %v", err)
			}
			if got := reloadStock(t, f.catalogRepo, models.KindProduct, wax.ID); got != tc.wantWaxStock {
				t.Fatalf("wax stock want %d got %d", tc.wantWaxStock, got)
			}
			if got := reloadStock(t, f.catalogRepo, models.KindGadget, cam.ID); got != tc.wantCamStock {
				t.Fatalf("cam stock want %d got %d", tc.wantCamStock, got)
			}
			if _, err := f.svc.Get(ctx, order.ID); !errors.Is(err, ErrOrderNotFound) {
				t.Fatalf("canceled order should be deleted, got %v", err)
			}
		})
	}
}

func TestOrderSetStatus(t *testing.T) {
	f := newOrderServiceFixture(t, config.OrderConfig{StatusEmailEnabled: true})
	ctx := t.Context()
	wax := seedCatalogItem(t, f.catalogRepo, models.KindProduct, "Ceramic Wax", "24.00", 5)
	if _, err := f.cartSvc.AddItem(ctx, AddCartItemInput{UserID: f.user.ID, ItemID: wax.ID, Category: "Product", Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	order, err := f.svc.Confirm(ctx, f.user.ID, validShipping())
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := f.svc.SetStatus(ctx, order.ID, "Lost"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("want ErrOrderStatusInvalid got %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, models.NewObjectID(), constants.OrderStatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
	updated, err := f.svc.SetStatus(ctx, order.ID, constants.OrderStatusShipped)
	if err != nil || updated.Status != constants.OrderStatusShipped {
		t.Fatalf("set status failed: %v", err)
	}
	if err := f.svc.Cancel(ctx, order.ID, f.user.ID); !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("want ErrOrderNotCancelable got %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, order.ID, constants.OrderStatusPending); err != nil {
		t.Fatalf("status should move back freely: %v", err)
	}

	all, err := f.svc.ListAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("list all want 1 got %d err=%v", len(all), err)
	}
	if all[0].User == nil || all[0].User.Email != "mia@example.com" {
		t.Fatalf("admin list should preload user: %+v", all[0].User)
	}
}
