package service

import (
	"errors"
	"testing"

	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
)

type cartServiceFixture struct {
	svc         *CartService
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	userID      string
}

func newCartServiceFixture(t *testing.T) cartServiceFixture {
	t.Helper()
	db := openServiceTestDB(t)
	cartRepo := repository.NewCartRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	return cartServiceFixture{
		svc:         NewCartService(cartRepo, catalogRepo, nil),
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		userID:      models.NewObjectID(),
	}
}

func TestCartReplaceMergesAndValidates(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := t.Context()
	wax := seedCatalogItem(t, f.catalogRepo, models.KindProduct, "Ceramic Wax", "24.00", 5)
	cam := seedCatalogItem(t, f.catalogRepo, models.KindGadget, "Dash Cam", "89.50", 2)

	if _, err := f.svc.Replace(ctx, f.userID, nil); !errors.Is(err, ErrCartItemsRequired) {
		t.Fatalf("want ErrCartItemsRequired got %v", err)
	}
	if _, err := f.svc.Replace(ctx, f.userID, []CartLineInput{{ItemID: wax.ID, Quantity: 0, Category: "Interior"}}); !errors.Is(err, ErrCartLineInvalid) {
		t.Fatalf("want ErrCartLineInvalid got %v", err)
	}
	_, err := f.svc.Replace(ctx, f.userID, []CartLineInput{{ItemID: wax.ID, Quantity: 1, Category: "Books"}})
	var categoryErr *CategoryError
	if !errors.As(err, &categoryErr) || categoryErr.Category != "Books" {
		t.Fatalf("want CategoryError(Books) got %v", err)
	}

	cart, err := f.svc.Replace(ctx, f.userID, []CartLineInput{
		{ItemID: wax.ID, Quantity: 2, Category: "Interior"},
		{ItemID: wax.ID, Quantity: 1, Category: "Exterior"},
		{ItemID: cam.ID, Quantity: 2, Category: "Gadgets"},
	})
	if err != nil {
		t.Fatalf("replace cart failed: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("lines want 2 got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 || cart.Items[0].Product.Kind != models.KindProduct {
		t.Fatalf("unexpected merged line: %+v", cart.Items[0])
	}
	if cart.Items[1].Product.Kind != models.KindGadget || cart.Items[1].Product.Price.String() != "89.50" {
		t.Fatalf("unexpected gadget line: %+v", cart.Items[1])
	}

	_, err = f.svc.Replace(ctx, f.userID, []CartLineInput{{ItemID: cam.ID, Quantity: 3, Category: "Gadget"}})
	var stockErr *StockError
	if !errors.As(err, &stockErr) || stockErr.Available != 2 {
		t.Fatalf("want StockError(available=2) got %v", err)
	}
	stored, _ := f.cartRepo.GetByUser(ctx, f.userID)
	if stored == nil || len(stored.Items) != 2 {
		t.Fatalf("failed replace should leave cart untouched: %+v", stored)
	}

	missing := models.NewObjectID()
	_, err = f.svc.Replace(ctx, f.userID, []CartLineInput{{ItemID: missing, Quantity: 1, Category: "Fragrance"}})
	var notFound *ItemNotFoundError
	if !errors.As(err, &notFound) || notFound.ItemID != missing {
		t.Fatalf("want ItemNotFoundError got %v", err)
	}
}

func TestCartAddItemOverflow(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := t.Context()
	freshener := seedCatalogItem(t, f.catalogRepo, models.KindFragrance, "Pine Freshener", "6.50", 4)
	empty := seedCatalogItem(t, f.catalogRepo, models.KindFragrance, "Ocean Mist", "6.50", 0)

	if _, err := f.svc.AddItem(ctx, AddCartItemInput{UserID: f.userID, ItemID: empty.ID, Category: "Fragrance", Quantity: 1}); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock got %v", err)
	}

	cart, err := f.svc.AddItem(ctx, AddCartItemInput{UserID: f.userID, ItemID: freshener.ID, Category: "Fragrance", Quantity: 3})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("unexpected cart: %+v", cart.Items)
	}

	_, err = f.svc.AddItem(ctx, AddCartItemInput{UserID: f.userID, ItemID: freshener.ID, Category: "Fragrance", Quantity: 2})
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want StockError got %v", err)
	}
	if stockErr.MaxAvailable == nil || *stockErr.MaxAvailable != 1 {
		t.Fatalf("max available want 1 got %v", stockErr.MaxAvailable)
	}

	cart, err = f.svc.AddItem(ctx, AddCartItemInput{UserID: f.userID, ItemID: freshener.ID, Category: "Fragrance", Quantity: 1})
	if err != nil {
		t.Fatalf("add last unit failed: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("quantity want 4 got %d", cart.Items[0].Quantity)
	}
}

func TestCartUpdateRemoveClearFetch(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := t.Context()
	wash := seedCatalogItem(t, f.catalogRepo, models.KindCarCareService, "Full Detail", "120.00", 5)

	if _, err := f.svc.UpdateLine(ctx, f.userID, wash.ID, 1); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound got %v", err)
	}
	if _, err := f.svc.AddItem(ctx, AddCartItemInput{UserID: f.userID, ItemID: wash.ID, Category: "CarCare", Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if _, err := f.svc.UpdateLine(ctx, f.userID, wash.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
	if _, err := f.svc.UpdateLine(ctx, f.userID, models.NewObjectID(), 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}
	_, err := f.svc.UpdateLine(ctx, f.userID, wash.ID, 9)
	var stockErr *StockError
	if !errors.As(err, &stockErr) || stockErr.MaxAvailable == nil || *stockErr.MaxAvailable != 5 {
		t.Fatalf("want StockError(max=5) got %v", err)
	}
	cart, err := f.svc.UpdateLine(ctx, f.userID, wash.ID, 4)
	if err != nil || cart.Items[0].Quantity != 4 {
		t.Fatalf("update line failed: %v", err)
	}

	fetched, err := f.svc.Fetch(ctx, f.userID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if fetched.Items[0].Product.Image == nil || *fetched.Items[0].Product.Image != wash.Images[0] {
		t.Fatalf("fetch should attach first image, got %+v", fetched.Items[0].Product.Image)
	}

	if _, err := f.svc.RemoveLine(ctx, f.userID, "bad"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("want ErrInvalidID got %v", err)
	}
	cart, err = f.svc.RemoveLine(ctx, f.userID, wash.ID)
	if err != nil || len(cart.Items) != 0 {
		t.Fatalf("remove line failed: %v", err)
	}
	if _, err := f.svc.RemoveLine(ctx, f.userID, wash.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}

	if _, err := f.svc.AddItem(ctx, AddCartItemInput{UserID: f.userID, ItemID: wash.ID, Category: "CarCareService", Quantity: 2}); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	cart, err = f.svc.Clear(ctx, f.userID)
	if err != nil || len(cart.Items) != 0 {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := f.svc.Clear(ctx, models.NewObjectID()); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("clear missing cart want ErrCartNotFound got %v", err)
	}
}

func TestLineKindFallsBackToCategory(t *testing.T) {
	cases := []struct {
		line models.CartLine
		want models.CatalogKind
	}{
		{models.CartLine{Product: models.CartProduct{Kind: models.KindGadget, Category: "Interior"}}, models.KindGadget},
		{models.CartLine{Product: models.CartProduct{Category: "Fragrance"}}, models.KindFragrance},
		{models.CartLine{Product: models.CartProduct{Category: "Seats"}}, models.KindProduct},
	}
	for _, tc := range cases {
		if got := lineKind(tc.line); got != tc.want {
			t.Fatalf("lineKind(%+v) want %s got %s", tc.line.Product, tc.want, got)
		}
	}
}
