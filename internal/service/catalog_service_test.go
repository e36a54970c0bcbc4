package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
	"github.com/autoluxe/internal/storage"
)

func newCatalogServiceFixture(t *testing.T) (*CatalogService, repository.CatalogRepository, string) {
	t.Helper()
	db := openServiceTestDB(t)
	repo := repository.NewCatalogRepository(db)
	dir := t.TempDir()
	media := storage.NewLocalHost(dir, "/uploads")
	return NewCatalogService(repo, media, newDisabledQueueClient(t), config.CatalogConfig{}), repo, dir
}

func pngObject() *storage.Object {
	return &storage.Object{
		Ext:         ".png",
		ContentType: "image/png",
		Body:        strings.NewReader("\x89PNG fake"),
	}
}

func localPath(dir, url string) string {
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
}

func TestCatalogCreateRequiresImage(t *testing.T) {
	svc, _, dir := newCatalogServiceFixture(t)
	ctx := t.Context()

	input := CreateCatalogItemInput{Name: "Dash Cam", Price: models.MustMoney("89.50"), Category: "Electronics", Stock: 4}
	if _, err := svc.Create(ctx, models.KindGadget, input, nil); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("want ErrImageRequired got %v", err)
	}
	if _, err := svc.Create(ctx, models.KindGadget, CreateCatalogItemInput{Name: " "}, pngObject()); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("want ErrNameRequired got %v", err)
	}

	item, err := svc.Create(ctx, models.KindGadget, input, pngObject())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(item.Images) != 1 || !strings.HasPrefix(item.Images[0], "/uploads/gadgets/") {
		t.Fatalf("image should be stored under the gadgets folder, got %v", item.Images)
	}
	if _, err := os.Stat(localPath(dir, item.Images[0])); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	got, err := svc.Get(ctx, models.KindGadget, item.ID)
	if err != nil || got.Name != "Dash Cam" || got.Kind != models.KindGadget {
		t.Fatalf("get failed: %+v err=%v", got, err)
	}
	if _, err := svc.Get(ctx, models.KindGadget, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("want ErrInvalidID got %v", err)
	}
	if _, err := svc.Get(ctx, models.KindProduct, item.ID); !errors.Is(err, ErrCatalogItemNotFound) {
		t.Fatalf("other kind should not find item, got %v", err)
	}
}

func TestCatalogFragranceNameUnique(t *testing.T) {
	svc, _, _ := newCatalogServiceFixture(t)
	ctx := t.Context()
	input := CreateCatalogItemInput{Name: "Pine Freshener", Price: models.MustMoney("6.50"), Stock: 10}

	first, err := svc.Create(ctx, models.KindFragrance, input, pngObject())
	if err != nil {
		t.Fatalf("create fragrance failed: %v", err)
	}
	if _, err := svc.Create(ctx, models.KindFragrance, input, pngObject()); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("want ErrNameTaken got %v", err)
	}
	if _, err := svc.Create(ctx, models.KindProduct, input, pngObject()); err != nil {
		t.Fatalf("products allow duplicate names: %v", err)
	}

	same := "Pine Freshener"
	if _, err := svc.Update(ctx, models.KindFragrance, first.ID, UpdateCatalogItemInput{Name: &same}, nil); err != nil {
		t.Fatalf("keeping the same name should pass: %v", err)
	}
}

func TestCatalogUpdatePatchesAndReplacesImage(t *testing.T) {
	svc, _, dir := newCatalogServiceFixture(t)
	ctx := t.Context()
	item, err := svc.Create(ctx, models.KindProduct, CreateCatalogItemInput{Name: "Seat Cover", Price: models.MustMoney("40.00"), Stock: 6}, pngObject())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	oldImage := item.Images[0]

	zero := 0
	price := models.MustMoney("35.00")
	updated, err := svc.Update(ctx, models.KindProduct, item.ID, UpdateCatalogItemInput{Stock: &zero, Price: &price}, pngObject())
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Stock != 0 || updated.Price.String() != "35.00" || updated.Name != "Seat Cover" {
		t.Fatalf("unexpected patch result: %+v", updated)
	}
	if updated.Images[0] == oldImage {
		t.Fatalf("first image should be replaced")
	}
	if _, err := os.Stat(localPath(dir, oldImage)); !os.IsNotExist(err) {
		t.Fatalf("old image should be released, stat err=%v", err)
	}

	negative := -1
	if _, err := svc.Update(ctx, models.KindProduct, item.ID, UpdateCatalogItemInput{Stock: &negative}, nil); !errors.Is(err, ErrStockInvalid) {
		t.Fatalf("want ErrStockInvalid got %v", err)
	}
}

// checkoutDuringReadRepo 读取后立即扣减库存，模拟结算在读写之间提交
type checkoutDuringReadRepo struct {
	repository.CatalogRepository
	quantity int
	done     bool
}

func (r *checkoutDuringReadRepo) GetByID(ctx context.Context, kind models.CatalogKind, id string) (*models.CatalogItem, error) {
	item, err := r.CatalogRepository.GetByID(ctx, kind, id)
	if err != nil || item == nil || r.done {
		return item, err
	}
	r.done = true
	if _, err := r.CatalogRepository.DecrementStock(ctx, kind, id, r.quantity); err != nil {
		return nil, err
	}
	return item, nil
}

type failingUpdateRepo struct {
	repository.CatalogRepository
}

func (r failingUpdateRepo) UpdateFields(context.Context, models.CatalogKind, string, map[string]interface{}) (int64, error) {
	return 0, errors.New("write failed")
}

func TestCatalogUpdateKeepsConcurrentStockDecrement(t *testing.T) {
	svc, repo, _ := newCatalogServiceFixture(t)
	ctx := t.Context()
	item := seedCatalogItem(t, repo, models.KindProduct, "Ceramic Wax", "24.00", 5)

	svc.repo = &checkoutDuringReadRepo{CatalogRepository: repo, quantity: 3}
	desc := "Hydrophobic coating"
	updated, err := svc.Update(ctx, models.KindProduct, item.ID, UpdateCatalogItemInput{Description: &desc}, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := reloadStock(t, repo, models.KindProduct, item.ID); got != 2 {
		t.Fatalf("stock want 2 got %d", got)
	}
	if updated.Stock != 2 || updated.Description != desc {
		t.Fatalf("unexpected update result: stock=%d description=%q", updated.Stock, updated.Description)
	}

	stock := 9
	if _, err := svc.Update(ctx, models.KindProduct, item.ID, UpdateCatalogItemInput{Stock: &stock}, nil); err != nil {
		t.Fatalf("explicit stock update failed: %v", err)
	}
	if got := reloadStock(t, repo, models.KindProduct, item.ID); got != 9 {
		t.Fatalf("explicit stock want 9 got %d", got)
	}
}

func TestCatalogUpdateReleasesUploadWhenWriteFails(t *testing.T) {
	svc, repo, dir := newCatalogServiceFixture(t)
	ctx := t.Context()
	item, err := svc.Create(ctx, models.KindGadget, CreateCatalogItemInput{Name: "Dash Cam", Price: models.MustMoney("89.50"), Stock: 2}, pngObject())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	svc.repo = failingUpdateRepo{CatalogRepository: repo}
	if _, err := svc.Update(ctx, models.KindGadget, item.ID, UpdateCatalogItemInput{}, pngObject()); err == nil {
		t.Fatalf("update should fail")
	}
	entries, err := os.ReadDir(filepath.Join(dir, models.KindGadget.Folder()))
	if err != nil {
		t.Fatalf("read media dir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("only the original image should remain, got %d files", len(entries))
	}
	if _, err := os.Stat(localPath(dir, item.Images[0])); err != nil {
		t.Fatalf("original image should be kept: %v", err)
	}
}

func TestCatalogDeleteReleasesImages(t *testing.T) {
	svc, repo, dir := newCatalogServiceFixture(t)
	ctx := t.Context()
	item, err := svc.Create(ctx, models.KindCarCareService, CreateCatalogItemInput{Name: "Full Detail", Price: models.MustMoney("120.00"), Stock: 3}, pngObject())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(ctx, models.KindCarCareService, item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := repo.GetByID(ctx, models.KindCarCareService, item.ID); got != nil {
		t.Fatalf("item should be deleted")
	}
	if _, err := os.Stat(localPath(dir, item.Images[0])); !os.IsNotExist(err) {
		t.Fatalf("image should be released, stat err=%v", err)
	}
	if err := svc.Delete(ctx, models.KindCarCareService, item.ID); !errors.Is(err, ErrCatalogItemNotFound) {
		t.Fatalf("want ErrCatalogItemNotFound got %v", err)
	}
}

func TestCatalogListPaginates(t *testing.T) {
	svc, repo, _ := newCatalogServiceFixture(t)
	ctx := t.Context()
	for i := 0; i < 12; i++ {
		name := "Wax"
		if i%2 == 0 {
			name = "Shampoo"
		}
		seedCatalogItem(t, repo, models.KindProduct, name+" "+string(rune('A'+i)), "10.00", 1)
	}

	page, err := svc.List(ctx, models.KindProduct, "", 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Pages != 2 || page.Page != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: pages=%d page=%d items=%d", page.Pages, page.Page, len(page.Items))
	}

	page, err = svc.List(ctx, models.KindProduct, "shampoo", 0)
	if err != nil {
		t.Fatalf("keyword list failed: %v", err)
	}
	if page.Total != 6 || page.Page != 1 || page.Pages != 1 {
		t.Fatalf("keyword filter want 6 total got %d (pages=%d)", page.Total, page.Pages)
	}
}

func TestCountPages(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
	}
	for _, tc := range cases {
		if got := countPages(tc.total, 10); got != tc.want {
			t.Fatalf("countPages(%d) want %d got %d", tc.total, tc.want, got)
		}
	}
}
