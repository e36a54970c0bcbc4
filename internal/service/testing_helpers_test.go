package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateSchema(db); err != nil {
		t.Fatalf("migrate schema failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedCatalogItem(t *testing.T, repo repository.CatalogRepository, kind models.CatalogKind, name, price string, stock int) *models.CatalogItem {
	t.Helper()
	item := &models.CatalogItem{
		Name:        name,
		Description: name + " description",
		Price:       models.MustMoney(price),
		Category:    "Interior",
		Stock:       stock,
		Images:      models.StringArray{"/uploads/" + kind.Folder() + "/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".png"},
		Kind:        kind,
	}
	if err := repo.Create(t.Context(), item); err != nil {
		t.Fatalf("seed catalog item failed: %v", err)
	}
	return item
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		IsAdmin:      isAdmin,
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func reloadStock(t *testing.T, repo repository.CatalogRepository, kind models.CatalogKind, id string) int {
	t.Helper()
	item, err := repo.GetByID(t.Context(), kind, id)
	if err != nil || item == nil {
		t.Fatalf("reload item failed: %v", err)
	}
	return item.Stock
}
