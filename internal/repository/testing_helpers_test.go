package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/autoluxe/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
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

func createCatalogItem(t *testing.T, repo *GormCatalogRepository, kind models.CatalogKind, name string, stock int) *models.CatalogItem {
	t.Helper()
	item := &models.CatalogItem{
		Name:        name,
		Description: name + " description",
		Price:       models.MustMoney("19.99"),
		Category:    "Interior",
		Stock:       stock,
		Images:      models.StringArray{"/uploads/" + kind.Folder() + "/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".png"},
		Kind:        kind,
	}
	if err := repo.Create(t.Context(), item); err != nil {
		t.Fatalf("create catalog item failed: %v", err)
	}
	return item
}
