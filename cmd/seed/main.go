package main

import (
	"context"
	"strings"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/logger"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"

	"github.com/shopspring/decimal"
)

type seedItem struct {
	Name        string
	Description string
	Price       string
	Category    string
	Stock       int
	Image       string
}

var seedCatalog = map[models.CatalogKind][]seedItem{
	models.KindProduct: {
		{Name: "Ceramic Coating Kit", Description: "9H ceramic protection for paint and trim", Price: "129.00", Category: "Exterior", Stock: 40, Image: "ceramic-kit.png"},
		{Name: "Leather Conditioner", Description: "pH balanced cleaner and conditioner for leather seats", Price: "24.50", Category: "Interior", Stock: 120, Image: "leather-conditioner.png"},
		{Name: "Microfiber Towel Set", Description: "Six plush 600gsm towels", Price: "19.99", Category: "Accessories", Stock: 200, Image: "microfiber-set.png"},
	},
	models.KindGadget: {
		{Name: "4K Dash Cam", Description: "Front and rear recording with parking mode", Price: "189.00", Category: "Gadgets", Stock: 25, Image: "dash-cam.png"},
		{Name: "Wireless Charging Mount", Description: "15W Qi mount with auto clamp", Price: "49.90", Category: "Gadgets", Stock: 60, Image: "charging-mount.png"},
	},
	models.KindFragrance: {
		{Name: "Oud Noir Diffuser", Description: "Vent clip diffuser with oud and amber notes", Price: "34.00", Category: "Fragrance", Stock: 80, Image: "oud-noir.png"},
		{Name: "Fresh Linen Spray", Description: "Fabric safe cabin spray", Price: "14.00", Category: "Fragrance", Stock: 150, Image: "fresh-linen.png"},
	},
	models.KindCarCareService: {
		{Name: "Full Detail", Description: "Interior and exterior detail with hand wax", Price: "249.00", Category: "Detailing", Stock: 10, Image: "full-detail.png"},
		{Name: "Paint Correction", Description: "Two stage machine polish", Price: "499.00", Category: "Detailing", Stock: 5, Image: "paint-correction.png"},
	},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Database.SQLLog); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewCatalogRepository(models.DB)
	baseURL := strings.TrimRight(cfg.Media.Local.BaseURL, "/")
	if baseURL == "" {
		baseURL = "/uploads"
	}

	for _, kind := range models.CatalogKinds {
		for _, seed := range seedCatalog[kind] {
			count, err := repo.CountByName(ctx, kind, seed.Name, nil)
			if err != nil {
				stdLog.Printf("Failed to check %s %q: %v", kind, seed.Name, err)
				continue
			}
			if count > 0 {
				stdLog.Printf("%s already exists: %s", kind, seed.Name)
				continue
			}
			item := &models.CatalogItem{
				Name:        seed.Name,
				Description: seed.Description,
				Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(seed.Price)),
				Category:    seed.Category,
				Stock:       seed.Stock,
				Images:      models.StringArray{baseURL + "/" + kind.Folder() + "/" + seed.Image},
				Kind:        kind,
			}
			if err := repo.Create(ctx, item); err != nil {
				stdLog.Printf("Failed to create %s %q: %v", kind, seed.Name, err)
				continue
			}
			stdLog.Printf("Created %s: %s", kind, seed.Name)
		}
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}
	stdLog.Printf("Seed completed")
}
