package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("server port want 5000 got %s", cfg.Server.Port)
	}
	if !cfg.Server.IsDebug() {
		t.Fatalf("default mode should be debug")
	}
	if cfg.Order.LegacyCancelRestoreProductOnly {
		t.Fatalf("legacy cancel restore should default to false")
	}
	if len(cfg.Review.QualifyingStatuses) != 1 || cfg.Review.QualifyingStatuses[0] != "Delivered" {
		t.Fatalf("qualifying statuses want [Delivered] got %v", cfg.Review.QualifyingStatuses)
	}
	if cfg.Media.Driver != "local" {
		t.Fatalf("media driver want local got %s", cfg.Media.Driver)
	}
	if cfg.Queue.Queues["critical"] != 5 {
		t.Fatalf("critical queue weight want 5 got %d", cfg.Queue.Queues["critical"])
	}
}

func TestDecodeFromYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  mode: release
media:
  driver: gcs
  gcs:
    bucket: autoluxe-assets
order:
  legacy_cancel_restore_product_only: true
review:
  qualifying_statuses: ["Shipped", "Delivered"]
`)
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("read config failed: %v", err)
	}
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Server.IsDebug() {
		t.Fatalf("release mode should not be debug")
	}
	if cfg.Media.GCS.Bucket != "autoluxe-assets" {
		t.Fatalf("bucket want autoluxe-assets got %s", cfg.Media.GCS.Bucket)
	}
	if !cfg.Order.LegacyCancelRestoreProductOnly {
		t.Fatalf("legacy flag should be true")
	}
	if len(cfg.Review.QualifyingStatuses) != 2 {
		t.Fatalf("qualifying statuses want 2 got %v", cfg.Review.QualifyingStatuses)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("unset keys should keep defaults, got port %s", cfg.Server.Port)
	}
}
