package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("GEOCODER_API_KEY", "key")
	t.Setenv("ADMIN_ID", "100500")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.WarehouseLat != 53.136631 || cfg.WarehouseLon != 25.805957 {
		t.Errorf("warehouse = (%v, %v), want (53.136631, 25.805957)", cfg.WarehouseLat, cfg.WarehouseLon)
	}
	if cfg.DeliveryCostPerKm != 1.0 {
		t.Errorf("delivery cost = %v, want 1.0", cfg.DeliveryCostPerKm)
	}
	if cfg.AdminID != 100500 {
		t.Errorf("admin ID = %v, want 100500", cfg.AdminID)
	}
	if cfg.ArchiveEnabled() {
		t.Error("archive must be disabled without DB_HOST")
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("GEOCODER_API_KEY", "key")
	t.Setenv("ADMIN_ID", "1")

	if _, err := Load(); err == nil {
		t.Error("expected error without TELEGRAM_TOKEN")
	}
}

func TestLoad_ArchiveRequiresCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "localhost")

	if _, err := Load(); err == nil {
		t.Error("expected error when DB_HOST set without DB_USER/DB_NAME")
	}

	t.Setenv("DB_USER", "woodshop")
	t.Setenv("DB_NAME", "woodshop")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.ArchiveEnabled() {
		t.Error("archive must be enabled with full DB config")
	}
}
