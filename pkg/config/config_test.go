package config

import (
	"os"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if cfg.Store.Backend != StoreBackendJSON {
		t.Fatalf("expected default json backend, got %q", cfg.Store.Backend)
	}

	if cfg.Store.Path != "lending_db.json" {
		t.Fatalf("unexpected default store path %q", cfg.Store.Path)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_UnknownStoreBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreBackend, "mongo")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown store backend to return an error")
	}
}

func TestLoad_DBBackendDefaultsSQLiteDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreBackend, StoreBackendDB)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN == "" {
		t.Fatal("expected sqlite DSN to be backfilled")
	}
}

func TestLoad_DBBackendPostgresNeedsLegacyVars(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStoreBackend, StoreBackendDB)
	t.Setenv("LENDDESK_DB_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing postgres connection vars to return an error")
	}

	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBUser, "lenddesk")
	t.Setenv(EnvDBName, "lenddesk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "postgres://lenddesk@localhost:5432/lenddesk?sslmode=disable" {
		t.Fatalf("unexpected DSN %q", cfg.DB.DSN)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
