package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reclaimhq/reclaim/internal/config"
)

const baseToml = `
shutdown_timeout = "45s"

[server]
port = 9090

[database]
name = "reclaim"
user = "reclaim"

[storage]
connection_string = "UseDevelopmentStorage=true"

[api.cors]
enabled = true
origins = ["http://localhost:5173"]
`

func writeConfig(t *testing.T, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(".", name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("base file with defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("GEMINI_API_KEY", "")
		writeConfig(t, config.BaseConfigFile, baseToml)

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if cfg.Server.Port != 9090 {
			t.Errorf("server port = %d, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Host != "0.0.0.0" {
			t.Errorf("server host = %q, want 0.0.0.0", cfg.Server.Host)
		}
		if cfg.ShutdownTimeoutDuration() != 45*time.Second {
			t.Errorf("shutdown timeout = %v, want 45s", cfg.ShutdownTimeoutDuration())
		}
		if cfg.API.BasePath != "/api" {
			t.Errorf("base path = %q, want /api", cfg.API.BasePath)
		}
		if cfg.API.MaxUploadSizeBytes() != 5*1024*1024 {
			t.Errorf("max upload = %d, want 5MB", cfg.API.MaxUploadSizeBytes())
		}
		if cfg.Oracle.Enabled() {
			t.Error("oracle enabled without api key")
		}
	})

	t.Run("missing base file uses env", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("RECLAIM_DB_NAME", "reclaim")
		t.Setenv("RECLAIM_DB_USER", "reclaim")
		t.Setenv("RECLAIM_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if cfg.Database.Name != "reclaim" {
			t.Errorf("db name = %q, want reclaim", cfg.Database.Name)
		}
		if cfg.ShutdownTimeout != "30s" {
			t.Errorf("shutdown timeout = %q, want 30s", cfg.ShutdownTimeout)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeConfig(t, config.BaseConfigFile, baseToml)
		t.Setenv("RECLAIM_SERVER_PORT", "8081")
		t.Setenv("RECLAIM_DB_PASSWORD", "secret")
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if cfg.Server.Port != 8081 {
			t.Errorf("server port = %d, want 8081", cfg.Server.Port)
		}
		if cfg.Database.Password != "secret" {
			t.Errorf("db password = %q, want secret", cfg.Database.Password)
		}
		if !cfg.Oracle.Enabled() {
			t.Error("oracle disabled with api key present")
		}
	})

	t.Run("environment overlay merges", func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeConfig(t, config.BaseConfigFile, baseToml)
		writeConfig(t, "config.staging.toml", "[database]\nhost = \"db.staging.internal\"\n")
		t.Setenv("RECLAIM_ENV", "staging")

		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if cfg.Env() != "staging" {
			t.Errorf("env = %q, want staging", cfg.Env())
		}
		if cfg.Database.Host != "db.staging.internal" {
			t.Errorf("db host = %q, want db.staging.internal", cfg.Database.Host)
		}
		if cfg.Database.Name != "reclaim" {
			t.Errorf("db name = %q, want reclaim", cfg.Database.Name)
		}
	})

	t.Run("invalid shutdown timeout rejected", func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeConfig(t, config.BaseConfigFile, baseToml)
		t.Setenv("RECLAIM_SHUTDOWN_TIMEOUT", "whenever")

		if _, err := config.Load(); err == nil {
			t.Error("Load accepted invalid shutdown timeout")
		}
	})

	t.Run("missing database config rejected", func(t *testing.T) {
		t.Chdir(t.TempDir())

		if _, err := config.Load(); err == nil {
			t.Error("Load accepted empty database config")
		}
	})
}
