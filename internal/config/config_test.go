package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  mode: release
database:
  host: db.internal
  port: 3306
  user: app
  password: secret
  dbname: gestionprojet
jwt:
  secret: test-secret
  expire_hours: 24
storage:
  dir: /tmp/uploads
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.JWT.ExpireHours != 24 {
		t.Errorf("expire_hours = %d", cfg.JWT.ExpireHours)
	}
	want := "app:secret@tcp(db.internal:3306)/gestionprojet?charset=utf8mb4&parseTime=True&loc=UTC"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("default base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.Storage.TimeoutSeconds != 10 || cfg.Storage.MaxUploadMB != 20 {
		t.Error("storage defaults not applied")
	}
	if cfg.RateLimit.AuthPerMinute != 10 {
		t.Errorf("default auth rate = %d", cfg.RateLimit.AuthPerMinute)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing jwt.secret")
	}
}
