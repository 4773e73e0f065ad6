package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModelsDir != "models" {
		t.Errorf("models dir = %q", cfg.ModelsDir)
	}
	if cfg.PageSize != 50 {
		t.Errorf("page size = %d", cfg.PageSize)
	}
	if cfg.Database != "" {
		t.Errorf("database = %q, want unset by default", cfg.Database)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hedgegen.yaml")
	content := "models_dir: domain\npage_size: 25\ndatabase: app.db\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModelsDir != "domain" || cfg.PageSize != 25 || cfg.Database != "app.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.MigrationsDir != "migrations" {
		t.Errorf("migrations dir = %q", cfg.MigrationsDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HEDGEGEN_DATABASE", "env.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database != "env.db" {
		t.Errorf("database = %q, want env.db", cfg.Database)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("an explicitly named config file must exist")
	}
}
