package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port  int           `env:"ASCENT_TEST_PORT" envDefault:"123"`
	Every time.Duration `env:"ASCENT_TEST_EVERY" envDefault:"500ms"`
	Inner struct {
		Speed float32 `env:"SPEED" envDefault:"0.5"`
	} `envPrefix:"ASCENT_TEST_WATER_"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Errorf("Expected default port 123, got %d", cfg.Port)
	}
	if cfg.Every != 500*time.Millisecond {
		t.Errorf("Expected 500ms, got %v", cfg.Every)
	}
	if cfg.Inner.Speed != 0.5 {
		t.Errorf("Expected nested default 0.5, got %f", cfg.Inner.Speed)
	}
}

func TestParseEnvPrefixedOverride(t *testing.T) {
	t.Setenv("ASCENT_TEST_WATER_SPEED", "2.5")
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Inner.Speed != 2.5 {
		t.Errorf("Expected 2.5, got %f", cfg.Inner.Speed)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ASCENT_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("Expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("ASCENT_TEST_DOTENV=from-file\nASCENT_TEST_KEEP=from-file\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("ASCENT_TEST_KEEP", "from-env")
	t.Setenv("ASCENT_TEST_DOTENV", "")
	os.Unsetenv("ASCENT_TEST_DOTENV")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("ASCENT_TEST_DOTENV"); got != "from-file" {
		t.Errorf("Expected from-file, got %q", got)
	}
	if got := os.Getenv("ASCENT_TEST_KEEP"); got != "from-env" {
		t.Errorf("Expected the environment to win, got %q", got)
	}
}
