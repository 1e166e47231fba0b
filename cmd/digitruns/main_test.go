package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	apppkg "github.com/hyperifyio/digitruns/internal/app"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DIGITRUNS_INPUT", "DIGITRUNS_OUTPUT", "INPUT_FORMAT", "OUTPUT_FORMAT", "LANGUAGE", "CACHE_DIR", "CACHE_MAX_AGE", "FOLD_WIDTH", "VERBOSE", "DIGITRUNS_CONFIG"} {
		t.Setenv(k, "")
	}
}

// Smoke test: run writes a report for a file input.
func TestRun_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.md")
	if err := os.WriteFile(in, []byte("A56B455VB23GTY23J"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg := apppkg.Config{InputPath: in, OutputPath: out, OutputFormat: "markdown"}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil || len(b) == 0 {
		t.Fatalf("expected output file, err=%v", err)
	}
}

// Invalid configuration surfaces as ErrInvalidConfig so main exits with 2.
func TestRun_InvalidConfig(t *testing.T) {
	err := run(context.Background(), apppkg.Config{InputPath: "-", OutputFormat: "pdf"})
	if !errors.Is(err, apppkg.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, version, err := loadConfig([]string{"-env", ""}, io.Discard)
	if err != nil || version {
		t.Fatalf("loadConfig: %v version=%v", err, version)
	}
	if cfg.InputPath != "-" || cfg.OutputFormat != "lines" || cfg.CacheDir != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

// Precedence: flags > env > config file > defaults.
func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "digitruns.yaml")
	content := "input: from-file.txt\nformat:\n  output: yaml\n  input: html\ncache:\n  dir: file-cache\n  maxAge: 1h\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OUTPUT_FORMAT", "json")
	t.Setenv("CACHE_DIR", "env-cache")

	cfg, _, err := loadConfig([]string{"-env", "", "-config", cfgPath, "-cache.dir", "flag-cache"}, io.Discard)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.InputPath != "from-file.txt" || cfg.InputFormat != "html" {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.OutputFormat != "json" {
		t.Fatalf("env should beat file, got %q", cfg.OutputFormat)
	}
	if cfg.CacheDir != "flag-cache" {
		t.Fatalf("flag should beat env, got %q", cfg.CacheDir)
	}
	if cfg.CacheMaxAge != time.Hour {
		t.Fatalf("file max age lost, got %v", cfg.CacheMaxAge)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("OUTPUT_FORMAT=markdown\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	cfg, _, err := loadConfig([]string{"-env", envPath}, io.Discard)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.OutputFormat != "markdown" {
		t.Fatalf("dotenv value not applied, got %q", cfg.OutputFormat)
	}
}

func TestLoadConfig_VersionAndBadFlags(t *testing.T) {
	if _, version, err := loadConfig([]string{"-version"}, io.Discard); err != nil || !version {
		t.Fatalf("expected version request, got %v %v", version, err)
	}
	if _, _, err := loadConfig([]string{"-no-such-flag"}, io.Discard); err == nil {
		t.Fatalf("expected flag parse error")
	}
	if _, _, err := loadConfig([]string{"-env", "", "-config", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard); !errors.Is(err, apppkg.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for missing config file, got %v", err)
	}
}
