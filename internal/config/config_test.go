package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/simp-lee/epubkit/internal/config"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Extract.MaxEntryMiB != 256 {
		t.Fatalf("unexpected max entry size: %d", cfg.Extract.MaxEntryMiB)
	}
	if cfg.Extract.RequireEmptyTarget {
		t.Fatal("expected merge into non-empty targets by default")
	}
	if cfg.Pack.CompressionLevel != -1 {
		t.Fatalf("unexpected compression level: %d", cfg.Pack.CompressionLevel)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if got := cfg.MaxEntryBytes(); got != 256*1024*1024 {
		t.Fatalf("MaxEntryBytes = %d", got)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "epubkit.toml")

	cfg := config.Default()
	cfg.Metadata.Language = " zh-CN "
	cfg.Metadata.TitleSuffix = "(Chinese)"
	cfg.Pack.CompressionLevel = 9
	cfg.Logging.Level = "DEBUG"
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %s to be loaded, got %q (exists=%v)", path, resolved, exists)
	}
	if loaded.Metadata.Language != "zh-CN" {
		t.Fatalf("language not normalised: %q", loaded.Metadata.Language)
	}
	if loaded.Metadata.TitleSuffix != "(Chinese)" {
		t.Fatalf("unexpected title suffix: %q", loaded.Metadata.TitleSuffix)
	}
	if loaded.Pack.CompressionLevel != 9 {
		t.Fatalf("unexpected compression level: %d", loaded.Pack.CompressionLevel)
	}
	if loaded.Logging.Level != "debug" {
		t.Fatalf("log level not normalised: %q", loaded.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epubkit.toml")
	content := `
[pack]
compression_level = 12

[log]
format = "yaml"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"pack.compression_level", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epubkit.toml")
	if err := os.WriteFile(path, []byte("[pack]\nlevel = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Pack.CompressionLevel != config.Default().Pack.CompressionLevel {
		t.Fatalf("sample compression level differs from default: %d", cfg.Pack.CompressionLevel)
	}
}
