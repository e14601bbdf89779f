package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.kdl"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTokenLength != Default().MaxTokenLength {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoadParsesKDL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mailfts.kdl")
	content := `
max_token_length 64
min_language_score 0.7
batch_size 500
position_gap 5
watch {
    root "maildir"
    exclude "**/tmp/**" "**/.git/**"
}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTokenLength != 64 {
		t.Errorf("MaxTokenLength = %d, want 64", cfg.MaxTokenLength)
	}
	if cfg.MinLanguageScore != 0.7 {
		t.Errorf("MinLanguageScore = %f, want 0.7", cfg.MinLanguageScore)
	}
	if cfg.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want 500", cfg.BatchSize)
	}
	if cfg.PositionGap != 5 {
		t.Errorf("PositionGap = %d, want 5", cfg.PositionGap)
	}
	if len(cfg.WatchRoots) != 1 || filepath.Base(cfg.WatchRoots[0]) != "maildir" {
		t.Errorf("WatchRoots = %v, want one entry ending in maildir", cfg.WatchRoots)
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("Exclude = %v, want 2 entries", cfg.Exclude)
	}
}

func TestValidateAndSetDefaultsRejectsInvalidFields(t *testing.T) {
	cfg := &Config{MaxTokenLength: -1, MinLanguageScore: 2, BatchSize: 0, PositionGap: -5}
	if err := NewValidator().ValidateAndSetDefaults(cfg); err == nil {
		t.Fatalf("expected validation error for invalid fields")
	}
}

func TestValidateAndSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{MaxTokenLength: 10, MinLanguageScore: 0.5, BatchSize: 0, PositionGap: 0}
	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if cfg.BatchSize != Default().BatchSize {
		t.Errorf("BatchSize = %d, want default filled in", cfg.BatchSize)
	}
}
