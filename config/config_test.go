package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Data.QuoteGlob != "quotes*.csv" {
		t.Errorf("expected QuoteGlob=quotes*.csv, got %s", cfg.Data.QuoteGlob)
	}
	if cfg.Embedding.Provider != "ollama" {
		t.Errorf("expected Provider=ollama, got %s", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "all-minilm" {
		t.Errorf("expected Model=all-minilm, got %s", cfg.Embedding.Model)
	}
	if cfg.Match.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Match.TopK)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "quotematch.yaml")

	content := `
data:
  dir: /srv/quotes
embedding:
  provider: mock
match:
  top_k: 10
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Data.Dir != "/srv/quotes" {
		t.Errorf("expected Dir=/srv/quotes, got %s", cfg.Data.Dir)
	}
	if cfg.Embedding.Provider != "mock" {
		t.Errorf("expected Provider=mock, got %s", cfg.Embedding.Provider)
	}
	if cfg.Match.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Match.TopK)
	}
	// Unspecified fields keep defaults.
	if cfg.Data.VibesFile != "book_vibes.csv" {
		t.Errorf("expected default VibesFile, got %s", cfg.Data.VibesFile)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "quotematch.yaml")

	if err := os.WriteFile(configPath, []byte("match:\n  top_k: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Match.TopK != 7 {
		t.Errorf("expected TopK=7, got %d", cfg.Match.TopK)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "quotematch.yaml")

	cfg := DefaultConfig()
	cfg.Match.TopK = 12
	if err := cfg.Save(configPath); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Match.TopK != 12 {
		t.Errorf("expected TopK=12 after round trip, got %d", loaded.Match.TopK)
	}
}

func TestMatrixDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Dir = "data"
	cfg.Data.MatrixDB = "matrices.db"

	if got := cfg.MatrixDBPath(); got != filepath.Join("data", "matrices.db") {
		t.Errorf("unexpected relative path: %s", got)
	}

	cfg.Data.MatrixDB = "/var/lib/quotematch/matrices.db"
	if got := cfg.MatrixDBPath(); got != "/var/lib/quotematch/matrices.db" {
		t.Errorf("absolute path should pass through, got %s", got)
	}
}
