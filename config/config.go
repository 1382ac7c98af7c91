package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the quote matcher.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Match     MatchConfig     `yaml:"match"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DataConfig locates the corpus tables and the precomputed matrix database.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	QuoteGlob string `yaml:"quote_glob"` // doublestar pattern relative to dir
	VibesFile string `yaml:"vibes_file"`
	MatrixDB  string `yaml:"matrix_db"`
}

// EmbeddingConfig holds sentence-embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "ollama", "openai", "mock"
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BatchSize int    `yaml:"batch_size"`
}

// MatchConfig holds query-time defaults.
type MatchConfig struct {
	TopK int `yaml:"top_k"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:       "data",
			QuoteGlob: "quotes*.csv",
			VibesFile: "book_vibes.csv",
			MatrixDB:  "matrices.db",
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "all-minilm",
			BaseURL:   "",
			APIKeyEnv: "OPENAI_API_KEY",
			BatchSize: 100,
		},
		Match: MatchConfig{
			TopK: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for quotematch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "quotematch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".quotematch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MatrixDBPath returns the path to the precomputed matrix database.
func (c *Config) MatrixDBPath() string {
	if filepath.IsAbs(c.Data.MatrixDB) {
		return c.Data.MatrixDB
	}
	return filepath.Join(c.Data.Dir, c.Data.MatrixDB)
}
