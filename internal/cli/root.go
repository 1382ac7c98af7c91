package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"quotematch/config"
	"quotematch/internal/adapter/corpus"
	"quotematch/internal/adapter/embedding"
	"quotematch/internal/adapter/store"
	"quotematch/internal/adapter/vectorizer"
	"quotematch/internal/port"
	"quotematch/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "quotematch",
	Short: "Mood-to-quote matcher over a fixed literary corpus",
	Long: `quotematch finds the literary quotes whose semantic embedding sits
closest to a free-text mood description, ranked by cosine similarity.

Example usage:
  quotematch precompute              # Build the per-quote matrices once
  quotematch match -q "lonely night" # Find quotes for a mood
  quotematch similar -i 42           # More quotes like quote #42`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./quotematch.yaml)")
}

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model)
	case "mock":
		return embedding.NewMockEmbedder(vectorizer.SemanticDims), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

func newCorpusSource(cfg *config.Config) *corpus.CSVSource {
	return corpus.NewCSVSource(cfg.Data.Dir, cfg.Data.QuoteGlob, cfg.Data.VibesFile)
}

// openMatcher builds a fully-wired matcher from the configured data
// directory. The returned store must be closed by the caller.
func openMatcher(cfg *config.Config) (*usecase.Matcher, *store.BoltMatrixStore, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(cfg.MatrixDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open matrix database (run 'quotematch precompute' first): %w", err)
	}

	matcher, err := usecase.NewMatcher(newCorpusSource(cfg), st, embedder)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	return matcher, st, nil
}
