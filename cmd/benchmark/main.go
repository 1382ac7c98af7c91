package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"quotematch/config"
	"quotematch/internal/adapter/corpus"
	"quotematch/internal/adapter/embedding"
	"quotematch/internal/adapter/store"
	"quotematch/internal/adapter/vectorizer"
	"quotematch/internal/port"
	"quotematch/internal/usecase"
)

// Measures end-to-end match latency against a precomputed corpus. Uses the
// mock embedder by default so runs do not depend on a model server.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	query := flag.String("q", "feeling lonely in the city at night", "Query to benchmark")
	topK := flag.Int("k", 3, "Number of results")
	runs := flag.Int("n", 50, "Number of repetitions")
	live := flag.Bool("live", false, "Use the configured embedding provider instead of the mock")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		wd, _ := os.Getwd()
		cfg, err = config.LoadFromDir(wd)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if !*live {
		cfg.Embedding.Provider = "mock"
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating embedder: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.MatrixDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening matrix database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	src := corpus.NewCSVSource(cfg.Data.Dir, cfg.Data.QuoteGlob, cfg.Data.VibesFile)
	matcher, err := usecase.NewMatcher(src, st, embedder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building matcher: %v\n", err)
		os.Exit(1)
	}

	stats := matcher.Stats()
	fmt.Printf("Corpus: %d quotes, %d-dim hybrid space, model %s\n",
		stats.Quotes, stats.HybridDim, embedder.ModelName())

	var total time.Duration
	var worst time.Duration
	for i := 0; i < *runs; i++ {
		start := time.Now()
		if _, err := matcher.Match(*query, *topK); err != nil {
			fmt.Fprintf(os.Stderr, "Match failed: %v\n", err)
			os.Exit(1)
		}
		elapsed := time.Since(start)
		total += elapsed
		if elapsed > worst {
			worst = elapsed
		}
	}

	fmt.Printf("Ran %d matches for %q (top %d)\n", *runs, *query, *topK)
	fmt.Printf("avg %v, worst %v\n", total/time.Duration(*runs), worst)
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
