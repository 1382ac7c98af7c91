package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"quotematch/internal/adapter/store"
	"quotematch/internal/usecase"
)

var precomputeCmd = &cobra.Command{
	Use:   "precompute",
	Short: "Build the per-quote matrices from the corpus",
	Long: `Embed every quote and write the semantic encoding matrix and the
hybrid feature matrix to the matrix database. Run once after the corpus
changes; match and similar only ever read the result.`,
	RunE: runPrecompute,
}

func init() {
	rootCmd.AddCommand(precomputeCmd)
}

func runPrecompute(cmd *cobra.Command, args []string) error {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	pre := usecase.NewPrecomputer(newCorpusSource(cfg), embedder)

	total, err := pre.QuoteCount()
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	fmt.Printf("Embedding %d quotes with %s...\n", total, embedder.ModelName())

	if err := os.MkdirAll(filepath.Dir(cfg.MatrixDBPath()), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.Open(cfg.MatrixDBPath())
	if err != nil {
		return fmt.Errorf("failed to open matrix database: %w", err)
	}
	defer st.Close()

	bar := progressbar.Default(int64(total), "precomputing")
	err = pre.Run(st, cfg.Embedding.BatchSize, func(done, _ int) {
		bar.Set(done)
	})
	if err != nil {
		return fmt.Errorf("precompute failed: %w", err)
	}
	bar.Finish()

	fmt.Printf("Wrote matrices to %s\n", cfg.MatrixDBPath())
	return nil
}
