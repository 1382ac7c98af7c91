package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	similarIndex int
	similarTopK  int
	similarJSON  bool
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find quotes similar to an existing quote",
	Long: `Rank the corpus against the stored semantic encoding of a chosen
quote. The quote itself never appears in the results.

Examples:
  quotematch similar -i 42
  quotematch similar -i 42 --top-k 10 --json`,
	RunE: runSimilar,
}

func init() {
	rootCmd.AddCommand(similarCmd)
	similarCmd.Flags().IntVarP(&similarIndex, "index", "i", -1, "quote index (required)")
	similarCmd.Flags().IntVarP(&similarTopK, "top-k", "k", 0, "number of results (default from config)")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output as JSON")
	similarCmd.MarkFlagRequired("index")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	matcher, st, err := openMatcher(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	topK := cfg.Match.TopK
	if similarTopK > 0 {
		topK = similarTopK
	}

	matches, err := matcher.MatchSimilarTo(similarIndex, topK)
	if err != nil {
		return fmt.Errorf("similar search failed: %w", err)
	}

	seed, err := matcher.Quote(similarIndex)
	if err != nil {
		return err
	}

	return printMatches(matches, similarJSON, fmt.Sprintf("similar to #%d (%s)", seed.Index, seed.Book))
}
