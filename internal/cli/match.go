package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"quotematch/internal/domain"
)

var (
	matchText string
	matchTopK int
	matchJSON bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find quotes matching a mood description",
	Long: `Vectorize a free-text mood description and return the closest quotes
from the hybrid feature space, ranked by compatibility.

Examples:
  quotematch match -q "feeling lonely in the city at night"
  quotematch match -q "surreal dream state" --top-k 10 --json`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVarP(&matchText, "query", "q", "", "mood description (required)")
	matchCmd.Flags().IntVarP(&matchTopK, "top-k", "k", 0, "number of results (default from config)")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output as JSON")
	matchCmd.MarkFlagRequired("query")
}

func runMatch(cmd *cobra.Command, args []string) error {
	matcher, st, err := openMatcher(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	topK := cfg.Match.TopK
	if matchTopK > 0 {
		topK = matchTopK
	}

	matches, err := matcher.Match(matchText, topK)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	return printMatches(matches, matchJSON, matchText)
}

func printMatches(matches []domain.Match, asJSON bool, query string) error {
	if asJSON {
		output, _ := json.MarshalIndent(matches, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	fmt.Printf("Found %d quotes for: %s\n\n", len(matches), query)
	for i, m := range matches {
		fmt.Printf("--- [%d] #%d %s (%.1f%% match, similarity %.3f) ---\n",
			i+1, m.Index, m.Book, m.Compatibility, m.Similarity)
		fmt.Printf("%q\n", m.Quote)
		if m.Topic != "" {
			fmt.Printf("topics: %s\n", m.Topic)
		}
		if m.Purpose != "" {
			fmt.Printf("purpose: %s\n", m.Purpose)
		}
		fmt.Println()
	}

	return nil
}
