package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show corpus statistics",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	matcher, st, err := openMatcher(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	stats := matcher.Stats()

	if infoJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Quotes:          %d\n", stats.Quotes)
	fmt.Printf("Books:           %d\n", stats.Books)
	fmt.Printf("Hybrid dims:     %d\n", stats.HybridDim)
	fmt.Printf("Encoding dims:   %d\n", stats.EncodingDim)
	fmt.Printf("Topic terms:     %d\n", stats.TopicTerms)
	fmt.Printf("Purpose terms:   %d\n", stats.PurposeTerms)
	return nil
}
