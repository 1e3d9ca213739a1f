package ragnote

import (
	"fmt"
	"strings"

	"github.com/mwiater/ragnote/internal/display"
	"github.com/mwiater/ragnote/internal/docindex"
	"github.com/mwiater/ragnote/internal/envcheck"
	"github.com/spf13/cobra"
)

// searchCmd runs a text query against an index.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search an index of the data collection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("query is required")
		}

		p, err := loadPlatform()
		if err != nil {
			return err
		}
		if err := p.requireLocation(); err != nil {
			return err
		}

		index, _ := cmd.Flags().GetString("index")
		if index == "" {
			index = p.Index
		}
		if index == "" {
			return fmt.Errorf("%s must be set or --index given", envcheck.VarIndex)
		}

		maxResults, minScore := config().SearchLimits()
		if cmd.Flags().Changed("max-results") {
			maxResults, _ = cmd.Flags().GetInt("max-results")
		}
		if cmd.Flags().Changed("min-score") {
			minScore, _ = cmd.Flags().GetFloat64("min-score")
		}
		maxLength, _ := cmd.Flags().GetInt("max-length")

		results, err := p.indexClient().Search(cmd.Context(), p.Namespace, p.Collection, index, docindex.TextQuery(query, maxResults, minScore))
		if err != nil {
			return err
		}
		display.NewPrinter(cmd.OutOrStdout()).SearchResults(docindex.DisplayHits(results), query, maxLength)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("index", "", "index to search (defaults to $INDEX)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (defaults to searchMaxResults)")
	searchCmd.Flags().Float64("min-score", 0, "minimum score (defaults to searchMinScore)")
	searchCmd.Flags().Int("max-length", display.DefaultSearchTextLength, "maximum excerpt length in characters")
	rootCmd.AddCommand(searchCmd)
}
