package ragnote

import (
	"github.com/mwiater/ragnote/internal/display"
	"github.com/mwiater/ragnote/internal/docindex"
	"github.com/spf13/cobra"
)

// documentsCmd lists the documents in the configured collection.
var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List the documents in the data collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPlatform()
		if err != nil {
			return err
		}
		if err := p.requireLocation(); err != nil {
			return err
		}

		docs, err := p.indexClient().ListDocuments(cmd.Context(), p.Namespace, p.Collection)
		if err != nil {
			return err
		}
		display.NewPrinter(cmd.OutOrStdout()).Documents(docindex.DisplayDocuments(docs), p.Collection)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(documentsCmd)
}
