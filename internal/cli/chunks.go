package ragnote

import (
	"github.com/mwiater/ragnote/internal/display"
	"github.com/mwiater/ragnote/internal/docindex"
	"github.com/spf13/cobra"
)

// chunksCmd lists the indexed chunks of one document.
var chunksCmd = &cobra.Command{
	Use:   "chunks <document>",
	Short: "List the chunks of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxLength, _ := cmd.Flags().GetInt("max-length")

		p, err := loadPlatform()
		if err != nil {
			return err
		}
		if err := p.requireLocation(); err != nil {
			return err
		}

		chunks, err := p.indexClient().ListChunks(cmd.Context(), p.Namespace, p.Collection, args[0])
		if err != nil {
			return err
		}
		display.NewPrinter(cmd.OutOrStdout()).Chunks(docindex.DisplayChunks(chunks), args[0], maxLength)
		return nil
	},
}

func init() {
	chunksCmd.Flags().Int("max-length", display.DefaultChunkTextLength, "maximum excerpt length in characters")
	rootCmd.AddCommand(chunksCmd)
}
