package ragnote

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwiater/ragnote/internal/display"
	"github.com/mwiater/ragnote/internal/logging"
	"github.com/mwiater/ragnote/internal/providers/inference"
	"github.com/mwiater/ragnote/internal/skill"
	"github.com/spf13/cobra"
)

// askCmd answers a question from the indexed documents.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question with retrieval-augmented generation",
	Long: `The 'ask' command searches the index for the question, then asks the chat
model to answer from the retrieved context. The request may be given as a
question or as a JSON skill input with --input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("input")
		asJSON, _ := cmd.Flags().GetBool("json")

		p, err := loadPlatform()
		if err != nil {
			return err
		}

		if raw == "" {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("a question or --input is required")
			}
			namespace, _ := cmd.Flags().GetString("namespace")
			collection, _ := cmd.Flags().GetString("collection")
			index, _ := cmd.Flags().GetString("index")
			encoded, err := json.Marshal(skill.Input{
				Question:   question,
				Namespace:  firstNonEmpty(namespace, p.Namespace),
				Collection: firstNonEmpty(collection, p.Collection),
				Index:      firstNonEmpty(index, p.Index),
			})
			if err != nil {
				return err
			}
			raw = string(encoded)
		} else if len(args) > 0 {
			return fmt.Errorf("--input cannot be combined with a question argument")
		}

		input, err := skill.DecodeInput([]byte(raw))
		if err != nil {
			return err
		}

		cfg := config()
		csi := skill.RemoteCsi{
			Index: p.indexClient(),
			LLM:   inference.New(p.BaseURL, p.Token, cfg.RequestTimeout(), cfg.Debug),
		}
		logging.LogEvent("[SKILL] ask %s/%s/%s: %s", input.Namespace, input.Collection, input.Index, input.Question)
		output, err := skill.Run(cmd.Context(), csi, input, skill.Options{
			Model:     cfg.ChatModelName(),
			MaxTokens: cfg.MaxTokenLimit(),
		})
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(output)
		}
		display.NewPrinter(cmd.OutOrStdout()).Answer(input.Question, output.Answer, output.Sources)
		return nil
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	askCmd.Flags().String("input", "", "skill input as JSON, e.g. '{\"question\":\"...\"}'")
	askCmd.Flags().Bool("json", false, "print the skill output as JSON")
	askCmd.Flags().String("namespace", "", "namespace (defaults to $PHARIA_DATA_NAMESPACE, then Studio)")
	askCmd.Flags().String("collection", "", "collection (defaults to $PHARIA_DATA_COLLECTION, then papers)")
	askCmd.Flags().String("index", "", "index (defaults to $INDEX, then asym-64)")
	rootCmd.AddCommand(askCmd)
}
