package ragnote

import (
	"fmt"
	"time"

	"github.com/mwiater/ragnote/internal/display"
	"github.com/spf13/cobra"
)

// timeagoCmd formats a timestamp as a relative age.
var timeagoCmd = &cobra.Command{
	Use:   "timeago <timestamp> [reference]",
	Short: "Format a timestamp as a relative age",
	Long: `The 'timeago' command prints how long ago a timestamp was, measured against
the reference timestamp or the current time. Timestamps without a zone are
read as UTC.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := display.ParseTimestamp(args[0])
		if err != nil {
			return err
		}
		reference := time.Now().UTC()
		if len(args) == 2 {
			if reference, err = display.ParseTimestamp(args[1]); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), display.FormatTimeAgo(created, reference))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timeagoCmd)
}
