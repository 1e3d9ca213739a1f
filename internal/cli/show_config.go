// internal/cli/show_config.go
package ragnote

import (
	"github.com/mwiater/ragnote/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd prints the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			appconfig.DumpConfig(cmd.OutOrStdout(), GetConfig())
			return
		}
		cfg := GetConfig()
		file := ""
		if cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, cfg)
	},
}

func init() {
	showConfigCmd.Flags().Bool("dump", false, "pretty-print the configuration struct")
	showCmd.AddCommand(showConfigCmd)
}
