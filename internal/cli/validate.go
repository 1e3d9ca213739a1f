// internal/cli/validate.go
package ragnote

import (
	"errors"

	"github.com/mwiater/ragnote/internal/envcheck"
	"github.com/spf13/cobra"
)

// errValidationFailed makes the process exit non-zero after the report has
// already been printed.
var errValidationFailed = errors.New("environment validation failed")

// connectionFactory builds the client used by the connectivity check.
var connectionFactory = func() envcheck.ClientFactory {
	return envcheck.DocIndexFactory(config().RequestTimeout(), config().Debug)
}

// validateCmd implements 'validate', which checks the notebook environment.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the environment variables and API access",
	Long: `The 'validate' command loads the dotenv file, checks that every required
variable is set and personalized, validates the API URL and probes the
document index with the configured token.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, _ := cmd.Flags().GetString("sample")
		noLoad, _ := cmd.Flags().GetBool("no-load")
		noOverride, _ := cmd.Flags().GetBool("no-override")

		validator := envcheck.NewValidator(envcheck.Options{
			EnvPath:      envFile,
			SamplePath:   sample,
			SkipLoad:     noLoad,
			KeepExisting: noOverride,
			Factory:      connectionFactory(),
			Out:          cmd.OutOrStdout(),
		})
		if !validator.Run(cmd.Context()) {
			return errValidationFailed
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("sample", envcheck.DefaultSampleFile, "sample dotenv file with the placeholder values")
	validateCmd.Flags().Bool("no-load", false, "do not load the dotenv file")
	validateCmd.Flags().Bool("no-override", false, "keep variables that are already set")
	rootCmd.AddCommand(validateCmd)
}
