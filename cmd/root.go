package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/sarif2md/cmd/action"
	"github.com/scan-io-git/sarif2md/cmd/report"
	"github.com/scan-io-git/sarif2md/cmd/version"
	"github.com/scan-io-git/sarif2md/pkg/shared/config"
	"github.com/scan-io-git/sarif2md/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "sarif2md [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "sarif2md renders SARIF reports as Markdown.",
		Long: `sarif2md converts SARIF 2.1.0 static analysis reports into a Markdown summary
with per-severity counts and collapsible per-category issue tables. The report can be
printed, written to a file or S3, appended to the GitHub job summary or posted to a
pull/merge request.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults to $SARIF2MD_CONFIG)")
	rootCmd.AddCommand(report.ReportCmd)
	rootCmd.AddCommand(action.ActionCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return exitCode(rootCmd.Execute())
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
	var cmdErr *errors.CommandError
	if stderrors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return errors.ExitUsage
}

func initConfig(_ *cobra.Command, _ []string) error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return errors.NewCommandError(nil, fmt.Errorf("initializing config file function is crashed: %w", err), errors.ExitUsage)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return errors.NewCommandError(nil, err, errors.ExitUsage)
	}

	report.Init(AppConfig)
	action.Init(AppConfig)
	return nil
}
