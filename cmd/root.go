package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"testledger-cli/logging"
)

var version = "dev"

// SetVersion sets the version reported by the version command
func SetVersion(v string) {
	version = v
}

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	logLevel string
}

// newRootCmd builds the command tree. Tests build a fresh tree per case.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "testledger",
		Short: "Aggregate test results into HTML reports",
		Long: `testledger turns JUnit-style XML result files into a grouped HTML report,
extracting parameters and expected/actual values from each case's captured output.`,
		// Errors are reported by the commands themselves
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(newAggregateCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// initLogging applies the --log-level flag when given, else the configured level
func initLogging(cmd *cobra.Command, opts *rootOptions, configured logging.LogLevel) {
	level := configured
	if opts.logLevel != "" {
		level = logging.ParseLevel(opts.logLevel)
	}
	logging.Init(level, cmd.ErrOrStderr())
}

// Execute runs the CLI and exits non-zero on command errors
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
