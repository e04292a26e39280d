package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"testledger-cli/config"
	"testledger-cli/filesystem"
	"testledger-cli/junit"
	"testledger-cli/logging"
	"testledger-cli/metrics"
	"testledger-cli/tui/viewer"
)

type aggregateOptions struct {
	configPath  string
	filter      string
	watch       bool
	interactive bool
	open        bool
}

func newAggregateCmd(root *rootOptions) *cobra.Command {
	opts := &aggregateOptions{}

	cmd := &cobra.Command{
		Use:   "aggregate [sourceDir] [outputDir]",
		Short: "Build the enhanced HTML report from JUnit XML result files",
		Long: `Parses every TEST-*.xml file in sourceDir, keeps the suites matching the
suite filter and writes enhanced-test-report.html to outputDir.

Directories default to the config file values (target/surefire-reports and
target/enhanced-reports).`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd, args, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.DefaultConfigFile+" when present)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "only aggregate suites whose name contains this text")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate the report whenever result files change")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the results in the terminal after aggregating")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the generated report")
	cmd.MarkFlagsMutuallyExclusive("watch", "interactive")
	cmd.MarkFlagsMutuallyExclusive("watch", "open")

	return cmd
}

func runAggregate(cmd *cobra.Command, args []string, root *rootOptions, opts *aggregateOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	initLogging(cmd, root, cfg.Level())

	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if len(args) > 1 {
		cfg.OutputDir = args[1]
	}
	if opts.filter != "" {
		cfg.SuiteFilter = opts.filter
	}

	var aggOpts []junit.Option
	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		aggOpts = append(aggOpts, junit.WithRecorder(recorder))
	}
	agg, err := junit.NewAggregator(cfg.Aggregator(), aggOpts...)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	handle := func(report *junit.Report, err error) {
		if err != nil {
			err = errors.WithStack(err)
			fmt.Fprintf(stderr, "Error generating enhanced report: %s\n%+v\n", err, err)
			return
		}
		if report == nil {
			fmt.Fprintf(stdout, "No test report XML files found in: %s\n", cfg.SourceDir)
			return
		}
		fmt.Fprintf(stdout, "Enhanced HTML test report generated: %s\n", report.Path)
		printGroups(stdout, report)
		if recorder != nil {
			if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
				logging.Error("Aggregate", err, "Failed to write metrics to %s", cfg.MetricsFile)
			}
		}
	}

	if opts.watch {
		return agg.Watch(cmd.Context(), cfg.SourceDir, cfg.OutputDir, junit.DefaultDebounce, handle)
	}

	report, err := agg.Aggregate(cmd.Context(), cfg.SourceDir, cfg.OutputDir)
	handle(report, err)
	// Aggregation failures are reported, not propagated as exit codes
	if err != nil || report == nil {
		return nil
	}

	if opts.open {
		if err := filesystem.NewManager().Open(report.Path); err != nil {
			logging.Warn("Aggregate", "Could not open %s: %v", report.Path, err)
		}
	}
	if opts.interactive {
		return viewer.Run(report)
	}
	return nil
}

// printGroups writes the per-category summary table
func printGroups(w io.Writer, report *junit.Report) {
	if len(report.Groups) == 0 {
		fmt.Fprintln(w, "No matching test suites")
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("Category", "Cases", "Passed", "Failed", "Errors")
	for _, g := range report.Groups {
		var passed, failed, errored int
		for _, c := range g.Cases {
			switch c.Status {
			case junit.StatusFail:
				failed++
			case junit.StatusError:
				errored++
			default:
				passed++
			}
		}
		row := []string{g.Category, strconv.Itoa(len(g.Cases)), strconv.Itoa(passed), strconv.Itoa(failed), strconv.Itoa(errored)}
		if err := table.Append(row); err != nil {
			logging.Error("Aggregate", err, "Error building summary table")
			return
		}
	}
	if err := table.Render(); err != nil {
		logging.Error("Aggregate", err, "Error printing summary table")
	}
}
