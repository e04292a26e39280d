package junit

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"testledger-cli/filesystem"
	"testledger-cli/logging"
	"testledger-cli/metrics"
)

const (
	DefaultFilePrefix  = "TEST-"
	DefaultFileSuffix  = ".xml"
	DefaultSuiteFilter = "ExperienceCategoriesTests"
)

// Config controls which files and suites are aggregated and how cases are
// classified
type Config struct {
	FilePrefix  string
	FileSuffix  string
	SuiteFilter string
	Rules       Rules
	// Concurrency bounds parallel file parsing; zero means GOMAXPROCS
	Concurrency int
}

// DefaultConfig returns the configuration for surefire style reports
func DefaultConfig() Config {
	return Config{
		FilePrefix:  DefaultFilePrefix,
		FileSuffix:  DefaultFileSuffix,
		SuiteFilter: DefaultSuiteFilter,
		Rules:       DefaultRules(),
	}
}

// Aggregator turns a directory of result files into an HTML report
type Aggregator struct {
	cfg      Config
	rules    *compiledRules
	parser   *Parser
	fs       *filesystem.Manager
	now      func() time.Time
	recorder *metrics.Recorder
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithClock overrides the time stamped on reports
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithRecorder publishes report totals to r after each run
func WithRecorder(r *metrics.Recorder) Option {
	return func(a *Aggregator) {
		a.recorder = r
	}
}

// NewAggregator validates cfg and compiles its extraction rules
func NewAggregator(cfg Config, opts ...Option) (*Aggregator, error) {
	if cfg.FilePrefix == "" && cfg.FileSuffix == "" {
		return nil, fmt.Errorf("file prefix and suffix must not both be empty")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}

	rules, err := compileRules(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile extraction rules: %w", err)
	}

	a := &Aggregator{
		cfg:    cfg,
		rules:  rules,
		parser: NewParser(),
		fs:     filesystem.NewManager(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Matches reports whether a file name is picked up as a result file
func (a *Aggregator) Matches(name string) bool {
	return strings.HasPrefix(name, a.cfg.FilePrefix) && strings.HasSuffix(name, a.cfg.FileSuffix)
}

// Aggregate parses every result file in src and writes the report to out.
// When src is missing or holds no result files it returns nil, nil and
// writes nothing. Any unreadable or malformed file fails the whole run.
func (a *Aggregator) Aggregate(ctx context.Context, src, out string) (*Report, error) {
	files, err := a.fs.ListFiles(src, a.Matches)
	if err != nil {
		return nil, fmt.Errorf("failed to list result files: %w", err)
	}
	if len(files) == 0 {
		logging.Debug("Aggregator", "No result files in %s", src)
		return nil, nil
	}

	parsed, err := a.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Files:       files,
		GeneratedAt: a.now(),
		Path:        filepath.Join(out, ReportFileName),
	}

	var cases []CaseDetail
	for _, suites := range parsed {
		for _, suite := range suites {
			if !strings.Contains(suite.Name, a.cfg.SuiteFilter) {
				continue
			}
			seconds, err := suite.Seconds()
			if err != nil {
				return nil, err
			}

			report.Suites = append(report.Suites, suite.Name)
			report.Totals.Tests += suite.Tests
			report.Totals.Failures += suite.Failures
			report.Totals.Errors += suite.Errors
			report.Totals.Time += seconds

			for _, tc := range suite.TestCases {
				cases = append(cases, a.rules.extract(tc, tc.Output()))
			}
		}
	}
	report.Totals.Passed = report.Totals.Tests - report.Totals.Failures - report.Totals.Errors
	report.Groups = groupCases(cases)

	html, err := RenderHTML(report)
	if err != nil {
		return nil, err
	}
	if err := a.fs.WriteFile(report.Path, html); err != nil {
		return nil, fmt.Errorf("failed to write enhanced report: %w", err)
	}

	if a.recorder != nil {
		t := report.Totals
		a.recorder.RecordAggregate(t.Tests, t.Passed, t.Failures, t.Errors, t.Time)
	}

	logging.Debug("Aggregator", "Enhanced HTML test report generated: %s", report.Path)
	return report, nil
}

// parseAll parses files concurrently and returns their suites in file order
func (a *Aggregator) parseAll(ctx context.Context, files []string) ([][]XMLTestSuite, error) {
	parsed := make([][]XMLTestSuite, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			suites, err := a.parser.ParseFile(file)
			if err != nil {
				return err
			}
			parsed[i] = suites
			logging.Debug("Aggregator", "Parsed %s (%d suites)", file, len(suites))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to parse result files: %w", err)
	}
	return parsed, nil
}
