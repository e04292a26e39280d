// Package report renders a summary into the HTML execution report and its
// stylesheet.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"testledger-cli/filesystem"
	"testledger-cli/logging"
	"testledger-cli/summary"
)

const (
	// DefaultTemplatePath is where the report template is looked up, relative to the base dir
	DefaultTemplatePath = "resources/config/templates/test-report.html.tmpl"
	// DefaultOutputDir is where the report and stylesheet are written, relative to the base dir
	DefaultOutputDir = "target/html-reports"

	ReportFileName = "test-report.html"
	StyleFileName  = "report-style.css"
)

// Renderer writes the HTML report for a summary
type Renderer struct {
	fs           *filesystem.Manager
	baseDir      string
	templatePath string
	outputDir    string
}

// Option configures a Renderer
type Option func(*Renderer)

// WithBaseDir resolves relative template and output paths against dir
func WithBaseDir(dir string) Option {
	return func(r *Renderer) {
		r.baseDir = dir
	}
}

// WithTemplatePath overrides the template location
func WithTemplatePath(path string) Option {
	return func(r *Renderer) {
		r.templatePath = path
	}
}

// WithOutputDir overrides the directory the report is written to
func WithOutputDir(dir string) Option {
	return func(r *Renderer) {
		r.outputDir = dir
	}
}

// NewRenderer creates a renderer using the fixed default locations unless
// overridden by options
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		fs:           filesystem.NewManager(),
		templatePath: DefaultTemplatePath,
		outputDir:    DefaultOutputDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TemplatePath returns the resolved template path
func (r *Renderer) TemplatePath() string {
	return r.resolve(r.templatePath)
}

// ReportPath returns the resolved path of the generated HTML report
func (r *Renderer) ReportPath() string {
	return filepath.Join(r.resolve(r.outputDir), ReportFileName)
}

// StylePath returns the resolved path of the generated stylesheet
func (r *Renderer) StylePath() string {
	return filepath.Join(r.resolve(r.outputDir), StyleFileName)
}

// Render writes the report and stylesheet for s. The template is created
// from the built-in default when missing; an existing template is used as is.
func (r *Renderer) Render(s summary.Summary) error {
	outputDir := r.resolve(r.outputDir)
	if err := r.fs.CreateDirectory(outputDir); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	templatePath := r.TemplatePath()
	created, err := r.fs.WriteFileIfMissing(templatePath, []byte(defaultTemplate))
	if err != nil {
		return fmt.Errorf("failed to create report template: %w", err)
	}
	if created {
		logging.Debug("Report", "Created default template at %s", templatePath)
	}

	tmpl, err := template.New(filepath.Base(templatePath)).Funcs(templateFuncs()).ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return fmt.Errorf("failed to execute report template: %w", err)
	}

	if err := r.fs.WriteFile(r.ReportPath(), buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := r.fs.WriteFile(r.StylePath(), []byte(stylesheet)); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}

	logging.Info("Report", "HTML Report generated at: %s", r.ReportPath())
	return nil
}

func (r *Renderer) resolve(path string) string {
	if r.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.baseDir, path)
}
