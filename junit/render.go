package junit

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

// ReportFileName is the name of the aggregated report inside the output dir
const ReportFileName = "enhanced-test-report.html"

const enhancedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Enhanced Test Report - Experience Categories Tests</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
        .container { max-width: 1200px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #333; text-align: center; margin-bottom: 30px; }
        h2 { color: #2c5282; border-bottom: 2px solid #2c5282; padding-bottom: 10px; }
        h3 { color: #4a5568; margin-top: 25px; }
        .summary { background-color: #f7fafc; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
        .summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 15px; }
        .summary-item { text-align: center; padding: 15px; background-color: white; border-radius: 6px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
        .summary-value { font-size: 24px; font-weight: bold; margin-bottom: 5px; }
        .summary-label { font-size: 14px; color: #666; }
        .passed { color: #38a169; }
        .failed { color: #e53e3e; }
        .error { color: #d69e2e; }
        .total { color: #3182ce; }
        .test-table { width: 100%; border-collapse: collapse; margin-top: 15px; }
        .test-table th { background-color: #2d3748; color: white; padding: 12px; text-align: left; }
        .test-table td { padding: 10px; border-bottom: 1px solid #e2e8f0; }
        .test-table tr:nth-child(even) { background-color: #f7fafc; }
        .status-icon { width: 20px; height: 20px; border-radius: 50%; display: inline-block; margin-right: 8px; }
        .status-pass { background-color: #38a169; }
        .status-fail { background-color: #e53e3e; }
        .status-error { background-color: #d69e2e; }
        .test-name { font-weight: 500; }
        .execution-time { color: #666; font-size: 0.9em; }
        .timestamp { text-align: right; color: #666; font-size: 0.9em; margin-bottom: 20px; }
        .expected-category { font-weight: 600; color: #2d3748; background-color: #e6fffa; padding: 5px 8px; border-radius: 4px; }
        .actual-categories { font-weight: 500; }
        .category-match { color: #38a169; background-color: #f0fff4; padding: 5px 8px; border-radius: 4px; border-left: 4px solid #38a169; }
        .category-mismatch { color: #e53e3e; background-color: #fef5e7; padding: 5px 8px; border-radius: 4px; border-left: 4px solid #e53e3e; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🚀 AI Experience Categories Test Report</h1>
        <div class="timestamp">Generated on: {{ .GeneratedAt.Format "2006-01-02 15:04:05" }}</div>
        <div class="summary">
            <h2>📊 Test Execution Summary</h2>
            <div class="summary-grid">
                <div class="summary-item">
                    <div class="summary-value total">{{ .Totals.Tests }}</div>
                    <div class="summary-label">Total Tests</div>
                </div>
                <div class="summary-item">
                    <div class="summary-value passed">{{ .Totals.Passed }}</div>
                    <div class="summary-label">Passed</div>
                </div>
                <div class="summary-item">
                    <div class="summary-value failed">{{ .Totals.Failures }}</div>
                    <div class="summary-label">Failed</div>
                </div>
                <div class="summary-item">
                    <div class="summary-value error">{{ .Totals.Errors }}</div>
                    <div class="summary-label">Errors</div>
                </div>
                <div class="summary-item">
                    <div class="summary-value">{{ printf "%.1f%%" .Totals.SuccessRate }}</div>
                    <div class="summary-label">Success Rate</div>
                </div>
                <div class="summary-item">
                    <div class="summary-value">{{ printf "%.2fs" .Totals.Time }}</div>
                    <div class="summary-label">Total Time</div>
                </div>
            </div>
        </div>
        {{- range .Groups }}
        <h2>🧪 {{ .Category }} Tests</h2>
        <table class="test-table">
            <thead>
                <tr>
                    <th>Status</th>
                    <th>Test Name</th>
                    <th>Parameter</th>
                    <th>Expected Category</th>
                    <th>Actual Categories</th>
                    <th>Experience Types</th>
                    <th>Execution Time</th>
                </tr>
            </thead>
            <tbody>
                {{- range .Cases }}
                <tr>
                    <td><span class="status-icon {{ .Status.Class }}"></span>{{ .Status }}</td>
                    <td class="test-name">{{ .DisplayName }}</td>
                    <td><strong>{{ .Parameter }}</strong></td>
                    <td class="expected-category">{{ default "N/A" .Expected }}</td>
                    <td class="actual-categories {{ .MatchClass }}">{{ default "No categories found" .ActualCategories }}</td>
                    <td class="experience-types">{{ default "None" .ExperienceTypes }}</td>
                    <td class="execution-time">{{ .Time }} seconds</td>
                </tr>
                {{- end }}
            </tbody>
        </table>
        {{- end }}
    </div>
</body>
</html>
`

var reportTemplate = template.Must(template.New("enhanced").Funcs(sprig.HtmlFuncMap()).Parse(enhancedTemplate))

// RenderHTML renders the aggregated report
func RenderHTML(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to render enhanced report: %w", err)
	}
	return buf.Bytes(), nil
}
