package report

// defaultTemplate is written to the template path on first use. Users may
// edit the file afterwards; it is never overwritten.
const defaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Test Execution Report</title>
    <link rel="stylesheet" href="report-style.css">
</head>
<body>
    <div class="container">
        <header>
            <h1>Test Execution Report</h1>
            <p class="report-date">Generated on: {{ .ReportGeneratedAt }}</p>
            {{- with .RunID }}
            <p class="report-date">Run: {{ . }}</p>
            {{- end }}
        </header>

        <section class="summary">
            <h2>Test Summary</h2>
            <div class="summary-cards">
                <div class="card total">
                    <h3>Total Tests</h3>
                    <span class="number">{{ .TotalTests }}</span>
                </div>
                <div class="card passed">
                    <h3>Passed</h3>
                    <span class="number">{{ .PassedTests }}</span>
                </div>
                <div class="card failed">
                    <h3>Failed</h3>
                    <span class="number">{{ .FailedTests }}</span>
                </div>
                <div class="card skipped">
                    <h3>Skipped</h3>
                    <span class="number">{{ .SkippedTests }}</span>
                </div>
            </div>
            <div class="summary-details">
                <p><strong>Pass Rate:</strong> {{ .FormattedPassRate }}</p>
                <p><strong>Execution Time:</strong> {{ .ExecutionTime }}</p>
            </div>
        </section>

        <section class="test-results">
            <h2>Test Results</h2>
            <table class="results-table">
                <thead>
                    <tr>
                        <th>Test Name</th>
                        <th>Class</th>
                        <th>Status</th>
                        <th>Start Time</th>
                        <th>Duration</th>
                        <th>Details</th>
                    </tr>
                </thead>
                <tbody>
                    {{- range $r := .Results }}
                    {{- $id := printf "%s-%s" $r.ClassName $r.TestName }}
                    <tr class="{{ statusClass $r.Status }}">
                        <td>{{ $r.TestName }}</td>
                        <td>{{ $r.ClassName }}</td>
                        <td><span class="status-badge {{ statusClass $r.Status }}">{{ $r.Status }}</span></td>
                        <td>{{ $r.StartTime }}</td>
                        <td>{{ $r.Duration }}</td>
                        <td>
                            <button class="details-btn" onclick="toggleDetails({{ $id }})">
                                View Details
                            </button>
                        </td>
                    </tr>
                    <tr class="details-row" id="{{ $id }}-details" style="display: none;">
                        <td colspan="6">
                            <div class="test-details">
                                {{- with trim $r.ErrorMessage }}
                                <div class="error-section">
                                    <h4>Error Message:</h4>
                                    <pre>{{ . }}</pre>
                                </div>
                                {{- end }}
                                {{- if $r.Logs }}
                                <div class="logs-section">
                                    <h4>Test Logs:</h4>
                                    <pre class="logs">{{ join "\n" $r.Logs }}</pre>
                                </div>
                                {{- end }}
                                <div class="test-data-section">
                                    <h4>Test Data:</h4>
                                    <pre class="test-data">{{ range $k := sortedKeys $r.Details }}{{ $k }}: {{ index $r.Details $k }}
{{ end }}</pre>
                                </div>
                            </div>
                        </td>
                    </tr>
                    {{- end }}
                </tbody>
            </table>
        </section>
    </div>

    <script>
        function toggleDetails(testId) {
            const detailsRow = document.getElementById(testId + '-details');
            if (detailsRow.style.display === 'none') {
                detailsRow.style.display = 'table-row';
            } else {
                detailsRow.style.display = 'none';
            }
        }
    </script>
</body>
</html>
`
