package report

// stylesheet is rewritten next to the report on every render
const stylesheet = `/* Test Report Styles */
* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background-color: #f5f5f5;
    color: #333;
    line-height: 1.6;
}

.container {
    max-width: 1200px;
    margin: 0 auto;
    padding: 20px;
}

header {
    text-align: center;
    margin-bottom: 30px;
}

header h1 {
    color: #2c3e50;
    font-size: 2.5em;
    margin-bottom: 10px;
}

.report-date {
    color: #666;
    font-size: 1.1em;
}

.summary {
    background: white;
    border-radius: 8px;
    padding: 25px;
    margin-bottom: 30px;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1);
}

.summary h2 {
    color: #2c3e50;
    margin-bottom: 20px;
    font-size: 1.8em;
}

.summary-cards {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 20px;
    margin-bottom: 20px;
}

.card {
    background: #f8f9fa;
    border-radius: 6px;
    padding: 20px;
    text-align: center;
    border-left: 4px solid #ddd;
}

.card.total { border-left-color: #3498db; }
.card.passed { border-left-color: #27ae60; }
.card.failed { border-left-color: #e74c3c; }
.card.skipped { border-left-color: #f39c12; }

.card h3 {
    font-size: 0.9em;
    color: #666;
    margin-bottom: 10px;
    text-transform: uppercase;
    letter-spacing: 1px;
}

.card .number {
    font-size: 2.5em;
    font-weight: bold;
    color: #2c3e50;
}

.summary-details {
    background: #ecf0f1;
    border-radius: 6px;
    padding: 15px;
}

.summary-details p {
    margin-bottom: 5px;
    font-size: 1.1em;
}

.test-results {
    background: white;
    border-radius: 8px;
    padding: 25px;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1);
}

.test-results h2 {
    color: #2c3e50;
    margin-bottom: 20px;
    font-size: 1.8em;
}

.results-table {
    width: 100%;
    border-collapse: collapse;
    margin-top: 20px;
}

.results-table th {
    background: #34495e;
    color: white;
    padding: 12px;
    text-align: left;
    font-weight: 600;
}

.results-table td {
    padding: 12px;
    border-bottom: 1px solid #ecf0f1;
}

.results-table tr:hover {
    background: #f8f9fa;
}

.status-badge {
    padding: 4px 12px;
    border-radius: 4px;
    font-size: 0.85em;
    font-weight: bold;
    text-transform: uppercase;
}

.status-badge.PASSED {
    background: #27ae60;
    color: white;
}

.status-badge.FAILED {
    background: #e74c3c;
    color: white;
}

.status-badge.SKIPPED {
    background: #f39c12;
    color: white;
}

.details-btn {
    background: #3498db;
    color: white;
    border: none;
    padding: 6px 12px;
    border-radius: 4px;
    cursor: pointer;
    font-size: 0.9em;
}

.details-btn:hover {
    background: #2980b9;
}

.details-row {
    background: #f8f9fa;
}

.test-details {
    padding: 20px;
    background: white;
    border-radius: 6px;
    margin: 10px;
}

.test-details h4 {
    color: #2c3e50;
    margin-bottom: 10px;
    font-size: 1.1em;
}

.test-details pre {
    background: #f4f4f4;
    padding: 15px;
    border-radius: 4px;
    overflow-x: auto;
    font-family: 'Courier New', monospace;
    font-size: 0.9em;
    line-height: 1.4;
}

.error-section pre {
    background: #ffebee;
    border-left: 4px solid #e74c3c;
}

.logs {
    max-height: 300px;
    overflow-y: auto;
}

@media (max-width: 768px) {
    .container {
        padding: 10px;
    }

    .summary-cards {
        grid-template-columns: 1fr 1fr;
    }

    .results-table {
        font-size: 0.9em;
    }

    .results-table th,
    .results-table td {
        padding: 8px;
    }
}
`
