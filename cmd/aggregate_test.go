package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testledger-cli/junit"
)

const resultFile = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="com.example.ExperienceCategoriesTests" tests="2" failures="1" errors="0" time="3.0">
  <testcase name="testGenerateExperienceCategories(String)[1]" time="1.5">
    <system-out>Starting Experience Categories Generation Test for: category_Food
{"experienceCategory":["Food"]}</system-out>
  </testcase>
  <testcase name="testGenerateExperienceCategories(String)[2]" time="1.5">
    <failure message="boom"/>
  </testcase>
</testsuite>`

// execute runs a fresh command tree and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// emptyConfig writes a config file so the working directory's config is ignored
func emptyConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testledger.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAggregateCmd_GeneratesReport(t *testing.T) {
	// Arrange
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "enhanced")
	require.NoError(t, os.WriteFile(filepath.Join(src, "TEST-example.xml"), []byte(resultFile), 0644))
	metricsFile := filepath.Join(t.TempDir(), "metrics", "testledger.prom")
	cfg := emptyConfig(t, "metrics_file: "+metricsFile+"\n")

	// Act
	stdout, stderr, err := execute(t, "aggregate", src, out, "--config", cfg)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Enhanced HTML test report generated: "+filepath.Join(out, junit.ReportFileName))
	assert.Contains(t, stdout, "Category Generation")
	assert.FileExists(t, filepath.Join(out, junit.ReportFileName))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `testledger_aggregate_tests{result="failed"} 1`)
}

func TestAggregateCmd_EmptySource(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "enhanced")

	stdout, _, err := execute(t, "aggregate", src, out, "--config", emptyConfig(t, ""))

	require.NoError(t, err)
	assert.Equal(t, "No test report XML files found in: "+src+"\n", stdout)
	assert.NoDirExists(t, out)
}

func TestAggregateCmd_MalformedFileReportsError(t *testing.T) {
	// Arrange
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "TEST-bad.xml"), []byte("<testsuite"), 0644))

	// Act
	stdout, stderr, err := execute(t, "aggregate", src, t.TempDir(), "--config", emptyConfig(t, ""))

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error generating enhanced report: ")
	assert.Contains(t, stderr, "TEST-bad.xml")
}

func TestAggregateCmd_FilterFlag(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "TEST-example.xml"), []byte(resultFile), 0644))

	stdout, _, err := execute(t, "aggregate", src, t.TempDir(), "--config", emptyConfig(t, ""), "--filter", "FlightTests")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No matching test suites")
}

func TestAggregateCmd_InvalidConfig(t *testing.T) {
	_, _, err := execute(t, "aggregate", "--config", filepath.Join(t.TempDir(), "missing.yml"))

	assert.Error(t, err)
}

func TestAggregateCmd_TooManyArgs(t *testing.T) {
	_, _, err := execute(t, "aggregate", "a", "b", "c")

	assert.Error(t, err)
}

func TestAggregateCmd_WatchExcludesInteractive(t *testing.T) {
	_, _, err := execute(t, "aggregate", "--watch", "--interactive")

	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	stdout, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "testledger version 1.2.3\n", stdout)
}
