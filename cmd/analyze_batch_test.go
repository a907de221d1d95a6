package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBatchWritesReportsWithoutCollisions(t *testing.T) {
	home := t.TempDir()
	writeFile(t, home, filepath.Join("d1", "metrics.csv"), financeCSV)
	writeFile(t, home, filepath.Join("d2", "metrics.csv"), financeCSV)
	outDir := filepath.Join(home, "reports")

	stdout := runCmd(t, "--config", filepath.Join(home, "config.yaml"),
		"analyze-batch", filepath.Join(home, "d*", "metrics.csv"), "-O", outDir, "-f", "markdown", "-j", "2")

	assert.Contains(t, stdout, "Processing metrics.csv...")
	assert.Contains(t, stdout, "[2/2]")
	for _, name := range []string{"metrics.report.md", "metrics__2.report.md"} {
		b, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(b), "# Analysis Report: metrics.csv")
	}
	assert.Contains(t, stdout, "✓")
}

func TestAnalyzeBatchStdoutCarriesOnlyReports(t *testing.T) {
	home := t.TempDir()
	a := writeFile(t, home, "a.csv", financeCSV)
	b := writeFile(t, home, "b.csv", financeCSV)

	stdout, stderr, err := executeStreams(t, nil, "--config", filepath.Join(home, "config.yaml"),
		"analyze-batch", a, b, "-f", "json")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(stdout))
	var names []string
	for {
		var doc struct {
			Metadata struct {
				FileName string `json:"fileName"`
			} `json:"metadata"`
		}
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		names = append(names, doc.Metadata.FileName)
	}
	assert.Equal(t, []string{"a.csv", "b.csv"}, names)
	assert.Contains(t, stderr, "[1/2] Processing")
	assert.Contains(t, strings.ToUpper(stderr), "ELAPSED")
}

func TestAnalyzeBatchKeepGoing(t *testing.T) {
	home := t.TempDir()
	a := writeFile(t, home, "a.csv", financeCSV)
	bad := writeFile(t, home, "b.csv", "x\n")
	c := writeFile(t, home, "c.csv", financeCSV)
	outDir := filepath.Join(home, "out")

	_, err := execute(t, nil, "--config", filepath.Join(home, "config.yaml"),
		"analyze-batch", a, bad, c, "--keep-going", "--quiet", "-O", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 files failed")
	assert.FileExists(t, filepath.Join(outDir, "a.report.json"))
	assert.FileExists(t, filepath.Join(outDir, "c.report.json"))
	assert.NoFileExists(t, filepath.Join(outDir, "b.report.json"))

	_, err = execute(t, nil, "--config", filepath.Join(home, "config.yaml"),
		"analyze-batch", a, bad, "--quiet", "-O", outDir)
	assert.Error(t, err, "without --keep-going the first failure aborts")
}

func TestAnalyzeBatchNoMatches(t *testing.T) {
	home := t.TempDir()
	_, err := execute(t, nil, "--config", filepath.Join(home, "config.yaml"),
		"analyze-batch", filepath.Join(home, "*.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input files matched")
}

func TestExpandInputsDedupesAndSorts(t *testing.T) {
	home := t.TempDir()
	b := writeFile(t, home, "b.csv", financeCSV)
	a := writeFile(t, home, "a.csv", financeCSV)
	got := expandInputs([]string{b, filepath.Join(home, "*.csv"), a, filepath.Join(home, "nope.csv")})
	assert.Equal(t, []string{a, b}, got)
}
