package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/sma-crossover/pkg/indicator"
)

const vShapeCSV = `Date,Open,High,Low,Close,Volume
2024-01-01,0,0,0,10,0
2024-01-02,0,0,0,10,0
2024-01-03,0,0,0,10,0
2024-01-04,0,0,0,10,0
2024-01-05,0,0,0,9,0
2024-01-06,0,0,0,8,0
2024-01-07,0,0,0,7,0
2024-01-08,0,0,0,6,0
2024-01-09,0,0,0,7,0
2024-01-10,0,0,0,8,0
2024-01-11,0,0,0,9,0
2024-01-12,0,0,0,10,0
`

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(vShapeCSV), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_TextOutput(t *testing.T) {
	path := setup(t)

	out, err := execute(t, "--short", "2", "--long", "3", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Buy Signals:\nBuy at index 9, Price: 8.00 (2024-01-10)\n\nSell Signals:\nSell at index 4, Price: 9.00 (2024-01-05)\n"), out)
	assert.Contains(t, out, "Execution time: ")
}

func TestRootCmd_EnvWindowsAndJSON(t *testing.T) {
	path := setup(t)
	t.Setenv("SHORT_WINDOW", "2")
	t.Setenv("LONG_WINDOW", "3")
	t.Setenv("INPUT_PATH", path)

	out, err := execute(t, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"short_window": 2`)
	assert.Contains(t, out, `"kind": "sell"`)
}

func TestRootCmd_InvalidWindow(t *testing.T) {
	path := setup(t)

	_, err := execute(t, "--short", "0", path)
	assert.ErrorIs(t, err, indicator.ErrInvalidWindow)
}

func TestRootCmd_MissingInput(t *testing.T) {
	setup(t)

	_, err := execute(t, "--input", "does-not-exist.csv")
	assert.Error(t, err)
}

func TestRootCmd_BadFormat(t *testing.T) {
	path := setup(t)

	_, err := execute(t, "--format", "xml", path)
	assert.Error(t, err)
}

func TestRootCmd_MetricsTextfile(t *testing.T) {
	path := setup(t)
	metrics := filepath.Join(filepath.Dir(path), "crossover.prom")

	_, err := execute(t, "--short", "2", "--long", "3", "--check-drift", "--metrics-textfile", metrics, path)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "crossover_signals_total")
	assert.Contains(t, string(data), "crossover_sma_max_drift")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "crossover version 0.1.0\n", out)
}
