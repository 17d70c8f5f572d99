package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshots(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "results_*"))
	require.NoError(t, err)
	return matches
}

func TestRunCommand_EndToEnd(t *testing.T) {
	dir := isolate(t)
	script := writeScript(t, `echo 100`)
	outDir := filepath.Join(dir, "out")
	dbPath := filepath.Join(dir, "history.db")
	promPath := filepath.Join(dir, "bench.prom")

	output, err := executeCommand(rootCmd, "run",
		"-e", script, "-p", "1-3", "-w", "1", "-s", "3",
		"-o", outDir, "--no-color",
		"--history-db", dbPath, "--metrics-file", promPath)
	require.NoError(t, err, output)

	assert.Contains(t, output, "Warmup: n=1 100 µs")
	assert.Contains(t, output, "| n | Mean | Min | Max |")
	for _, n := range []string{"1", "2", "3"} {
		assert.Contains(t, output, "| "+n+" | 100 µs ± 0 µs | 100 µs | 100 µs |")
	}

	files := snapshots(t, outDir)
	require.Len(t, files, 1)
	assert.Contains(t, output, "Results saved to "+files[0])

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var decoded map[string][]float64
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string][]float64{
		"1": {100, 100, 100},
		"2": {100, 100, 100},
		"3": {100, 100, 100},
	}, decoded)

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `benchsweep_invocations_total{phase="measure"} 9`)
	assert.Contains(t, string(prom), `benchsweep_mean_microseconds{n="2"} 100`)

	output, err = executeCommand(rootCmd, "history", "--history-db", dbPath)
	require.NoError(t, err, output)
	assert.Contains(t, output, "| ID | Started | Executable | Params | Samples | Status |")
	assert.Contains(t, output, "| 3 | 9 | complete |")
}

func TestRunCommand_ArgTemplates(t *testing.T) {
	dir := isolate(t)
	script := writeScript(t, `echo "$2"`)

	output, err := executeCommand(rootCmd, "run",
		"-e", script, "--args=--size,{n}", "-p", "5,2000", "-w", "0", "-s", "2",
		"-o", dir, "--format", "yaml")
	require.NoError(t, err, output)

	assert.Contains(t, output, "| 5 | 5 µs ± 0 µs | 5 µs | 5 µs |")
	assert.Contains(t, output, "| 2000 | 2 ms ± 0 ms | 2 ms | 2 ms |")

	files := snapshots(t, dir)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], ".yaml"))
}

func TestRunCommand_MalformedOutput(t *testing.T) {
	dir := isolate(t)
	script := writeScript(t, `echo "not a number"`)

	output, err := executeCommand(rootCmd, "run", "-e", script, "-p", "1", "-o", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed output")
	assert.NotContains(t, output, "| n |")
	assert.Empty(t, snapshots(t, dir), "fatal errors leave no snapshot")
}

func TestRunCommand_LaunchError(t *testing.T) {
	dir := isolate(t)

	_, err := executeCommand(rootCmd, "run", "-e", filepath.Join(dir, "missing"), "-p", "1", "-o", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch")
	assert.Empty(t, snapshots(t, dir))
}

func TestRunCommand_ExitStatus(t *testing.T) {
	dir := isolate(t)
	script := writeScript(t, `exit 2`)

	_, err := executeCommand(rootCmd, "run", "-e", script, "-p", "1", "-o", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 2")
}

func TestRunCommand_InvalidConfig(t *testing.T) {
	isolate(t)

	output, err := executeCommand(rootCmd, "run", "--samples", "0")
	require.Error(t, err)
	assert.Contains(t, output, "sample_count must be positive")
}

func TestRunCommand_InvalidParams(t *testing.T) {
	isolate(t)

	_, err := executeCommand(rootCmd, "run", "--params", "3-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end before start")
}

func TestRunCommand_ConfigFromEnv(t *testing.T) {
	dir := isolate(t)
	script := writeScript(t, `echo 7`)
	t.Setenv("BENCHSWEEP_EXECUTABLE", script)
	t.Setenv("BENCHSWEEP_PARAMETERS", "4")
	t.Setenv("BENCHSWEEP_WARMUP_COUNT", "0")
	t.Setenv("BENCHSWEEP_SAMPLE_COUNT", "1")
	t.Setenv("BENCHSWEEP_OUTPUT_DIR", dir)

	output, err := executeCommand(rootCmd, "run", "--no-color")
	require.NoError(t, err, output)
	assert.Contains(t, output, "| 4 | 7 µs ± 0 µs | 7 µs | 7 µs |")
	assert.NotContains(t, output, "Warmup:")
}
