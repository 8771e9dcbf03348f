package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bexcite/dac"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--points", "500")
	require.NoError(t, err)
	require.Contains(t, out, "points: 500")
	require.Contains(t, out, "center_freq: 500000")
	require.Contains(t, out, "sink: memory")
}

func TestConfigCommandEnv(t *testing.T) {
	t.Setenv("BECHIRP_CHIRP_REPETITIONS", "5")
	out, err := execute(t, "config")
	require.NoError(t, err)
	require.Contains(t, out, "repetitions: 5")
}

func TestConfigFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bechirp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chirp:\n  points: 64\n"), 0o644))

	out, err := execute(t, "--config", path, "config")
	require.NoError(t, err)
	require.Contains(t, out, "points: 64")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config")
	require.Error(t, err)
}

func TestRunFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bin")
	out, err := execute(t, "run", "--sink", "file", "--path", path)
	require.NoError(t, err)
	require.Contains(t, out, "samples:     2000")
	require.Contains(t, out, "50000000 Hz")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 4*2000)
}

func TestRunMemorySink(t *testing.T) {
	out, err := execute(t, "run", "--points", "100", "--repetitions", "3", "--pre-delay", "10")
	require.NoError(t, err)
	require.Contains(t, out, "samples:     330")
	require.Contains(t, out, "sink:        memory")
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := execute(t, "run", "--sink", "tape")
	require.Error(t, err)

	_, err = execute(t, "run", "--sink", "file")
	require.Error(t, err)

	_, err = execute(t, "run", "--divider", "20000")
	require.Error(t, err)
}

func TestRunTooManySamples(t *testing.T) {
	_, err := execute(t, "run", "--points", "10000")
	require.ErrorIs(t, err, dac.ErrInvalidLength)
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chirp.csv")
	_, err := execute(t, "export", "--points", "50", "--repetitions", "1", "--out", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 51)
	require.Equal(t, []string{"index", "time", "excitation", "cantilever"}, records[0])
	require.Equal(t, "0", records[1][0])
	require.Equal(t, "0", records[1][1])
}

func TestExportStdout(t *testing.T) {
	out, err := execute(t, "export", "--points", "10", "--repetitions", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 21)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "analyze")
	require.NoError(t, err)
	require.Contains(t, out, "470000 .. 530000 Hz")
	require.Contains(t, out, "chirp rate")
	require.Contains(t, out, "aliased")
	require.Contains(t, out, "window enbw")
	require.Contains(t, out, "ch1 headroom")
	require.Contains(t, out, "(0 clipped)")
}
