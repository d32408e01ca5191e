package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// resetFlags sets the flags these tests touch to known values (alpha
// 0.5 rather than the 0.05 default, the rest at their defaults), since
// flag state otherwise leaks across tests sharing the same
// *cobra.Command.
func resetFlags(t *testing.T) {
	t.Helper()
	require.NoError(t, rootCmd.Flags().Set("alpha", "0.5"))
	require.NoError(t, rootCmd.Flags().Set("fdr", "false"))
	require.NoError(t, rootCmd.Flags().Set("min-support", "2"))
	require.NoError(t, rootCmd.Flags().Set("labels", ""))
	require.NoError(t, rootCmd.Flags().Set("metrics-addr", ""))
}

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestRunMineProducesOneGroupWithoutLabels(t *testing.T) {
	resetFlags(t)
	tx := writeTemp(t, "tx.dat", "1 2\n1 2\n1 2\n3 4\n3 4\n3 4\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{tx})
	require.NoError(t, rootCmd.Execute())

	var r report
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	require.NotEmpty(t, r.RunID)
	require.NotEmpty(t, r.ExecutionTime)
	for _, p := range r.Patterns {
		require.Equal(t, 0, p.Group)
	}
}

func TestRunMineProducesOneGroupPerLabel(t *testing.T) {
	resetFlags(t)
	tx := writeTemp(t, "tx.dat", "1 2\n1 2\n1 2\n3 4\n3 4\n3 4\n")
	labels := writeTemp(t, "labels.dat", "0\n0\n0\n1\n1\n1\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--labels", labels, "--fdr", tx})
	require.NoError(t, rootCmd.Execute())

	var r report
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	require.NotEmpty(t, r.RunID)
	require.NotEmpty(t, r.ExecutionTime)
	for _, p := range r.Patterns {
		require.Contains(t, []int{0, 1}, p.Group)
	}
}

func TestRunMineFailsOnMissingFile(t *testing.T) {
	resetFlags(t)
	rootCmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.dat")})
	require.Error(t, rootCmd.Execute())
}
