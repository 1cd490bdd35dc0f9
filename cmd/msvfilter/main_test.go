package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := runCLI(t, "score", "-seq", "ACD", "-profile", "pattern", "-m", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "pattern_model (M=3)")
	assert.Contains(t, out, "MSV score: 6.00")

	out, err = runCLI(t, "score", "-seq", "ACD", "-profile", "constant", "-m", "3", "-score", "-2")
	require.NoError(t, err)
	assert.Contains(t, out, "MSV score: 0.00")
}

func TestScoreCommandErrors(t *testing.T) {
	_, err := runCLI(t, "score", "-profile", "pattern")
	require.Error(t, err)

	_, err = runCLI(t, "score", "-seq", "ACD", "-profile", "hmm")
	require.Error(t, err)

	t.Setenv("MSV_MAX_CELLS", "5")
	_, err = runCLI(t, "score", "-seq", "ACD", "-m", "3")
	require.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqs.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">one\nACDEF\n>two\nA\n"), 0o644))

	out, err := runCLI(t, "batch", "-file", path, "-profile", "constant", "-m", "3", "-workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "one\t5\t3.00")
	assert.Contains(t, out, "two\t1\t1.00")
	assert.Contains(t, out, "best: one")
	assert.Contains(t, out, "total residues: 6")
	assert.Contains(t, out, "N50: 5")

	out, err = runCLI(t, "batch", "-file", path, "-profile", "constant", "-m", "3", "-json")
	require.NoError(t, err)

	var resp struct {
		Results []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"results"`
		Summary struct {
			Count int `json:"count"`
		} `json:"summary"`
		Input struct {
			TotalResidues int `json:"total_residues"`
		} `json:"input"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "one", resp.Results[0].Name)
	assert.Equal(t, 2, resp.Summary.Count)
	assert.Equal(t, 6, resp.Input.TotalResidues)
}

func TestStrictFlag(t *testing.T) {
	out, err := runCLI(t, "score", "-seq", "A1C", "-profile", "constant", "-m", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "MSV score: 1.00")

	_, err = runCLI(t, "score", "-seq", "A1C", "-strict", "-profile", "constant", "-m", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position 2")

	path := filepath.Join(t.TempDir(), "seqs.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">ok\nACD\n>bad\nAC#\n"), 0o644))

	_, err = runCLI(t, "batch", "-file", path, "-profile", "constant", "-m", "2")
	require.NoError(t, err)

	_, err = runCLI(t, "batch", "-file", path, "-strict", "-profile", "constant", "-m", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestModelLengthLimit(t *testing.T) {
	t.Setenv("MSV_MAX_MODEL_LENGTH", "5")
	_, err := runCLI(t, "score", "-seq", "A", "-m", "6")
	require.Error(t, err)
}

func TestMatrixCommand(t *testing.T) {
	out, err := runCLI(t, "matrix", "-seq", "AC", "-profile", "constant", "-m", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "i x")
	assert.Contains(t, out, "MSV score: 2.00")

	t.Setenv("MSV_MATRIX_MAX_CELLS", "4")
	_, err = runCLI(t, "matrix", "-seq", "AC", "-profile", "constant", "-m", "2")
	require.Error(t, err)
}

func TestDemoCommand(t *testing.T) {
	out, err := runCLI(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Digital Sequence (length 15): ACDEFGHIKLMNPQR")
	assert.Contains(t, out, "test_model")
	assert.Contains(t, out, "16 rows x 11 columns")
	assert.Contains(t, out, "MSV score:")
}

func TestAlphabetCommand(t *testing.T) {
	out, err := runCLI(t, "alphabet")
	require.NoError(t, err)
	assert.Contains(t, out, "K=20 Kp=29 gap=20 any=26")
	assert.Contains(t, out, "26  X  degenerate, matches 20: ACDEFGHIKLMNPQRSTVWY")
	assert.Contains(t, out, "21  B  no degeneracy")
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "align")
	require.ErrorIs(t, err, errUsage)

	_, err = runCLI(t)
	require.ErrorIs(t, err, errUsage)
}
