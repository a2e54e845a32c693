package checker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manjussha/tunecheck/internal/tokenizer"
	"github.com/Manjussha/tunecheck/internal/validate"
)

func writeDataset(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func heuristicChecker(t *testing.T) *Checker {
	t.Helper()
	c, err := New(tokenizer.Heuristic)
	require.NoError(t, err)
	return c
}

func TestRun_MixedDataset(t *testing.T) {
	path := writeDataset(t,
		`{"messages":[{"role":"user","content":"abcd"},{"role":"assistant","content":"abcdefgh"}]}`,
		`{"messages":[]}`,
		`[1]`,
		`{"messages":[{"role":"user","content":"abcd"}]}`,
	)

	res, err := heuristicChecker(t).Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Equal(t, tokenizer.Heuristic, res.Encoding)
	assert.Equal(t, 4, res.Examples)
	assert.Equal(t, 2, res.Valid)
	assert.False(t, res.Empty)

	assert.Equal(t, []int{2}, res.Validation.Lines(validate.MissingMessagesList))
	assert.Equal(t, []int{3}, res.Validation.Lines(validate.DataTypeError))
	assert.Equal(t, []int{4}, res.Validation.Lines(validate.MissingAssistantMessage))

	require.Len(t, res.Distributions, 3)
	assert.Equal(t, LabelMessages, res.Distributions[0].Label)
	assert.Equal(t, 1, res.Distributions[0].Min)
	assert.Equal(t, 2, res.Distributions[0].Max)
	assert.Equal(t, 2, res.Distributions[2].Max)

	// user: 3+1+1, assistant: 3+3+2, priming 3 => 16; lone user: 3+1+1+3 => 8.
	assert.Equal(t, 8, res.Distributions[1].Min)
	assert.Equal(t, 16, res.Distributions[1].Max)

	require.NotNil(t, res.Estimate)
	// 4 examples * 3 < 15 => 15/4 = 3 epochs.
	assert.Equal(t, 3, res.Estimate.Epochs)
	assert.Equal(t, 24, res.Estimate.BilledTokens)
	assert.Equal(t, 72, res.Estimate.ChargedTokens)
}

func TestRun_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	res, err := heuristicChecker(t).Run(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Nil(t, res.Estimate)
	assert.Empty(t, res.Distributions)
	assert.True(t, res.Validation.Empty())
}

func TestRun_NoUsableRecords(t *testing.T) {
	path := writeDataset(t, `{"messages":[]}`, `"str"`)

	res, err := heuristicChecker(t).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, res.Distributions)
	require.NotNil(t, res.Estimate)
	assert.Equal(t, 0, res.Estimate.BilledTokens)
	assert.Equal(t, 2, res.Validation.Total())
}

func TestRun_MissingFile(t *testing.T) {
	_, err := heuristicChecker(t).Run(context.Background(), filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_UnknownEncoding(t *testing.T) {
	_, err := New("nope")
	require.Error(t, err)
}
