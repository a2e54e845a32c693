package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_OneToFive(t *testing.T) {
	d, err := Summarize("n", []int{5, 3, 1, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Min)
	assert.Equal(t, 5, d.Max)
	assert.InDelta(t, 3.0, d.Mean, 1e-9)
	assert.InDelta(t, 3.0, d.Median, 1e-9)
	assert.InDelta(t, 1.4, d.P10, 1e-9)
	assert.InDelta(t, 4.6, d.P90, 1e-9)
	assert.Equal(t, 5, d.Count)
	assert.Equal(t, "n", d.Label)
}

func TestSummarize_EvenMedian(t *testing.T) {
	d, err := Summarize("n", []int{10, 20, 30, 40})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, d.Median, 1e-9)
	assert.InDelta(t, 25.0, d.Mean, 1e-9)
}

func TestSummarize_Single(t *testing.T) {
	d, err := Summarize("n", []int{7})
	require.NoError(t, err)
	assert.Equal(t, 7, d.Min)
	assert.Equal(t, 7, d.Max)
	assert.InDelta(t, 7.0, d.P10, 1e-9)
	assert.InDelta(t, 7.0, d.P90, 1e-9)
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	in := []int{3, 1, 2}
	_, err := Summarize("n", in)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, in)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize("tokens", nil)
	require.ErrorIs(t, err, ErrEmptyDataset)
	assert.Contains(t, err.Error(), "tokens")
}
