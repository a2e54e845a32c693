// Package stats summarizes per-example length distributions.
package stats

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrEmptyDataset is returned when there is nothing to summarize.
var ErrEmptyDataset = errors.New("Empty Dataset")

// Distribution describes a sequence of lengths.
type Distribution struct {
	Label  string  `json:"label" yaml:"label"`
	Count  int     `json:"count" yaml:"count"`
	Min    int     `json:"min" yaml:"min"`
	Max    int     `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	P10    float64 `json:"p10" yaml:"p10"`
	P90    float64 `json:"p90" yaml:"p90"`
}

// Summarize computes min, max, mean, median and the 10th/90th percentiles of values.
func Summarize(label string, values []int) (Distribution, error) {
	if len(values) == 0 {
		return Distribution{}, fmt.Errorf("stats.Summarize: %s: %w", label, ErrEmptyDataset)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	sum := 0
	for _, v := range sorted {
		sum += v
	}

	return Distribution{
		Label:  label,
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   float64(sum) / float64(len(sorted)),
		Median: Quantile(sorted, 0.5),
		P10:    Quantile(sorted, 0.1),
		P90:    Quantile(sorted, 0.9),
	}, nil
}

// Quantile returns the q-th quantile of sorted, interpolating linearly
// between the two nearest ranks. sorted must be ascending and non-empty.
func Quantile(sorted []int, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}
