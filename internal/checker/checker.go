// Package checker runs the full pre-flight pass over a fine-tuning dataset.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Manjussha/tunecheck/internal/dataset"
	"github.com/Manjussha/tunecheck/internal/estimate"
	"github.com/Manjussha/tunecheck/internal/stats"
	"github.com/Manjussha/tunecheck/internal/tokenizer"
	"github.com/Manjussha/tunecheck/internal/validate"
)

// Distribution labels, in report order.
const (
	LabelMessages  = "Number of Messages per Example"
	LabelTokens    = "Number of Total Tokens per Example"
	LabelAssistant = "Number of Assistant Tokens per Example"
)

// Result is everything one run produces.
type Result struct {
	Path        string
	Fingerprint string
	Encoding    string

	// Examples is the number of records in the file, valid or not.
	Examples int
	// Valid is the number of records that reached token accounting.
	Valid int
	// Empty is set when the file held no records at all.
	Empty bool

	Validation    *validate.Report
	Distributions []stats.Distribution
	Estimate      *estimate.Estimate
}

// Checker wires the validator, summarizer and estimator together.
type Checker struct {
	Encoding string
	Counter  *tokenizer.Counter
	Policy   estimate.Policy
	Verbose  bool
}

// New creates a Checker for the named encoding with the default policy.
func New(encoding string) (*Checker, error) {
	enc, err := tokenizer.NewEncoder(encoding)
	if err != nil {
		return nil, fmt.Errorf("checker.New: %w", err)
	}
	return &Checker{
		Encoding: encoding,
		Counter:  tokenizer.NewCounter(enc),
		Policy:   estimate.DefaultPolicy(),
	}, nil
}

// Run loads the dataset at path and checks it.
func (c *Checker) Run(ctx context.Context, path string) (*Result, error) {
	file, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("checker.Run: %w", err)
	}
	return c.Check(ctx, file)
}

// Check validates and measures an already loaded dataset.
func (c *Checker) Check(ctx context.Context, file *dataset.File) (*Result, error) {
	res := &Result{
		Path:        file.Path,
		Fingerprint: file.Fingerprint,
		Encoding:    c.Encoding,
		Examples:    len(file.Records),
	}
	if res.Examples == 0 {
		res.Empty = true
		res.Validation = validate.NewReport()
		return res, nil
	}

	v := validate.New(c.Counter)
	v.Verbose = c.Verbose
	vr, err := v.Run(ctx, file.Records)
	if err != nil {
		return nil, fmt.Errorf("checker.Check: %w", err)
	}
	res.Validation = vr.Report
	res.Valid = vr.Valid

	series := []struct {
		label  string
		values []int
	}{
		{LabelMessages, vr.Lengths.Messages},
		{LabelTokens, vr.Lengths.Tokens},
		{LabelAssistant, vr.Lengths.Assistant},
	}
	for _, s := range series {
		d, err := stats.Summarize(s.label, s.values)
		if errors.Is(err, stats.ErrEmptyDataset) {
			log.Printf("checker.Check: no usable examples, skipping distributions")
			res.Distributions = nil
			break
		}
		if err != nil {
			return nil, fmt.Errorf("checker.Check: %w", err)
		}
		res.Distributions = append(res.Distributions, d)
	}

	est, err := c.Policy.Estimate(vr.Lengths.Tokens, res.Examples)
	if err != nil {
		return nil, fmt.Errorf("checker.Check: %w", err)
	}
	res.Estimate = &est
	return res, nil
}
