// Package estimate recommends an epoch count and projects billed tokens for a
// fine-tuning run.
package estimate

import "errors"

// Default policy values.
const (
	MaxTokensPerExample = 4096
	TargetEpochs        = 3
	MinDefaultEpochs    = 1
	MaxDefaultEpochs    = 25
	MinTargetExamples   = 15
	MaxTargetExamples   = 25000
)

// ErrNoExamples is returned when the dataset has no examples to train on.
var ErrNoExamples = errors.New("estimate: dataset has no examples")

// Policy holds the knobs of the epoch/cost heuristic.
type Policy struct {
	MaxTokensPerExample int
	TargetEpochs        int
	MinDefaultEpochs    int
	MaxDefaultEpochs    int
	MinTargetExamples   int
	MaxTargetExamples   int
}

// DefaultPolicy returns the policy the training service applies by default.
func DefaultPolicy() Policy {
	return Policy{
		MaxTokensPerExample: MaxTokensPerExample,
		TargetEpochs:        TargetEpochs,
		MinDefaultEpochs:    MinDefaultEpochs,
		MaxDefaultEpochs:    MaxDefaultEpochs,
		MinTargetExamples:   MinTargetExamples,
		MaxTargetExamples:   MaxTargetExamples,
	}
}

// Estimate is the projected cost of a run.
type Estimate struct {
	Epochs int `json:"epochs" yaml:"epochs"`
	// BilledTokens is the per-epoch token count after truncation.
	BilledTokens int `json:"billed_tokens" yaml:"billed_tokens"`
	// ChargedTokens is Epochs * BilledTokens.
	ChargedTokens int `json:"charged_tokens" yaml:"charged_tokens"`
	// TooLong counts examples that will be truncated during training.
	TooLong int `json:"too_long" yaml:"too_long"`
	// MaxTokensPerExample is the truncation limit used.
	MaxTokensPerExample int `json:"max_tokens_per_example" yaml:"max_tokens_per_example"`
}

// Epochs returns the recommended epoch count for a dataset of the given size.
func (p Policy) Epochs(examples int) (int, error) {
	if examples <= 0 {
		return 0, ErrNoExamples
	}
	epochs := p.TargetEpochs
	switch {
	case examples*p.TargetEpochs < p.MinTargetExamples:
		epochs = min(p.MaxDefaultEpochs, p.MinTargetExamples/examples)
	case examples*p.TargetEpochs > p.MaxTargetExamples:
		epochs = max(p.MinDefaultEpochs, p.MaxTargetExamples/examples)
	}
	return epochs, nil
}

// Estimate applies the policy to per-example token lengths. examples is the
// size of the whole dataset, which may exceed len(lengths) when some records
// were unusable.
func (p Policy) Estimate(lengths []int, examples int) (Estimate, error) {
	epochs, err := p.Epochs(examples)
	if err != nil {
		return Estimate{}, err
	}

	est := Estimate{Epochs: epochs, MaxTokensPerExample: p.MaxTokensPerExample}
	for _, n := range lengths {
		est.BilledTokens += min(p.MaxTokensPerExample, n)
		if n > p.MaxTokensPerExample {
			est.TooLong++
		}
	}
	est.ChargedTokens = est.Epochs * est.BilledTokens
	return est, nil
}
