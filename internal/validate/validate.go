// Package validate checks fine-tuning records against the chat schema and
// collects every problem found instead of stopping at the first one.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Manjussha/tunecheck/internal/dataset"
	"github.com/Manjussha/tunecheck/internal/tokenizer"
)

// Lengths holds the per-record statistics, one entry per structurally valid record.
type Lengths struct {
	Messages  []int
	Tokens    []int
	Assistant []int
}

// Result is the validator's output.
type Result struct {
	Report  *Report
	Lengths Lengths
	// Valid is the number of records that reached token accounting.
	Valid int
}

// Validator walks records and measures the usable ones.
type Validator struct {
	counter *tokenizer.Counter
	// Verbose logs each structural rejection.
	Verbose bool
}

// New creates a Validator that measures with counter.
func New(counter *tokenizer.Counter) *Validator {
	return &Validator{counter: counter}
}

// Run validates every record. Validation findings land in the report; the
// returned error is reserved for tokenizer failures and cancellation.
func (v *Validator) Run(ctx context.Context, records []dataset.RawRecord) (*Result, error) {
	res := &Result{Report: NewReport()}

	for _, raw := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("validate.Run: %w", err)
		}

		rec, err := dataset.Decode(raw)
		switch {
		case errors.Is(err, dataset.ErrNotObject):
			res.Report.add(raw.Line, -1, DataTypeError)
		case errors.Is(err, dataset.ErrNoMessages):
			res.Report.add(raw.Line, -1, MissingMessagesList)
		}
		if err != nil {
			if v.Verbose {
				log.Printf("validate.Run: skipping %v", err)
			}
			continue
		}

		checkConversation(res.Report, rec)

		if err := v.measure(&res.Lengths, rec); err != nil {
			return nil, fmt.Errorf("validate.Run: line %d: %w", rec.Line, err)
		}
		res.Valid++
	}
	return res, nil
}

// checkConversation applies every message rule independently.
func checkConversation(r *Report, rec dataset.Record) {
	hasAssistant := rec.HasAssistant()

	for i, m := range rec.Messages {
		if !m.Has(dataset.KeyRole) || !m.Has(dataset.KeyContent) {
			r.add(rec.Line, i, MessageMissingKey)
		}
		if len(m.Unrecognized) > 0 {
			r.add(rec.Line, i, MessageUnrecognizedKey)
		}
		if !m.RoleIsText || !dataset.IsKnownRole(m.Role) {
			r.add(rec.Line, i, UnrecognizedRole)
		}
		if !m.ContentIsText || (m.Content == "" && !m.HasFunctionCall()) {
			r.add(rec.Line, i, MissingContent)
		}
		if !hasAssistant {
			r.add(rec.Line, i, MissingAssistantMessage)
		}
	}
}

func (v *Validator) measure(l *Lengths, rec dataset.Record) error {
	total, err := v.counter.ConversationTokens(rec.Messages)
	if err != nil {
		return err
	}
	assistant, err := v.counter.AssistantTokens(rec.Messages)
	if err != nil {
		return err
	}
	l.Messages = append(l.Messages, len(rec.Messages))
	l.Tokens = append(l.Tokens, total)
	l.Assistant = append(l.Assistant, assistant)
	return nil
}
