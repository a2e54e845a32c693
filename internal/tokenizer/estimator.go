// Package tokenizer adapts subword tokenizers behind a single Encode capability
// and counts the tokens a fine-tuning conversation costs.
package tokenizer

import (
	"fmt"

	tiktoken "github.com/tiktoken-go/tokenizer"
)

// Encoding names accepted by NewEncoder.
const (
	Cl100kBase = "cl100k_base"
	O200kBase  = "o200k_base"
	P50kBase   = "p50k_base"
	R50kBase   = "r50k_base"
	Heuristic  = "heuristic"
)

// Encoder turns text into token ids. Only the length of the result is used.
type Encoder interface {
	Encode(text string) ([]uint, error)
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string) (Encoder, error) {
	switch name {
	case Heuristic:
		return HeuristicEncoder{}, nil
	case Cl100kBase, O200kBase, P50kBase, R50kBase:
		return NewTiktoken(name)
	default:
		return nil, fmt.Errorf("tokenizer.NewEncoder: unknown encoding %q", name)
	}
}

// Tiktoken wraps a tiktoken codec.
type Tiktoken struct {
	codec tiktoken.Codec
}

// NewTiktoken loads the named tiktoken encoding.
func NewTiktoken(name string) (*Tiktoken, error) {
	codec, err := tiktoken.Get(tiktoken.Encoding(name))
	if err != nil {
		return nil, fmt.Errorf("tokenizer.NewTiktoken: %s: %w", name, err)
	}
	return &Tiktoken{codec: codec}, nil
}

// Encode returns the token ids for text.
func (t *Tiktoken) Encode(text string) ([]uint, error) {
	ids, _, err := t.codec.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("tiktoken encode: %w", err)
	}
	return ids, nil
}

// HeuristicEncoder approximates a subword tokenizer with ~4 bytes per token.
// Useful offline; counts will not match the training service exactly.
type HeuristicEncoder struct{}

// Encode emits one id per 4-byte chunk; the id is the chunk's byte sum.
func (HeuristicEncoder) Encode(text string) ([]uint, error) {
	ids := make([]uint, 0, EstimateTokens(text))
	for i := 0; i < len(text); i += 4 {
		end := min(i+4, len(text))
		var id uint
		for _, b := range []byte(text[i:end]) {
			id += uint(b)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// EstimateTokens estimates the token count of a text string.
// Uses the rule of thumb: ~4 characters per token.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}
