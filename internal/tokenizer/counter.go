package tokenizer

import (
	"fmt"

	"github.com/Manjussha/tunecheck/internal/dataset"
)

// Chat format overheads.
const (
	TokensPerMessage = 3
	TokensPerName    = 1
	// ReplyPrimingTokens is appended once per conversation.
	ReplyPrimingTokens = 3
)

// Counter measures conversations through an Encoder.
type Counter struct {
	enc Encoder
}

// NewCounter creates a Counter backed by enc.
func NewCounter(enc Encoder) *Counter {
	return &Counter{enc: enc}
}

// Len returns the number of tokens in text.
func (c *Counter) Len(text string) (int, error) {
	ids, err := c.enc.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// ConversationTokens counts a whole conversation with the default overheads.
func (c *Counter) ConversationTokens(msgs []dataset.Message) (int, error) {
	return c.CountMessages(msgs, TokensPerMessage, TokensPerName)
}

// CountMessages charges perMessage for every message, the token length of
// every string-valued field, and perName for each message carrying a name
// key, plus ReplyPrimingTokens once.
func (c *Counter) CountMessages(msgs []dataset.Message, perMessage, perName int) (int, error) {
	total := 0
	for i, m := range msgs {
		total += perMessage
		for _, text := range m.Texts {
			n, err := c.Len(text)
			if err != nil {
				return 0, fmt.Errorf("tokenizer.CountMessages: message %d: %w", i, err)
			}
			total += n
		}
		if m.Has(dataset.KeyName) {
			total += perName
		}
	}
	return total + ReplyPrimingTokens, nil
}

// AssistantTokens sums the content tokens of assistant messages only.
// No overheads are charged.
func (c *Counter) AssistantTokens(msgs []dataset.Message) (int, error) {
	total := 0
	for i, m := range msgs {
		if !m.RoleIsText || m.Role != dataset.RoleAssistant || !m.ContentIsText {
			continue
		}
		n, err := c.Len(m.Content)
		if err != nil {
			return 0, fmt.Errorf("tokenizer.AssistantTokens: message %d: %w", i, err)
		}
		total += n
	}
	return total, nil
}
