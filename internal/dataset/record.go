package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Structural decode failures. A record that fails with either is excluded
// from token accounting.
var (
	ErrNotObject  = errors.New("record is not a JSON object")
	ErrNoMessages = errors.New("record has no messages")
)

// Roles a message may carry.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
)

// Recognized message keys.
const (
	KeyRole         = "role"
	KeyContent      = "content"
	KeyName         = "name"
	KeyFunctionCall = "function_call"
)

// Record is a structurally valid line: an object with a non-empty messages array.
type Record struct {
	Line     int
	Messages []Message
}

// HasAssistant reports whether any message in the conversation is authored by the assistant.
func (r Record) HasAssistant() bool {
	for _, m := range r.Messages {
		if m.RoleIsText && m.Role == RoleAssistant {
			return true
		}
	}
	return false
}

// Message is one decoded conversation turn. Fields that were absent or of the
// wrong JSON type keep their zero value; the presence flags tell them apart.
type Message struct {
	Role         string
	Content      string
	Name         string
	FunctionCall json.RawMessage

	RoleIsText    bool
	ContentIsText bool

	// Unrecognized lists keys outside role/content/name/function_call, in input order.
	Unrecognized []string
	// Texts holds every string-valued field, recognized or not, in input order.
	Texts []string

	keys map[string]bool
}

// Has reports whether key was present in the message object, whatever its value.
func (m Message) Has(key string) bool {
	return m.keys[key]
}

// HasFunctionCall reports whether function_call is present with a truthy value.
func (m Message) HasFunctionCall() bool {
	return truthy(m.FunctionCall)
}

// IsKnownRole reports whether Role is one of the four recognized roles.
func IsKnownRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant, RoleFunction:
		return true
	}
	return false
}

func isKnownKey(key string) bool {
	switch key {
	case KeyRole, KeyContent, KeyName, KeyFunctionCall:
		return true
	}
	return false
}

// Decode promotes a raw line to a Record. It returns ErrNotObject or
// ErrNoMessages (wrapped) for structurally unusable lines.
func Decode(raw RawRecord) (Record, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw.Data, &obj); err != nil || obj == nil {
		return Record{}, fmt.Errorf("line %d: %w", raw.Line, ErrNotObject)
	}

	var elems []json.RawMessage
	if msgs, ok := obj["messages"]; ok {
		// A non-array value leaves elems nil.
		_ = json.Unmarshal(msgs, &elems)
	}
	if len(elems) == 0 {
		return Record{}, fmt.Errorf("line %d: %w", raw.Line, ErrNoMessages)
	}

	rec := Record{Line: raw.Line, Messages: make([]Message, 0, len(elems))}
	for _, e := range elems {
		rec.Messages = append(rec.Messages, decodeMessage(e))
	}
	return rec, nil
}

func decodeMessage(data json.RawMessage) Message {
	m := Message{keys: make(map[string]bool)}

	fields, err := orderedFields(data)
	if err != nil {
		// Not an object: every key-level rule will fail on it.
		return m
	}

	for _, f := range fields {
		m.keys[f.key] = true
		if !isKnownKey(f.key) {
			m.Unrecognized = append(m.Unrecognized, f.key)
		}

		var s string
		isText := json.Unmarshal(f.value, &s) == nil && isString(f.value)
		if isText {
			m.Texts = append(m.Texts, s)
		}

		switch f.key {
		case KeyRole:
			m.Role, m.RoleIsText = s, isText
		case KeyContent:
			m.Content, m.ContentIsText = s, isText
		case KeyName:
			m.Name = s
		case KeyFunctionCall:
			m.FunctionCall = f.value
		}
	}
	return m
}

type field struct {
	key   string
	value json.RawMessage
}

// orderedFields decodes a JSON object keeping key order. Duplicate keys keep
// the last value, like a map decode would.
func orderedFields(data json.RawMessage) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not an object")
	}

	var fields []field
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if i, dup := index[key]; dup {
			fields[i].value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, field{key: key, value: value})
	}
	return fields, nil
}

func isString(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '"'
}

// truthy mirrors the usual dynamic-language notion: absent, null, false,
// zero, and empty strings, arrays or objects are all false.
func truthy(v json.RawMessage) bool {
	if len(bytes.TrimSpace(v)) == 0 {
		return false
	}
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return false
	}
	switch t := x.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
