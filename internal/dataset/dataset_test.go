package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_LineNumbers(t *testing.T) {
	f, err := Read(strings.NewReader("{\"a\":1}\n\n[1]\r\n"))
	require.NoError(t, err)
	require.Len(t, f.Records, 3)
	assert.Equal(t, 1, f.Records[0].Line)
	assert.Equal(t, "", string(f.Records[1].Data))
	assert.Equal(t, 3, f.Records[2].Line)
	assert.Equal(t, "[1]", string(f.Records[2].Data))
	assert.Len(t, f.Fingerprint, 64)
}

func TestRead_FingerprintTracksContent(t *testing.T) {
	a, err := Read(strings.NewReader("one\n"))
	require.NoError(t, err)
	b, err := Read(strings.NewReader("two\n"))
	require.NoError(t, err)
	c, err := Read(strings.NewReader("one\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, a.Fingerprint, c.Fingerprint)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_SetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"messages":[]}`), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Len(t, f.Records, 1)
}

func TestDecode_Structural(t *testing.T) {
	cases := map[string]error{
		`[1,2]`:                  ErrNotObject,
		`"text"`:                 ErrNotObject,
		`null`:                   ErrNotObject,
		``:                       ErrNotObject,
		`{not json`:              ErrNotObject,
		`{}`:                     ErrNoMessages,
		`{"messages":[]}`:        ErrNoMessages,
		`{"messages":null}`:      ErrNoMessages,
		`{"messages":"hello"}`:   ErrNoMessages,
		`{"messages":{"a":"b"}}`: ErrNoMessages,
	}
	for in, want := range cases {
		_, err := Decode(RawRecord{Line: 7, Data: []byte(in)})
		assert.ErrorIs(t, err, want, "input %q", in)
	}
}

func TestDecode_Message(t *testing.T) {
	rec, err := Decode(RawRecord{Line: 1, Data: []byte(
		`{"messages":[{"role":"user","content":"hi","extra":"x","weight":1},` +
			`{"role":"assistant","content":null,"function_call":{"name":"f"}},` +
			`{"role":5,"name":"bob","content":"yo"},` +
			`"bare"]}`)})
	require.NoError(t, err)
	require.Len(t, rec.Messages, 4)

	user := rec.Messages[0]
	assert.Equal(t, "user", user.Role)
	assert.True(t, user.RoleIsText)
	assert.True(t, user.ContentIsText)
	assert.Equal(t, []string{"extra", "weight"}, user.Unrecognized)
	assert.Equal(t, []string{"user", "hi", "x"}, user.Texts)

	fn := rec.Messages[1]
	assert.True(t, fn.Has(KeyContent))
	assert.False(t, fn.ContentIsText)
	assert.True(t, fn.HasFunctionCall())

	odd := rec.Messages[2]
	assert.True(t, odd.Has(KeyRole))
	assert.False(t, odd.RoleIsText)
	assert.Equal(t, "bob", odd.Name)

	bare := rec.Messages[3]
	assert.False(t, bare.Has(KeyRole))
	assert.False(t, bare.Has(KeyContent))
	assert.Empty(t, bare.Texts)

	assert.True(t, rec.HasAssistant())
}

func TestHasFunctionCall_Falsy(t *testing.T) {
	for _, v := range []string{`null`, `false`, `0`, `""`, `[]`, `{}`} {
		m := Message{FunctionCall: []byte(v)}
		assert.False(t, m.HasFunctionCall(), v)
	}
	assert.False(t, Message{}.HasFunctionCall())
	assert.True(t, Message{FunctionCall: []byte(`"f"`)}.HasFunctionCall())
}

func TestIsKnownRole(t *testing.T) {
	for _, r := range []string{"system", "user", "assistant", "function"} {
		assert.True(t, IsKnownRole(r))
	}
	assert.False(t, IsKnownRole("tool"))
	assert.False(t, IsKnownRole(""))
}
