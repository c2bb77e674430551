package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw      string
		expected Token
	}{
		{raw: "", expected: Token{Raw: "", Kind: Positional}},
		{raw: "-", expected: Token{Raw: "-", Kind: Positional}},
		{raw: "--", expected: Token{Raw: "--", Kind: Terminator}},
		{raw: "build", expected: Token{Raw: "build", Kind: Positional}},
		{raw: "--verbose", expected: Token{Raw: "--verbose", Kind: LongOption, Name: "verbose"}},
		{raw: "--out=dist", expected: Token{Raw: "--out=dist", Kind: LongOption, Name: "out", Value: "dist", HasValue: true}},
		{raw: "--out=", expected: Token{Raw: "--out=", Kind: LongOption, Name: "out", HasValue: true}},
		{raw: "--opt=a=b", expected: Token{Raw: "--opt=a=b", Kind: LongOption, Name: "opt", Value: "a=b", HasValue: true}},
		{raw: "-v", expected: Token{Raw: "-v", Kind: ShortOption, Name: "v"}},
		{raw: "-xvf", expected: Token{Raw: "-xvf", Kind: ShortOption, Name: "xvf"}},
		{raw: "path/-x", expected: Token{Raw: "path/-x", Kind: Positional}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.raw))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "positional", Positional.String())
	assert.Equal(t, "long-option", LongOption.String())
	assert.Equal(t, "short-option", ShortOption.String())
	assert.Equal(t, "terminator", Terminator.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestLooksLikeOption(t *testing.T) {
	assert.True(t, LooksLikeOption("--out"))
	assert.True(t, LooksLikeOption("-v"))
	assert.True(t, LooksLikeOption("--"))
	assert.False(t, LooksLikeOption("-"))
	assert.False(t, LooksLikeOption(""))
	assert.False(t, LooksLikeOption("file.txt"))
}

func TestStream_ShiftOrder(t *testing.T) {
	s := NewStream([]string{"a", "b", "c"})
	assert.Equal(t, 3, s.Len())

	var got []string
	for {
		tok, ok := s.Shift()
		if !ok {
			break
		}
		got = append(got, tok)
	}

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Len())
}

func TestStream_EmptyShift(t *testing.T) {
	s := NewStream(nil)

	tok, ok := s.Shift()
	assert.False(t, ok)
	assert.Equal(t, "", tok)

	_, ok = s.Peek()
	assert.False(t, ok)
}

func TestStream_Unshift(t *testing.T) {
	s := NewStream([]string{"b"})
	s.Unshift("a")

	tok, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, "a", tok)
	assert.Equal(t, []string{"a", "b"}, s.Remaining())

	tok, _ = s.Shift()
	assert.Equal(t, "a", tok)
	tok, _ = s.Shift()
	assert.Equal(t, "b", tok)
}

func TestStream_UnshiftOnEmpty(t *testing.T) {
	s := NewStream(nil)
	s.Unshift("x")

	tok, ok := s.Shift()
	assert.True(t, ok)
	assert.Equal(t, "x", tok)
}

func TestStream_UnshiftValue(t *testing.T) {
	s := NewStream([]string{"next"})
	s.UnshiftValue("-x")

	e, ok := s.PeekEntry()
	require.True(t, ok)
	assert.True(t, e.Explicit)
	assert.Equal(t, "-x", e.Text)

	e, _ = s.ShiftEntry()
	assert.True(t, e.Explicit)

	e, _ = s.ShiftEntry()
	assert.False(t, e.Explicit)
	assert.Equal(t, "next", e.Text)
}

func TestStream_DoesNotAliasInput(t *testing.T) {
	tokens := []string{"a", "b"}
	s := NewStream(tokens)
	_, _ = s.Shift()
	s.Unshift("z")

	assert.Equal(t, []string{"a", "b"}, tokens)
}

func TestSplitJoin_RoundTrip(t *testing.T) {
	tests := [][]string{
		{"build", "--out=dist"},
		{"with space", "it's", `dq"uote`},
		{"", "-", "--"},
		{"$HOME", "*.go", "a\\b"},
	}

	for _, tokens := range tests {
		line := Join(tokens...)
		got, err := Split(line)
		require.NoError(t, err, line)
		assert.Equal(t, tokens, got, line)
	}
}

func TestSplit_Unterminated(t *testing.T) {
	_, err := Split(`build "oops`)
	assert.Error(t, err)
}
