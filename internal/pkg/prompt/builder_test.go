package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_QuestionOnly(t *testing.T) {
	b := New(DefaultMaxLength)

	got := b.Build("מה התאריך היום?", "")

	assert.True(t, strings.HasPrefix(got, preamble))
	assert.Contains(t, got, questionLabel+"\nמה התאריך היום?")
	assert.NotContains(t, got, fileLabel)
}

func TestBuild_WithFileText(t *testing.T) {
	b := New(DefaultMaxLength)

	got := b.Build("סכם את הקובץ", "line one\nline two")

	assert.Contains(t, got, fileLabel)
	assert.Contains(t, got, `"""line one`+"\n"+`line two"""`)
}

func TestBuild_TruncatesAtCap(t *testing.T) {
	b := New(100)

	got := b.Build("שאלה", strings.Repeat("א", 500))

	require.True(t, strings.HasSuffix(got, TruncationMarker))
	runes := []rune(got)
	assert.Len(t, runes, 100+len([]rune(TruncationMarker)))
}

func TestBuild_UnderCapIsUntouched(t *testing.T) {
	b := New(DefaultMaxLength)

	got := b.Build("שאלה קצרה", "תוכן קצר")

	assert.False(t, strings.HasSuffix(got, TruncationMarker))
	assert.LessOrEqual(t, len([]rune(got)), DefaultMaxLength)
}

func TestBuild_Deterministic(t *testing.T) {
	b := New(DefaultMaxLength)

	first := b.Build("שאלה", "קובץ")
	second := b.Build("שאלה", "קובץ")

	assert.Equal(t, first, second)
}

func TestNew_NonPositiveMaxLengthUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultMaxLength, New(0).MaxLength())
	assert.Equal(t, DefaultMaxLength, New(-5).MaxLength())
	assert.Equal(t, 42, New(42).MaxLength())
}
