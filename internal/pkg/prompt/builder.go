// Package prompt assembles the final text submitted to the inference
// engine: a fixed instruction preamble, the user question and, when a
// file accompanied the request, its normalized text in a delimited
// block.
package prompt

import (
	"fmt"
	"strings"
)

// preamble carries the language and behavior constraints for the
// downstream model. The deployed model is a Hebrew instruction model,
// so the instructions are in Hebrew.
const preamble = `אתה מודל של בינה מלאכותית שתפקידך הוא לעזור להבין ולנתח קבצים ומידע לפי הקלט שניתן לך.
תפעל לפי ההנחיות הבאות:
1. התשובות שלך יהיו אך ורק בעברית.
2. תהיה ממוקד ותן תשובה אחת בלבד על מנת לחסוך בטוקנים.
3. כאשר יש קובץ מצורף, תתייחס אליו כחלק מהמידע ותכלול אותו בתשובתך.
4. התשובות שלך יסתמכו על המידע הרלוונטי בלבד מתוך הקובץ או השאלה שהוצגה לך.
5. אם ישנם קטעי קוד, תתייחס אליהם בהתאם לתוכן השאלה ולמטרת הקובץ.`

const (
	questionLabel = "שאלה:"
	fileLabel     = "קובץ מצורף:"

	// TruncationMarker is appended when the assembled prompt was cut
	// at the length cap.
	TruncationMarker = "..."

	// DefaultMaxLength is the cap on the assembled prompt, in runes.
	DefaultMaxLength = 4000
)

// Builder is a pure prompt assembler: no I/O, deterministic for given
// inputs.
type Builder struct {
	maxLength int
}

func New(maxLength int) *Builder {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Builder{maxLength: maxLength}
}

// Build assembles preamble + question + optional file block and then
// applies the length cap to the final string. Capping last means a long
// question can push the file content out of the window entirely; that
// ordering decides what survives and must not change.
func (b *Builder) Build(question, fileText string) string {
	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString("\n\n")
	sb.WriteString(questionLabel)
	sb.WriteString("\n")
	sb.WriteString(question)
	sb.WriteString("\n")

	if fileText != "" {
		sb.WriteString("\n")
		sb.WriteString(fileLabel)
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("\"\"\"%s\"\"\"", fileText))
		sb.WriteString("\n")
	}

	assembled := sb.String()

	// Measured in runes so Hebrew text is never cut mid-character.
	runes := []rune(assembled)
	if len(runes) > b.maxLength {
		return string(runes[:b.maxLength]) + TruncationMarker
	}

	return assembled
}

// MaxLength returns the configured cap.
func (b *Builder) MaxLength() int {
	return b.maxLength
}
