// Package formatter renders chat transcripts into downloadable
// documents.
package formatter

import (
	"fmt"

	"github.com/roeev/docuchat/internal/entity"
)

const (
	questionPrefix = "שאלה: "
	answerPrefix   = "תשובה: "
)

type Formatter interface {
	Format(title string, turns []*entity.Prompt) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
