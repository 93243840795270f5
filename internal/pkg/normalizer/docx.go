package normalizer

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// extractDOCX extracts the raw text of a word-processor document,
// paragraph by paragraph, discarding all formatting.
func (n *Normalizer) extractDOCX(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i, para := range doc.Paragraphs() {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
	}

	return sb.String(), nil
}
