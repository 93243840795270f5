// Package normalizer converts uploaded documents of the recognized
// formats into a single plain-text string for prompt assembly.
//
// All extractors read the whole file into memory before converting.
// That is acceptable for the small documents this service handles and
// is a known scaling limit.
package normalizer

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

type extractFunc func(path string) (string, error)

// Normalizer dispatches on the declared file extension.
type Normalizer struct {
	extractors map[string]extractFunc
}

func New() *Normalizer {
	n := &Normalizer{}
	n.extractors = map[string]extractFunc{
		".txt":  n.extractPlainText,
		".js":   n.extractPlainText,
		".ts":   n.extractPlainText,
		".py":   n.extractPlainText,
		".docx": n.extractDOCX,
		".pdf":  n.extractPDF,
		".xlsx": n.extractXLSX,
		".csv":  n.extractCSV,
	}
	return n
}

// Normalize returns the plain-text content of the file at path,
// dispatching on the declared extension. An unrecognized extension
// yields entity.ErrUnsupportedFileType; any read or parse failure is
// wrapped as entity.ErrFileProcessing so low-level causes never reach
// the client unwrapped. Normalize never deletes the source file.
func (n *Normalizer) Normalize(path, extension string) (string, error) {
	extract, ok := n.extractors[strings.ToLower(extension)]
	if !ok {
		return "", unsupportedError(extension)
	}

	text, err := extract(path)
	if err != nil {
		return "", processingError(err)
	}

	return text, nil
}

// IsSupported reports whether the extension has an extractor.
func (n *Normalizer) IsSupported(extension string) bool {
	_, ok := n.extractors[strings.ToLower(extension)]
	return ok
}

// SupportedExtensions lists the recognized extensions in stable order.
func (n *Normalizer) SupportedExtensions() []string {
	exts := make([]string, 0, len(n.extractors))
	for ext := range n.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (n *Normalizer) extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}
