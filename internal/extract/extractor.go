// Package extract verifies documents are readable before they are sent to the
// RAG backend, extracting their plain text locally.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the document formats the preflight check accepts.
var SupportedExtensions = []string{".txt", ".md", ".rst", ".pdf", ".docx", ".odt", ".xlsx"}

// IsSupported reports whether ext (with leading dot, any case) is a supported format.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content.
// For plain text files (.txt, .md, .rst), content is returned as-is (UTF-8 validated).
// For PDF, DOCX, ODT, and XLSX, text is extracted from the binary format.
// Returns an error if the file cannot be read or the format is unsupported.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".odt":
		return extractODT(content)
	case ".xlsx":
		return extractExcel(content)
	case ".txt", ".md", ".rst", "":
		return extractPlain(content)
	default:
		return "", fmt.Errorf("unsupported file type %q", ext)
	}
}

// Report summarizes a preflight check of a single file.
type Report struct {
	Path  string
	Ext   string
	Words int
	Chars int
}

// Check extracts text from the file at path and reports its size. A file that
// fails extraction, or whose extension is unsupported, fails the check.
func (e *Extractor) Check(path string) (Report, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupported(ext) {
		return Report{}, fmt.Errorf("unsupported file type %q", ext)
	}
	text, err := e.Extract(path)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Path:  path,
		Ext:   ext,
		Words: len(strings.Fields(text)),
		Chars: len(text),
	}, nil
}
