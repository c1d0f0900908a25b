package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// odtContentPath is the path to the main content inside an .odt zip (OpenDocument Text).
const odtContentPath = "content.xml"

// odtTextRes match OpenDocument text elements with optional attributes. Separate
// patterns keep opening and closing tags paired (e.g. <text:p>...</text:p> only).
var odtTextRes = []*regexp.Regexp{
	regexp.MustCompile(`<text:p[^>]*>([^<]*)</text:p>`),
	regexp.MustCompile(`<text:span[^>]*>([^<]*)</text:span>`),
	regexp.MustCompile(`<text:h[^>]*>([^<]*)</text:h>`),
}

// extractODT extracts text from .odt bytes. ODT is a ZIP containing content.xml
// (OpenDocument). Text is collected from text:p, text:span, and text:h elements.
func extractODT(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract ODT: not a zip: %w", err)
	}
	contentXML, err := readZipEntry(zr, odtContentPath)
	if err != nil {
		return "", fmt.Errorf("extract ODT: %w", err)
	}
	if contentXML == nil {
		return "", fmt.Errorf("extract ODT: %s not found", odtContentPath)
	}
	s := string(contentXML)
	var b strings.Builder
	for _, re := range odtTextRes {
		joinMatches(&b, re, s)
	}
	return strings.TrimSpace(b.String()), nil
}
