package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	content := []byte("Hello world\nLine 2")
	got, err := e.ExtractBytes(content, ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Hello world\nLine 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainInvalidUTF8(t *testing.T) {
	e := NewExtractor()
	content := []byte("hello\x80world")
	got, err := e.ExtractBytes(content, ".rst")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "hello�world" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_unsupported(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("binary"), ".exe"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestIsSupported(t *testing.T) {
	for _, ext := range SupportedExtensions {
		if !IsSupported(ext) {
			t.Errorf("IsSupported(%q) = false", ext)
		}
	}
	if !IsSupported(".PDF") {
		t.Error("IsSupported should be case-insensitive")
	}
	if IsSupported(".exe") {
		t.Error("IsSupported(.exe) = true")
	}
}

func TestExtractBytes_excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Title")
	f.SetCellValue("Sheet1", "A2", "Value 1")
	f.SetCellValue("Sheet1", "B2", "Value 2")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	e := NewExtractor()
	got, err := e.ExtractBytes(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Title\nValue 1\tValue 2" {
		t.Errorf("got %q", got)
	}
}

// buildZip creates an in-memory zip with the given entries.
func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractBytes_docx(t *testing.T) {
	docXML := `<w:document><w:body>` +
		`<w:p w:rsidR="00A1"><w:r><w:t>Hello</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve">world</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildZip(t, map[string]string{"word/document.xml": docXML})

	e := NewExtractor()
	got, err := e.ExtractBytes(data, ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Hello world" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_docxContentTypesOverride(t *testing.T) {
	ct := `<Types><Override PartName="/word/document2.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`
	docXML := `<w:document><w:body><w:p><w:r><w:t>Alternate part</w:t></w:r></w:p></w:body></w:document>`
	data := buildZip(t, map[string]string{
		"[Content_Types].xml": ct,
		"word/document2.xml":  docXML,
	})

	e := NewExtractor()
	got, err := e.ExtractBytes(data, ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Alternate part" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_odt(t *testing.T) {
	contentXML := `<office:document-content>` +
		`<text:p text:style-name="P1">First paragraph</text:p>` +
		`<text:h text:outline-level="1">Heading</text:h>` +
		`</office:document-content>`
	data := buildZip(t, map[string]string{"content.xml": contentXML})

	e := NewExtractor()
	got, err := e.ExtractBytes(data, ".odt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "First paragraph Heading" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_odtNotZip(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a zip"), ".odt"); err == nil {
		t.Fatal("expected error for corrupt odt")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("three short words"), 0600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	rep, err := e.Check(path)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rep.Words != 3 {
		t.Errorf("Words = %d, want 3", rep.Words)
	}
	if rep.Chars != len("three short words") {
		t.Errorf("Chars = %d", rep.Chars)
	}
	if rep.Ext != ".txt" {
		t.Errorf("Ext = %q", rep.Ext)
	}
}

func TestCheck_unsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.bin")
	if err := os.WriteFile(path, []byte{0x00}, 0600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	if _, err := e.Check(path); err == nil {
		t.Fatal("expected error for unsupported file")
	}
}

func TestCheck_missingFile(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Check(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
