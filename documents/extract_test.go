package documents

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextDOCX(t *testing.T) {
	data := buildDOCX(t, `<w:p><w:r><w:t>Photosynthesis converts</w:t></w:r><w:r><w:t xml:space="preserve"> light</w:t></w:r></w:p><w:p><w:r><w:t>into energy.</w:t></w:r></w:p>`)

	got, err := ExtractText("notes.DOCX", data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := "Photosynthesis converts light\ninto energy."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExtractTextPlain(t *testing.T) {
	got, err := ExtractText("notes.txt", []byte("  plain words \n"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "plain words" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	if _, err := ExtractText("image.png", []byte{0x89}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractTextCorruptInputs(t *testing.T) {
	if _, err := ExtractText("broken.docx", []byte("not a zip")); err == nil {
		t.Fatalf("expected error for corrupt docx")
	}
	if _, err := ExtractText("broken.pdf", []byte("not a pdf")); err == nil {
		t.Fatalf("expected error for corrupt pdf")
	}
}
