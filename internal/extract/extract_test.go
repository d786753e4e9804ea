package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"resume-wizard-backend/resume/model"
	"resume-wizard-backend/resume/render"
)

func renderedDocx(t *testing.T) []byte {
	t.Helper()
	data, err := render.Resume(model.CandidateProfile{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Summary: "Analytical engine programmer.",
		Experience: []model.ExperienceEntry{
			{Company: "Analytical Engines Ltd", Role: "Engineer", Bullets: []string{"Wrote the first program."}},
		},
	})
	if err != nil {
		t.Fatalf("render docx: %v", err)
	}
	return data
}

func TestTextFromBytesDocx(t *testing.T) {
	data := renderedDocx(t)

	text, err := TextFromBytes(context.Background(), data, mimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	for _, needle := range []string{
		"Ada Lovelace",
		"ada@example.com",
		"Analytical engine programmer.",
		"Wrote the first program.",
	} {
		if !strings.Contains(text, needle) {
			t.Fatalf("expected extracted text to contain %q, got:\n%s", needle, text)
		}
	}
	// Paragraphs become separate lines.
	if !strings.Contains(text, "\n") {
		t.Fatalf("expected newlines between paragraphs")
	}
}

func TestTextFromBytesNormalizesZipMime(t *testing.T) {
	data := renderedDocx(t)

	if _, err := TextFromBytes(context.Background(), data, "application/zip", "resume.docx"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if _, err := TextFromBytes(context.Background(), data, "application/octet-stream", "upload.bin"); err != nil {
		t.Fatalf("expected docx to extract from octet-stream mime, got error: %v", err)
	}
}

func TestTextFromBytesPlainZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = TextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for plain zip, got %v", err)
	}
}

func TestTextFromBytesCorruptDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("<w:document><w:p>truncated")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	text, err := TextFromBytes(context.Background(), buf.Bytes(), mimeDOCX, "resume.docx")
	if err == nil {
		t.Fatalf("expected error for corrupt document.xml, got text %q", text)
	}
	if text != "" {
		t.Fatalf("expected no text for corrupt document.xml, got %q", text)
	}
}

func TestTextFromBytesUnsupportedType(t *testing.T) {
	_, err := TextFromBytes(context.Background(), []byte("hello"), "text/plain", "notes.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestNormalizeMimeTypeUsesExtensionFallback(t *testing.T) {
	if got := normalizeMimeType("", "resume.pdf", nil); got != mimePDF {
		t.Fatalf("expected pdf from extension, got %q", got)
	}
	if got := normalizeMimeType("application/pdf; charset=binary", "x", nil); got != mimePDF {
		t.Fatalf("expected mime parameters stripped, got %q", got)
	}
	if got := normalizeMimeType("", "resume.DOCX", nil); got != mimeDOCX {
		t.Fatalf("expected docx from extension, got %q", got)
	}
}
