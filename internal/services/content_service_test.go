package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writeContentFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestContentServiceLoadsDocuments(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, "faq.json", `{"faqs":[{"question":"Does it hurt?","answer":"A little."}]}`)
	writeContentFile(t, dir, "designs.json", `{"designs":[{"name":"Serpent","category":"flash"}]}`)
	writeContentFile(t, dir, "booking.json", `{
		"procedure":["Pick a date","Fill the form"],
		"tattooTypes":[{"value":"custom","label":"Custom"}],
		"bodyParts":["arm","leg"]
	}`)

	svc := NewContentService(dir)

	faqs, err := svc.FAQs()
	if err != nil {
		t.Fatalf("FAQs: %v", err)
	}
	if len(faqs) != 1 || faqs[0].Question != "Does it hurt?" {
		t.Errorf("unexpected faqs: %+v", faqs)
	}

	designs, err := svc.SeedDesigns()
	if err != nil {
		t.Fatalf("SeedDesigns: %v", err)
	}
	if len(designs) != 1 || designs[0].Name != "Serpent" {
		t.Errorf("unexpected designs: %+v", designs)
	}

	content, err := svc.BookingPageContent()
	if err != nil {
		t.Fatalf("BookingPageContent: %v", err)
	}
	if len(content.Procedure) != 2 || len(content.TattooTypes) != 1 {
		t.Errorf("unexpected booking content: %+v", content)
	}
	// absent optional array comes back empty, not nil
	if content.AdditionalInfo == nil {
		t.Error("additionalInfo should default to an empty slice")
	}
}

func TestContentServiceErrors(t *testing.T) {
	dir := t.TempDir()
	svc := NewContentService(dir)

	if _, err := svc.FAQs(); err == nil {
		t.Error("missing file should surface an error")
	}

	writeContentFile(t, dir, "faq.json", `{not json`)
	if _, err := svc.FAQs(); err == nil {
		t.Error("malformed JSON should surface an error")
	}
}
