package util

import "testing"

func TestSanitizeFileNameRejectsTraversal(t *testing.T) {
	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatal("expected error for traversal pattern")
	}
}

func TestSanitizeFileNameReplacesSeparators(t *testing.T) {
	got, err := SanitizeFileName("reports/q3 results.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "reports_q3_results.pdf" {
		t.Fatalf("expected reports_q3_results.pdf, got %q", got)
	}
}

func TestSanitizeFileNameRejectsEmpty(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := SanitizeFileName(name); err == nil {
			t.Fatalf("expected error for %q", name)
		}
	}
}

func TestSanitizeFileNameKeepsExtensionWhenTruncating(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "segment-"
	}
	long += "proof.pdf"
	got, err := SanitizeFileName(long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != maxFileNameLen {
		t.Fatalf("expected %d chars, got %d", maxFileNameLen, len(got))
	}
	if got[len(got)-4:] != ".pdf" {
		t.Fatalf("expected .pdf suffix, got %q", got[len(got)-4:])
	}
}
