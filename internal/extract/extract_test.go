package extract

import (
	"context"
	"strings"
	"testing"
)

func TestExtractPDF_EmptyData(t *testing.T) {
	e := NewPDFExtractor()

	_, err := e.ExtractPDF(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for empty data")
	}
	if !strings.Contains(err.Error(), "empty pdf data") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractPDF_NotAPDF(t *testing.T) {
	e := NewPDFExtractor()

	_, err := e.ExtractPDF(context.Background(), []byte("plain text masquerading as a resume"))
	if err == nil {
		t.Fatal("expected error for non-pdf data")
	}
	if !strings.Contains(err.Error(), "not a pdf file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractPDF_TruncatedPDF(t *testing.T) {
	e := NewPDFExtractor()

	_, err := e.ExtractPDF(context.Background(), []byte("%PDF-1.7\ngarbage"))
	if err == nil {
		t.Fatal("expected error for truncated pdf")
	}
}

func TestExtractPDF_CancelledContext(t *testing.T) {
	e := NewPDFExtractor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ExtractPDF(ctx, []byte("%PDF-1.7")); err == nil {
		t.Fatal("expected context error")
	}
}
