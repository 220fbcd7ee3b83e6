package artifacts

import (
	"context"
	"errors"
	"io"
	"testing"

	"jobtrack-backend/internal/shared/storage/object/local"
)

// Minimal but valid-looking PDF header so content sniffing stays sane.
var pdfBytes = []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Repo:  NewMemoryRepo(),
		Store: local.New(t.TempDir()),
	}
}

func TestArchiveAndOpenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Archive(ctx, "guest:a", "Tailored Resume", pdfBytes)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if doc.ID == "" || doc.StorageKey == "" {
		t.Fatalf("incomplete document record: %+v", doc)
	}
	if doc.SourceKind != SourceKindResume {
		t.Fatalf("expected source kind %s, got %s", SourceKindResume, doc.SourceKind)
	}
	if doc.SizeBytes != int64(len(pdfBytes)) {
		t.Fatalf("expected size %d, got %d", len(pdfBytes), doc.SizeBytes)
	}

	got, rc, err := svc.Open(ctx, "guest:a", doc.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	if got.Title != "Tailored Resume" {
		t.Fatalf("expected title Tailored Resume, got %s", got.Title)
	}

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read stored pdf: %v", err)
	}
	if string(data) != string(pdfBytes) {
		t.Fatal("stored bytes differ from archived bytes")
	}
}

func TestOpenScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Archive(ctx, "guest:a", "Resume", pdfBytes)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	_, _, err = svc.Open(ctx, "guest:b", doc.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestListAndPurgeForUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Archive(ctx, "guest:a", "First", pdfBytes); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if _, err := svc.Archive(ctx, "guest:a", "Second", pdfBytes); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	docs, err := svc.List(ctx, "guest:a", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	if err := svc.Repo.DeleteByUser(ctx, "guest:a"); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	docs, err = svc.List(ctx, "guest:a", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents after delete, got %d", len(docs))
	}
}

func TestArchiveUntitledFallsBackToResumeName(t *testing.T) {
	if got := artifactFileName("  "); got != "resume.pdf" {
		t.Fatalf("expected resume.pdf, got %s", got)
	}
	if got := artifactFileName("Tailored Resume"); got != "Tailored Resume.pdf" {
		t.Fatalf("unexpected file name %s", got)
	}
}
