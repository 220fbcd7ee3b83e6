package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobtrack-backend/internal/shared/storage/object"
)

// SourceKindResume marks artifacts rendered from resume content.
const SourceKindResume = "resume"

// Service stores rendered artifacts and their archive records.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Archive writes the PDF bytes to the object store and records the document.
func (s *Service) Archive(ctx context.Context, userID, title string, pdf []byte) (GeneratedDocument, error) {
	fileName := artifactFileName(title)
	key, size, mime, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(pdf))
	if err != nil {
		return GeneratedDocument{}, fmt.Errorf("store artifact: %w", err)
	}
	if mime == "" || mime == "application/octet-stream" {
		mime = "application/pdf"
	}

	doc := GeneratedDocument{
		ID:         uuid.NewString(),
		UserID:     userID,
		SourceKind: SourceKindResume,
		Title:      title,
		StorageKey: key,
		MimeType:   mime,
		SizeBytes:  size,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return GeneratedDocument{}, fmt.Errorf("record artifact: %w", err)
	}
	return doc, nil
}

// List returns the user's archived documents newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]GeneratedDocument, error) {
	return s.Repo.ListByUser(ctx, userID, limit)
}

// Open returns the document record and a reader over its stored bytes.
// The caller closes the reader.
func (s *Service) Open(ctx context.Context, userID, docID string) (GeneratedDocument, io.ReadCloser, error) {
	doc, err := s.Repo.GetByID(ctx, userID, docID)
	if err != nil {
		return GeneratedDocument{}, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return GeneratedDocument{}, nil, fmt.Errorf("open artifact %s: %w", doc.ID, err)
	}
	return doc, rc, nil
}

func artifactFileName(title string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "resume"
	}
	return base + ".pdf"
}
