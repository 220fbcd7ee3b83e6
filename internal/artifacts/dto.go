package artifacts

import "time"

// DocumentResponse is the wire representation of a generated document.
type DocumentResponse struct {
	ID         string    `json:"id"`
	SourceKind string    `json:"sourceKind"`
	Title      string    `json:"title"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(doc GeneratedDocument) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		SourceKind: doc.SourceKind,
		Title:      doc.Title,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		CreatedAt:  doc.CreatedAt,
	}
}
