// api/models/upload_models.go
package models

import (
	"time"

	"github.com/versehub/versehub/internal/domain"
)

// FileResponse is the public view of an uploaded file's metadata
type FileResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Category     string    `json:"category"`
	Owner        string    `json:"owner"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// NewFileResponse builds the public view of a stored file record.
func NewFileResponse(file *domain.StoredFile) FileResponse {
	return FileResponse{
		ID:           file.ID,
		OriginalName: file.OriginalName,
		ContentType:  file.ContentType,
		SizeBytes:    file.SizeBytes,
		Category:     file.Category,
		Owner:        file.Owner,
		UploadedAt:   file.UploadedAt,
	}
}
