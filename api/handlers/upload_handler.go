// api/handlers/upload_handler.go
package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/versehub/versehub/api/middleware"
	"github.com/versehub/versehub/api/models"
	"github.com/versehub/versehub/config"
	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/core"
	"github.com/versehub/versehub/internal/domain"
	"github.com/versehub/versehub/internal/events"
	"github.com/versehub/versehub/internal/store"
)

// multipartOverhead is the slack allowed beyond the file size limit for
// multipart framing and the category field.
const multipartOverhead = 16 << 10

// UploadHandler holds dependencies for file upload handlers. File bytes
// land on disk under Cfg.UploadDir; metadata lives in the FileStore.
type UploadHandler struct {
	Files  *store.FileStore
	Cfg    *config.Config
	Events *events.Broker
}

func NewUploadHandler(files *store.FileStore, cfg *config.Config, broker *events.Broker) *UploadHandler {
	return &UploadHandler{
		Files:  files,
		Cfg:    cfg,
		Events: broker,
	}
}

// Upload accepts one multipart file, enforcing the configured size limit
// and extension allow-list. Stored filenames are random so an uploaded
// name can never traverse outside the upload directory.
func (h *UploadHandler) Upload(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	// Cap the request body before the multipart form is buffered, so an
	// oversized upload is cut off mid-stream instead of landing in memory
	// or a temp file first.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Cfg.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			_ = c.Error(core.ErrFileTooLarge)
			return
		}
		customLog.Warnf("Upload form error: %v", err)
		_ = c.Error(err)
		return
	}

	if fileHeader.Size > h.Cfg.MaxUploadBytes {
		_ = c.Error(core.ErrFileTooLarge)
		return
	}
	ext, allowed := core.NormalizeExtension(fileHeader.Filename)
	if !allowed {
		_ = c.Error(core.ErrExtensionNotAllowed)
		return
	}

	storedName := uuid.New().String() + "." + ext
	destPath := filepath.Join(h.Cfg.UploadDir, storedName)
	if err := c.SaveUploadedFile(fileHeader, destPath); err != nil {
		customLog.Warnf("Failed to save upload %q: %v", fileHeader.Filename, err)
		_ = c.Error(err)
		return
	}

	stored := &domain.StoredFile{
		ID:           uuid.New().String(),
		OriginalName: fileHeader.Filename,
		StoredName:   storedName,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		Category:     c.PostForm("category"),
		Owner:        record.Username,
		UploadedAt:   time.Now().UTC(),
	}
	if stored.Category == "" {
		stored.Category = "general"
	}
	h.Files.Add(stored)

	h.Events.Publish("file.uploaded", map[string]any{
		"file_id": stored.ID,
		"name":    stored.OriginalName,
		"owner":   stored.Owner,
	})

	customLog.Printf("User %s uploaded %q (%d bytes)", record.Username, stored.OriginalName, stored.SizeBytes)
	c.JSON(http.StatusCreated, models.NewFileResponse(stored))
}

// List returns the acting identity's uploads.
func (h *UploadHandler) List(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	files := h.Files.ListByOwner(record.Username)
	items := make([]models.FileResponse, 0, len(files))
	for _, f := range files {
		items = append(items, models.NewFileResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// Download streams a stored file back with its original name. Owners and
// admins only.
func (h *UploadHandler) Download(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	file, err := h.Files.Get(c.Param("file_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if file.Owner != record.Username && !record.HasScope("admin") {
		_ = c.Error(auth.ErrForbidden)
		return
	}

	c.FileAttachment(filepath.Join(h.Cfg.UploadDir, file.StoredName), file.OriginalName)
}

// Delete removes a stored file and its metadata. Owners and admins only.
func (h *UploadHandler) Delete(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	file, err := h.Files.Get(c.Param("file_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if file.Owner != record.Username && !record.HasScope("admin") {
		_ = c.Error(auth.ErrForbidden)
		return
	}

	if err := os.Remove(filepath.Join(h.Cfg.UploadDir, file.StoredName)); err != nil && !os.IsNotExist(err) {
		customLog.Warnf("Failed to remove file %s from disk: %v", file.StoredName, err)
		_ = c.Error(err)
		return
	}
	if err := h.Files.Remove(file.ID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
