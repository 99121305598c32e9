// internal/domain/models.go
package domain

import "time"

// Credential defines the stored representation of an account that can authenticate.
type Credential struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // never serialized; see PublicView
	Scopes       []string
	IsActive     bool
	CreatedAt    time.Time
}

// HasScope reports whether the credential carries the named scope.
func (c *Credential) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Course is a tutorial course record held in process memory.
type Course struct {
	ID          string
	Title       string
	Description string
	Category    string
	Level       string
	Instructor  string // username of the creator
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StoredFile records an uploaded file's metadata. The bytes live on disk
// under the configured upload directory; metadata lives only in memory.
type StoredFile struct {
	ID           string
	OriginalName string
	StoredName   string
	ContentType  string
	SizeBytes    int64
	Category     string
	Owner        string // username of the uploader
	UploadedAt   time.Time
}
