// internal/core/validation.go
package core

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidUsername rejects usernames outside the allowed format.
var ErrInvalidUsername = errors.New("username may only contain letters, numbers and underscores")

// Upload validation errors
var (
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
)

// Regular expression for valid usernames (alphanumeric + underscore)
var usernameValidationRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// AllowedUploadExtensions lists file extensions accepted by the upload
// endpoint (lowercase, no leading dot).
var AllowedUploadExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"pdf":  true,
	"txt":  true,
	"docx": true,
	"xlsx": true,
}

// IsValidUsername checks if a string is a valid account username.
// Applies basic format and length checks.
func IsValidUsername(name string) bool {
	return usernameValidationRegex.MatchString(name) && len(name) >= 3 && len(name) <= 64
}

// NormalizeExtension returns the lowercase extension of a filename without
// the leading dot, and whether the upload endpoint accepts it.
func NormalizeExtension(filename string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "", false
	}
	return ext, AllowedUploadExtensions[ext]
}
