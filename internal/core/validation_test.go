// internal/core/validation_test.go
package core

import (
	"strings"
	"testing"
)

func TestIsValidUsername(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    bool
		comment string
	}{
		{"valid simple", "new_user", true, ""},
		{"valid with numbers", "user_123", true, ""},
		{"valid uppercase", "NEW_USER", true, ""},
		{"valid underscore start", "_user", true, ""},
		{"valid long (64 chars)", strings.Repeat("a", 64), true, ""},
		{"invalid empty", "", false, "empty string"},
		{"invalid too short", "ab", false, "below 3 chars"},
		{"invalid space", "new user", false, "contains space"},
		{"invalid hyphen", "new-user", false, "contains hyphen"},
		{"invalid email shape", "user@host", false, "contains at sign"},
		{"invalid path separator", "user/name", false, "contains path separator"},
		{"invalid too long", strings.Repeat("a", 65), false, "exceeds 64 chars"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsValidUsername(tc.input)
			if got != tc.want {
				t.Errorf("IsValidUsername(%q) = %v; want %v. %s", tc.input, got, tc.want, tc.comment)
			}
		})
	}
}

func TestNormalizeExtension(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantExt string
		wantOk  bool
	}{
		{"allowed lower", "photo.jpg", "jpg", true},
		{"allowed upper", "PHOTO.JPG", "jpg", true},
		{"allowed mixed", "notes.Txt", "txt", true},
		{"allowed pdf", "report.pdf", "pdf", true},
		{"disallowed executable", "malware.exe", "exe", false},
		{"disallowed script", "run.sh", "sh", false},
		{"no extension", "README", "", false},
		{"trailing dot", "file.", "", false},
		{"double extension uses last", "archive.tar.gz", "gz", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ext, ok := NormalizeExtension(tc.input)
			if ext != tc.wantExt || ok != tc.wantOk {
				t.Errorf("NormalizeExtension(%q) = (%q, %v); want (%q, %v)", tc.input, ext, ok, tc.wantExt, tc.wantOk)
			}
		})
	}
}
