// api/middleware/error_handler_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/core"
	"github.com/versehub/versehub/internal/store"
)

func TestErrorHandlerMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", auth.ErrForbidden, http.StatusForbidden},
		{"username taken", store.ErrUsernameTaken, http.StatusBadRequest},
		{"invalid username", core.ErrInvalidUsername, http.StatusBadRequest},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"course not found", store.ErrCourseNotFound, http.StatusNotFound},
		{"file not found", store.ErrFileNotFound, http.StatusNotFound},
		{"file too large", core.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"extension not allowed", core.ErrExtensionNotAllowed, http.StatusBadRequest},
		{"unexpected error", unmappedError{}, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/boom", func(c *gin.Context) {
				_ = c.Error(tc.err)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

// unmappedError is an error type the handler has no mapping for.
type unmappedError struct{}

func (unmappedError) Error() string { return "something unexpected" }

func TestErrorHandlerAuthFailuresShareOneMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/a", func(c *gin.Context) { _ = c.Error(auth.ErrInvalidToken) })
	router.GET("/b", func(c *gin.Context) { _ = c.Error(auth.ErrUnauthorized) })

	wa := httptest.NewRecorder()
	router.ServeHTTP(wa, httptest.NewRequest(http.MethodGet, "/a", nil))
	wb := httptest.NewRecorder()
	router.ServeHTTP(wb, httptest.NewRequest(http.MethodGet, "/b", nil))

	assert.Equal(t, wa.Body.String(), wb.Body.String())
}
