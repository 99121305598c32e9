// api/middleware/error_handler.go
package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/core"
	"github.com/versehub/versehub/internal/store"
)

// ErrorHandler creates a Gin middleware for centralized error handling.
// Handlers attach errors with c.Error; this middleware owns the mapping
// from error kind to status code and response message, so no handler
// writes failure responses directly.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Process request using subsequent handlers
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Only the last error drives the response.
		err := c.Errors.Last().Err

		customLog.Printf("[ErrorHandler] Detected error: %v | Type: %T", err, err)

		var statusCode int
		var userMessage string

		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			// One message for unknown user and wrong password; anything more
			// specific would enable username enumeration.
			statusCode = http.StatusUnauthorized
			userMessage = auth.ErrInvalidCredentials.Error()
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrUnauthorized):
			statusCode = http.StatusUnauthorized
			userMessage = "Invalid or expired authentication token."
		case errors.Is(err, auth.ErrForbidden):
			statusCode = http.StatusForbidden
			userMessage = "You do not have permission to perform this action."
		case errors.Is(err, core.ErrInvalidUsername), errors.Is(err, core.ErrExtensionNotAllowed):
			statusCode = http.StatusBadRequest
			userMessage = err.Error()
		case errors.Is(err, http.ErrMissingFile):
			statusCode = http.StatusBadRequest
			userMessage = "A file field is required."
		case errors.Is(err, core.ErrFileTooLarge):
			statusCode = http.StatusRequestEntityTooLarge
			userMessage = err.Error()
		case errors.Is(err, store.ErrUsernameTaken):
			statusCode = http.StatusBadRequest
			userMessage = err.Error()
		case errors.Is(err, store.ErrUserNotFound),
			errors.Is(err, store.ErrCourseNotFound),
			errors.Is(err, store.ErrFileNotFound):
			statusCode = http.StatusNotFound
			userMessage = err.Error()
		default:
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				// Binding failures surface field-level detail before any
				// business logic runs.
				statusCode = http.StatusBadRequest
				userMessage = "Validation failed. Please check your input."
				details := make([]gin.H, 0, len(validationErrs))
				for _, fe := range validationErrs {
					details = append(details, gin.H{"field": fe.Field(), "rule": fe.Tag()})
				}
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(statusCode, gin.H{"error": userMessage, "details": details})
				}
				return
			}

			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) {
				// Malformed request body never reaches business logic.
				statusCode = http.StatusBadRequest
				userMessage = "Malformed request body."
				break
			}

			statusCode = http.StatusInternalServerError
			userMessage = "An unexpected internal server error occurred."
			customLog.Printf("Unhandled error type: %T, Error: %v", err, err)
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{"error": userMessage})
		} else {
			customLog.Printf("[ErrorHandler] Warning: Response already written before handling error.")
		}
	}
}
