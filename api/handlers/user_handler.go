// api/handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/versehub/versehub/api/middleware"
	"github.com/versehub/versehub/api/models"
	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/store"
)

// UserHandler exposes user views on top of the credential store.
type UserHandler struct {
	Creds *store.CredentialStore
}

func NewUserHandler(creds *store.CredentialStore) *UserHandler {
	return &UserHandler{Creds: creds}
}

// Me mirrors /auth/me under the users resource.
func (h *UserHandler) Me(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(record))
}

// List returns public views of every account. Admin scope only; the
// router guards the route with RequireScope("admin").
func (h *UserHandler) List(c *gin.Context) {
	records := h.Creds.List()
	items := make([]models.UserResponse, 0, len(records))
	for _, record := range records {
		items = append(items, models.NewUserResponse(record))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
