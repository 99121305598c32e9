// api/handlers/auth_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/versehub/versehub/api/middleware"
	"github.com/versehub/versehub/api/models"
	"github.com/versehub/versehub/config"
	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/core"
	"github.com/versehub/versehub/internal/domain"
	"github.com/versehub/versehub/internal/logger"
	"github.com/versehub/versehub/internal/store"
)

var (
	customLog = logger.NewLogger()
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	Creds *store.CredentialStore
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler with dependencies.
func NewAuthHandler(creds *store.CredentialStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Creds: creds,
		Cfg:   cfg,
	}
}

// Login authenticates form credentials and issues a bearer token.
// Unknown username and wrong password take the same path out, so the two
// responses are byte-identical.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBind(&req); err != nil {
		customLog.Warnf("Login binding error: %v", err)
		_ = c.Error(err)
		return
	}

	record, found := h.Creds.Lookup(req.Username)
	if !found || !auth.CheckPasswordHash(req.Password, record.PasswordHash) {
		customLog.Warnf("Login attempt failed for username %q", req.Username)
		_ = c.Error(auth.ErrInvalidCredentials)
		return
	}

	tokenString, err := auth.IssueToken(record.Username, record.Scopes, 0, h.Cfg.AccessTokenTTL, h.Cfg.JWTSecret)
	if err != nil {
		customLog.Warnf("Failed to issue token for user %s: %v", record.Username, err)
		_ = c.Error(err)
		return
	}

	customLog.Printf("User %s logged in successfully", record.Username)
	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.Cfg.AccessTokenTTL.Seconds()),
	})
}

// Register handles new account creation. Conflicting usernames fail
// without touching the existing record.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Register binding error: %v", err)
		_ = c.Error(err)
		return
	}

	if !core.IsValidUsername(req.Username) {
		_ = c.Error(core.ErrInvalidUsername)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		customLog.Warnf("Failed to hash password during registration for %s: %v", req.Username, err)
		_ = c.Error(err)
		return
	}

	record := &domain.Credential{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hashedPassword,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.Creds.Insert(record); err != nil {
		customLog.Warnf("Failed to register user %s: %v", req.Username, err)
		_ = c.Error(err)
		return
	}

	customLog.Printf("Successfully registered user %s", req.Username)
	c.JSON(http.StatusCreated, models.NewUserResponse(record))
}

// Me returns the public view of the acting identity.
func (h *AuthHandler) Me(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(record))
}

// Refresh re-issues an access token with the same subject and scopes as
// the presented, still-valid token. There is no separate refresh-token
// type; this endpoint resolves the bearer token itself rather than
// sitting behind the auth middleware, to keep the identity path explicit.
func (h *AuthHandler) Refresh(c *gin.Context) {
	record, err := auth.ResolveIdentity(c.GetHeader("Authorization"), h.Cfg.JWTSecret, h.Creds)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokenString, err := auth.IssueToken(record.Username, record.Scopes, 0, h.Cfg.AccessTokenTTL, h.Cfg.JWTSecret)
	if err != nil {
		customLog.Warnf("Failed to refresh token for user %s: %v", record.Username, err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.Cfg.AccessTokenTTL.Seconds()),
	})
}

// Logout acknowledges the request. Tokens are stateless and cannot be
// revoked server-side; clients discard theirs.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// ChangePassword verifies the current password and stores a new hash.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	record, ok := middleware.Identity(c)
	if !ok {
		_ = c.Error(auth.ErrUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, record.PasswordHash) {
		_ = c.Error(auth.ErrInvalidCredentials)
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Creds.UpdatePassword(record.Username, newHash); err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Password changed for user %s", record.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
