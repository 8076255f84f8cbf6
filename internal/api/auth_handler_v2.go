package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/forensic-omniscient/internal/auth"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
)

// AuthHandlerV2 handles analyst accounts
type AuthHandlerV2 struct {
	authService  services.AuthService
	secureCookie bool
}

// NewAuthHandlerV2 creates a new auth handler with service injection
func NewAuthHandlerV2(authService services.AuthService, secureCookie bool) *AuthHandlerV2 {
	return &AuthHandlerV2{authService: authService, secureCookie: secureCookie}
}

// Login authenticates a user, sets the session cookies and returns the
// token pair for Bearer clients
func (h *AuthHandlerV2) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.setSessionCookies(c, response); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, response)
}

// Register creates a new analyst account
func (h *AuthHandlerV2) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, user)
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandlerV2) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.setSessionCookies(c, response); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, response)
}

// Logout clears the session cookies
func (h *AuthHandlerV2) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.AuthCookie, "", -1, "/", "", h.secureCookie, true)
	c.SetCookie(auth.CSRFCookie, "", -1, "/", "", h.secureCookie, false)
	respondOK(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandlerV2) setSessionCookies(c *gin.Context, response *models.AuthResponse) error {
	csrf, err := auth.NewCSRFToken()
	if err != nil {
		return err
	}
	maxAge := int(time.Until(response.ExpiresAt).Seconds())

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.AuthCookie, response.Token, maxAge, "/", "", h.secureCookie, true)
	// Readable by scripts so they can echo it in the X-CSRF-Token header.
	c.SetCookie(auth.CSRFCookie, csrf, maxAge, "/", "", h.secureCookie, false)
	return nil
}
