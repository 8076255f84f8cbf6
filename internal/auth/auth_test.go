package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-with-enough-entropy-0123456789"

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService(testSecret)
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(Claims{UserID: userID, Email: "analyst@example.com", Role: "analyst"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "analyst@example.com", claims.Email)
	assert.Equal(t, "analyst", claims.Role)
	assert.Equal(t, TokenAccess, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	service := NewJWTService(testSecret)
	claims := Claims{UserID: uuid.New(), Role: "analyst"}

	access, _, err := service.GenerateToken(claims)
	require.NoError(t, err)
	refresh, expiresAt, err := service.GenerateRefreshToken(claims)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	_, err = service.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = service.ValidateToken(refresh)
	assert.Error(t, err)

	got, err := service.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenRefresh, got.TokenType)
}

func TestJWTService_Rejects(t *testing.T) {
	service := NewJWTService(testSecret)
	token, _, err := service.GenerateToken(Claims{UserID: uuid.New()})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTService("another-secret").ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTService(testSecret)
		later.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
		_, err := later.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.New(), TokenType: TokenAccess})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = service.ValidateToken(raw)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestPassword(t *testing.T) {
	hash, err := hashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct horse", hash))
	assert.False(t, CheckPassword("wrong horse", hash))
	assert.False(t, CheckPassword("correct horse", "not-a-hash"))
}

func TestNewCSRFToken(t *testing.T) {
	a, err := NewCSRFToken()
	require.NoError(t, err)
	b, err := NewCSRFToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func newProtectedRouter(service *JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTMiddleware(service), CSRFMiddleware())
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(UserIDKey).(uuid.UUID).String()})
	}
	router.GET("/me", handler)
	router.POST("/analyze", handler)
	return router
}

func TestJWTMiddleware(t *testing.T) {
	service := NewJWTService(testSecret)
	router := newProtectedRouter(service)
	userID := uuid.New()
	token, _, err := service.GenerateToken(Claims{UserID: userID, Role: "analyst"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		method         string
		setup          func(r *http.Request)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "no credentials",
			method:         "GET",
			setup:          func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authentication required",
		},
		{
			name:           "non-bearer header",
			method:         "GET",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Bearer token required",
		},
		{
			name:           "invalid bearer",
			method:         "GET",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "valid bearer",
			method:         "GET",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bearer POST skips CSRF",
			method:         "POST",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "cookie GET",
			method:         "GET",
			setup:          func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AuthCookie, Value: token}) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "cookie POST without CSRF",
			method:         "POST",
			setup:          func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AuthCookie, Value: token}) },
			expectedStatus: http.StatusForbidden,
			expectedError:  "CSRF token required in cookie",
		},
		{
			name:   "cookie POST with mismatched CSRF",
			method: "POST",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
				r.AddCookie(&http.Cookie{Name: CSRFCookie, Value: "abc"})
				r.Header.Set(CSRFHeader, "xyz")
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "CSRF token mismatch",
		},
		{
			name:   "cookie POST with CSRF",
			method: "POST",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
				r.AddCookie(&http.Cookie{Name: CSRFCookie, Value: "abc"})
				r.Header.Set(CSRFHeader, "abc")
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/me"
			if tt.method == "POST" {
				path = "/analyze"
			}
			req := httptest.NewRequest(tt.method, path, nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			} else {
				assert.Contains(t, w.Body.String(), userID.String())
			}
		})
	}
}
