package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	claims *TokenClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*TokenClaims, error) {
	return v.claims, v.err
}

func protectedRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := stubValidator{claims: &TokenClaims{UserID: "user-1", Email: "a@example.com"}}

	tests := []struct {
		name       string
		validator  TokenValidator
		authHeader string
		wantStatus int
	}{
		{"missing header", valid, "", http.StatusUnauthorized},
		{"not a bearer token", valid, "Basic abc123", http.StatusUnauthorized},
		{"rejected token", stubValidator{err: errors.New("expired")}, "Bearer bad", http.StatusUnauthorized},
		{"accepted token", valid, "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			protectedRouter(tt.validator).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_SetsIdentity(t *testing.T) {
	validator := stubValidator{claims: &TokenClaims{UserID: "user-42", Email: "u@example.com"}}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")

	rec := httptest.NewRecorder()
	protectedRouter(validator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-42")
}
