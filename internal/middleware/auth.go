package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid or expired token")

// IssueToken signs a short-lived HS256 bearer token after a successful login.
func IssueToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a bearer token issued by IssueToken.
func VerifyToken(secret, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return errInvalidToken
	}
	return nil
}

// RequireAuth is a Gin middleware that guards the admin endpoints. Requests
// must carry "Authorization: Bearer <token>" with a valid token.
//
// Usage:
//
//	admin := router.Group("/api/admin", middleware.RequireAuth(cfg.Auth.JWTSecret))
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			AbortWithError(c, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}
		if err := VerifyToken(secret, token); err != nil {
			AbortWithError(c, http.StatusUnauthorized, "Invalid token", err)
			return
		}
		c.Next()
	}
}
