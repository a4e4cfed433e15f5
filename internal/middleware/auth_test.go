package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func authRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", RequireAuth(secret), func(c *gin.Context) { c.String(200, "ok") })
	return r
}

func TestRequireAuth(t *testing.T) {
	const secret = "test-secret"
	valid, err := IssueToken(secret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	expired, err := IssueToken(secret, -time.Minute)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	otherKey, err := IssueToken("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	cases := []struct {
		name   string
		header string
		expect int
	}{
		{name: "valid token", header: "Bearer " + valid, expect: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, expect: http.StatusOK},
		{name: "missing header", header: "", expect: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, expect: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.token", expect: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, expect: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + otherKey, expect: http.StatusUnauthorized},
	}

	r := authRouter(secret)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.expect {
				t.Fatalf("code=%d, want %d (body=%s)", w.Code, tc.expect, w.Body.String())
			}
		})
	}
}

func TestVerifyToken_RejectsUnsignedAlg(t *testing.T) {
	// alg=none token with a well-formed payload
	const none = "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJhZG1pbiJ9."
	if err := VerifyToken("secret", none); err == nil {
		t.Fatal("alg=none must be rejected")
	}
}
