package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthRejectsMalformedHeaders(t *testing.T) {
	// None of these reach the service; the header fails before resolution.
	mw := Auth(nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc123"},
		{"bearer with no token", "Bearer "},
		{"bare token", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/track/analytics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"could not validate credentials"}`, rec.Body.String())
		})
	}
}

func TestUserFromContextMissing(t *testing.T) {
	user, ok := UserFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, user)
}
