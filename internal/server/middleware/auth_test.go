package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/stockkeeper/internal/server/handlers"
)

type verifierFunc func(token string) (string, error)

func (f verifierFunc) Verify(token string) (string, error) { return f(token) }

func TestAuthMiddleware(t *testing.T) {
	verifier := verifierFunc(func(token string) (string, error) {
		if token == "good" {
			return "user-1", nil
		}
		return "", errors.New("bad token")
	})

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantUserID string
		wantStatus int
	}{
		{name: "valid cookie", cookie: &http.Cookie{Name: "token", Value: "good"}, wantStatus: http.StatusOK, wantUserID: "user-1"},
		{name: "missing cookie", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", cookie: &http.Cookie{Name: "token", Value: "forged"}, wantStatus: http.StatusUnauthorized},
		{name: "other cookie name", cookie: &http.Cookie{Name: "session", Value: "good"}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = handlers.GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(setupTestLogger(), verifier)(next)
			req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized","message":"unauthorized"}`, w.Body.String())
			}
		})
	}
}
