package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/internal/server/service"
	"github.com/iudanet/stockkeeper/pkg/api"
)

func TestAuthHandler_Register(t *testing.T) {
	account := &models.Account{ID: "user-1", Username: "alice"}

	tests := []struct {
		svcErr      error
		name        string
		body        string
		wantMessage string
		wantStatus  int
		wantCookie  bool
	}{
		{
			name:       "successful registration",
			body:       `{"username":"alice","password":"secret1"}`,
			wantStatus: http.StatusCreated,
			wantCookie: true,
		},
		{
			name:        "invalid JSON",
			body:        `{invalid json}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid request body",
		},
		{
			name:        "validation error",
			body:        `{"username":"alice","password":"1"}`,
			svcErr:      svcErr(service.ErrValidation, "password too short (minimum 6 characters)"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "password too short (minimum 6 characters)",
		},
		{
			name:        "username taken",
			body:        `{"username":"alice","password":"secret1"}`,
			svcErr:      svcErr(service.ErrConflict, "username already exists"),
			wantStatus:  http.StatusConflict,
			wantMessage: "username already exists",
		},
		{
			name:        "storage failure",
			body:        `{"username":"alice","password":"secret1"}`,
			svcErr:      errors.New("disk full"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{account: account, token: "tok", err: tt.svcErr}
			cookies := &mockCookies{}
			handler := NewAuthHandler(setupTestLogger(), svc, cookies)

			req := httptest.NewRequest(http.MethodPost, api.PathRegister, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.wantCookie {
				assert.Equal(t, "tok", cookies.set)
				var resp api.UserResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, api.UserResponse{ID: "user-1", Username: "alice"}, resp)
				return
			}

			assert.Empty(t, cookies.set)
			var errResp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
			assert.Equal(t, http.StatusText(tt.wantStatus), errResp.Error)
			assert.Equal(t, tt.wantMessage, errResp.Message)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	account := &models.Account{ID: "user-1", Username: "alice"}

	t.Run("success sets cookie", func(t *testing.T) {
		svc := &mockAuthService{account: account, token: "tok"}
		cookies := &mockCookies{}
		handler := NewAuthHandler(setupTestLogger(), svc, cookies)

		req := httptest.NewRequest(http.MethodPost, api.PathLogin, strings.NewReader(`{"username":"alice","password":"secret1","extra":true}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok", cookies.set)
		assert.Equal(t, "alice", svc.lastUser)
		assert.Equal(t, "secret1", svc.lastPass)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &mockAuthService{err: svcErr(service.ErrUnauthorized, "invalid credentials")}
		cookies := &mockCookies{}
		handler := NewAuthHandler(setupTestLogger(), svc, cookies)

		req := httptest.NewRequest(http.MethodPost, api.PathLogin, strings.NewReader(`{"username":"alice","password":"nope"}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, cookies.set)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := &mockAuthService{err: svcErr(service.ErrValidation, "missing fields")}
		handler := NewAuthHandler(setupTestLogger(), svc, &mockCookies{})

		req := httptest.NewRequest(http.MethodPost, api.PathLogin, strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	cookies := &mockCookies{}
	handler := NewAuthHandler(setupTestLogger(), &mockAuthService{}, cookies)

	req := httptest.NewRequest(http.MethodPost, api.PathLogout, nil)
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, cookies.cleared)
	assert.Empty(t, w.Body.String())
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		svc := &mockAuthService{account: &models.Account{ID: "user-1", Username: "alice"}}
		handler := NewAuthHandler(setupTestLogger(), svc, &mockCookies{})

		req := httptest.NewRequest(http.MethodGet, api.PathMe, nil)
		req = req.WithContext(WithUserID(req.Context(), "user-1"))
		w := httptest.NewRecorder()
		handler.Me(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", svc.lastUser)
		assert.JSONEq(t, `{"id":"user-1","username":"alice"}`, w.Body.String())
	})

	t.Run("account gone", func(t *testing.T) {
		svc := &mockAuthService{err: svcErr(service.ErrUnauthorized, "unauthorized")}
		handler := NewAuthHandler(setupTestLogger(), svc, &mockCookies{})

		req := httptest.NewRequest(http.MethodGet, api.PathMe, nil)
		req = req.WithContext(WithUserID(req.Context(), "deleted"))
		w := httptest.NewRecorder()
		handler.Me(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
