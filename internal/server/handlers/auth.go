package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/stockkeeper/internal/models"
	"github.com/iudanet/stockkeeper/pkg/api"
)

// AuthService описывает операции с аккаунтами
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.Account, string, error)
	Login(ctx context.Context, username, password string) (*models.Account, string, error)
	Me(ctx context.Context, userID string) (*models.Account, error)
}

// SessionCookies записывает и удаляет cookie сессии
type SessionCookies interface {
	SetCookie(w http.ResponseWriter, token string)
	ClearCookie(w http.ResponseWriter)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	auth    AuthService
	cookies SessionCookies
	responder
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, auth AuthService, cookies SessionCookies) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		auth:      auth,
		cookies:   cookies,
	}
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.CredentialsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	account, token, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.sendServiceError(w, r, err, "register")
		return
	}

	h.cookies.SetCookie(w, token)
	h.sendJSON(w, userResponse(account), http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.CredentialsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	account, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.sendServiceError(w, r, err, "login")
		return
	}

	h.cookies.SetCookie(w, token)
	h.sendJSON(w, userResponse(account), http.StatusOK)
}

// Logout обрабатывает POST /api/auth/logout.
// Серверного состояния нет: достаточно удалить cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me обрабатывает GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())

	account, err := h.auth.Me(r.Context(), userID)
	if err != nil {
		h.sendServiceError(w, r, err, "me")
		return
	}

	h.sendJSON(w, userResponse(account), http.StatusOK)
}

func userResponse(account *models.Account) api.UserResponse {
	return api.UserResponse{ID: account.ID, Username: account.Username}
}
