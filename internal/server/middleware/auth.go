package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/stockkeeper/internal/server/handlers"
	"github.com/iudanet/stockkeeper/internal/server/session"
)

// TokenVerifier проверяет токен сессии и возвращает ID аккаунта
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware создает middleware для проверки cookie сессии.
// При отсутствии или невалидности токена отвечает 401 до вызова handler.
func AuthMiddleware(logger *slog.Logger, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.FromRequest(r)
			if token == "" {
				logger.DebugContext(r.Context(), "missing session cookie", slog.String("path", r.URL.Path))
				writeError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid session token",
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				writeError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := handlers.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
