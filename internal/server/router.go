// Package server wires storage, services, handlers and middleware into
// the HTTP API and runs it.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/stockkeeper/internal/server/events"
	"github.com/iudanet/stockkeeper/internal/server/handlers"
	"github.com/iudanet/stockkeeper/internal/server/middleware"
	"github.com/iudanet/stockkeeper/internal/server/service"
	"github.com/iudanet/stockkeeper/internal/server/session"
	"github.com/iudanet/stockkeeper/internal/server/storage"
	"github.com/iudanet/stockkeeper/pkg/api"
)

// Deps зависимости HTTP API
type Deps struct {
	Logger       *slog.Logger
	Accounts     storage.AccountStorage
	Items        storage.ItemStorage
	Pinger       handlers.Pinger
	Sessions     *session.Manager
	Publisher    events.Publisher
	AuthLimiter  middleware.Limiter // nil отключает лимит
	Version      string
	ClientOrigin string
	RateWindow   time.Duration
	BcryptCost   int
	TrustProxy   bool // доверять X-Forwarded-For при лимите
}

// NewRouter собирает http.Handler со всеми маршрутами API
func NewRouter(d Deps) http.Handler {
	authService := service.NewAuthService(d.Logger, d.Accounts, d.Sessions, d.BcryptCost)
	itemService := service.NewItemService(d.Logger, d.Items, d.Publisher)

	authHandler := handlers.NewAuthHandler(d.Logger, authService, d.Sessions)
	itemsHandler := handlers.NewItemsHandler(d.Logger, itemService)
	healthHandler := handlers.NewHealthHandler(d.Logger, d.Version, d.Pinger)

	requireAuth := middleware.AuthMiddleware(d.Logger, d.Sessions)
	limit := func(h http.Handler) http.Handler { return h }
	if d.AuthLimiter != nil {
		limit = middleware.RateLimitMiddleware(d.AuthLimiter, d.RateWindow, d.TrustProxy, d.Logger)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET "+api.PathHealth, healthHandler.Health)

	// Auth
	mux.Handle("POST "+api.PathRegister, limit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST "+api.PathLogin, limit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST "+api.PathLogout, authHandler.Logout)
	mux.Handle("GET "+api.PathMe, requireAuth(http.HandlerFunc(authHandler.Me)))

	// Items
	mux.Handle("GET "+api.PathItems, requireAuth(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST "+api.PathItems, requireAuth(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PATCH "+api.PathItems+"/{id}", requireAuth(http.HandlerFunc(itemsHandler.Patch)))
	mux.Handle("DELETE "+api.PathItems+"/{id}", requireAuth(http.HandlerFunc(itemsHandler.Delete)))

	var handler http.Handler = mux
	handler = middleware.CORS(d.ClientOrigin)(handler)
	handler = middleware.LoggingMiddleware(d.Logger, api.PathHealth)(handler)
	handler = middleware.RecoveryMiddleware(d.Logger)(handler)

	return handler
}
