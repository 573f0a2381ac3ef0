package api

import "net/url"

// Пути REST API
const (
	PathRegister = "/api/auth/register"
	PathLogin    = "/api/auth/login"
	PathLogout   = "/api/auth/logout"
	PathMe       = "/api/auth/me"
	PathItems    = "/api/items"
	PathHealth   = "/health"
)

// SessionCookieName имя cookie с токеном сессии
const SessionCookieName = "token"

// ItemPath returns the path of a single item.
func ItemPath(id string) string {
	return PathItems + "/" + url.PathEscape(id)
}
