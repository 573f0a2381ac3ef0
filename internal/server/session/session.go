// Package session issues and verifies the signed session token
// and carries it in the "token" cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/stockkeeper/pkg/api"
)

// Issuer значение claim iss
const Issuer = "stockkeeper"

// ErrInvalidToken возвращается для отсутствующего, поддельного или истекшего токена
var ErrInvalidToken = errors.New("invalid session token")

// Claims представляет JWT claims сессии. Полезная нагрузка только ID аккаунта.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию сессий
type Config struct {
	Secret     []byte
	TTL        time.Duration
	Production bool // Secure + SameSite=None вместо SameSite=Lax
}

// Manager выпускает и проверяет токены сессии
type Manager struct {
	now func() time.Time
	cfg Config
}

// NewManager создает Manager
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

// Issue создает подписанный HS256 токен для аккаунта
func (m *Manager) Issue(userID string) (string, error) {
	now := m.now()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify валидирует токен и возвращает ID аккаунта
func (m *Manager) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// SetCookie записывает токен в HTTP-only cookie
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(token, int(m.cfg.TTL.Seconds())))
}

// ClearCookie удаляет cookie сессии
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -1))
}

// FromRequest извлекает токен из cookie запроса
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(api.SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     api.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if m.cfg.Production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
