package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

// UserIDKey ключ ID аутентифицированного аккаунта в контексте запроса
const UserIDKey contextKey = "user_id"

// WithUserID возвращает контекст с ID аккаунта
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID извлекает ID аккаунта, установленный auth middleware
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
