package api

// CredentialsRequest представляет тело запросов register и login
type CredentialsRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде (только по TLS)
}

// UserResponse представляет публичные данные аккаунта
type UserResponse struct {
	ID       string `json:"id"`       // UUID аккаунта
	Username string `json:"username"` // username
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // текст HTTP статуса
	Message string `json:"message,omitempty"` // человекочитаемое сообщение
}

// HealthResponse представляет ответ GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
