package models

import "time"

// Account представляет учетную запись пользователя
type Account struct {
	CreatedAt    time.Time `json:"created_at"` // время создания
	ID           string    `json:"id"`         // UUID аккаунта
	Username     string    `json:"username"`   // уникальный username
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля, наружу не отдается
}
