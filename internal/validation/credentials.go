package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinPasswordLen минимальная длина пароля в символах
	MinPasswordLen = 6

	// MaxPasswordBytes предел bcrypt: более длинный пароль не хешируется
	MaxPasswordBytes = 72
)

var (
	// ErrMissingFields возвращается, если username или password не заданы
	ErrMissingFields = errors.New("missing fields")

	// ErrPasswordTooShort возвращается, если пароль короче MinPasswordLen
	ErrPasswordTooShort = fmt.Errorf("password too short (minimum %d characters)", MinPasswordLen)

	// ErrPasswordTooLong возвращается, если пароль длиннее MaxPasswordBytes
	ErrPasswordTooLong = fmt.Errorf("password too long (maximum %d bytes)", MaxPasswordBytes)
)

// NormalizeUsername обрезает пробелы вокруг username
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// ValidateCredentials проверяет, что оба поля заданы.
// username ожидается уже нормализованным.
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingFields
	}
	return nil
}

// ValidateNewCredentials проверяет данные для регистрации:
// оба поля заданы, в пароле не меньше MinPasswordLen символов
// и не больше MaxPasswordBytes байт
func ValidateNewCredentials(username, password string) error {
	if err := ValidateCredentials(username, password); err != nil {
		return err
	}

	if utf8.RuneCountInString(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	return nil
}
