package crypto

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordMismatch возвращается, если пароль не соответствует хешу
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrPasswordTooLong возвращается для паролей длиннее 72 байт
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// HashPassword хеширует пароль через bcrypt с заданной стоимостью.
// Если cost вне допустимого диапазона, используется bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), normalizeCost(cost))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword сравнивает пароль с bcrypt хешем.
// Возвращает ErrPasswordMismatch при несовпадении.
func VerifyPassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("failed to verify password: %w", err)
}

var dummyHashes sync.Map // cost -> string

// DummyHash returns a hash of a fixed password at the given cost. It is
// compared against when the account does not exist, so that unknown
// usernames and wrong passwords take the same time. Hashes are built once
// per cost.
func DummyHash(cost int) string {
	cost = normalizeCost(cost)
	if h, ok := dummyHashes.Load(cost); ok {
		return h.(string)
	}

	h, err := bcrypt.GenerateFromPassword([]byte("stockkeeper-dummy"), cost)
	if err != nil {
		panic(err)
	}

	actual, _ := dummyHashes.LoadOrStore(cost, string(h))
	return actual.(string)
}
