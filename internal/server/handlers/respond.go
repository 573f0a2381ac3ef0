package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/stockkeeper/internal/server/service"
	"github.com/iudanet/stockkeeper/pkg/api"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// responder содержит общие для handlers методы ответа
type responder struct {
	logger *slog.Logger
}

// decodeJSON парсит тело запроса; неизвестные поля игнорируются
func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}

// sendServiceError сопоставляет вид ошибки сервиса со статусом
func (h responder) sendServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, service.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, service.ErrNotFound):
			status = http.StatusNotFound
		}
		if status != http.StatusInternalServerError {
			h.logger.WarnContext(r.Context(), op+" rejected",
				slog.Int("status", status),
				slog.String("reason", svcErr.Message))
			h.sendError(w, svcErr.Message, status)
			return
		}
	}

	h.logger.ErrorContext(r.Context(), op+" failed", slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}
