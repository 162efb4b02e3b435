package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/sirupsen/logrus"
)

// JSON writes v with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the status matching err. Storage failures are
// logged with their cause and answered with a generic message.
func Error(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	}
	JSON(w, status, map[string]string{"error": apperr.Message(err)})
}

// Status maps an error category to an HTTP status
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnauthenticated), errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
