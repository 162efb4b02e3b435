package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/Dan9191/task-service/internal/health"
	"github.com/Dan9191/task-service/internal/respond"
	"github.com/Dan9191/task-service/internal/service"
	"github.com/Dan9191/task-service/internal/validation"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	svc    *service.Service
	health *health.Checker
	log    *logrus.Logger
}

func NewHandler(svc *service.Service, checker *health.Checker, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, health: checker, log: log}
}

// decode reads a JSON object body into dst
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return validation.MalformedBody()
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return validation.MalformedBody()
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return validation.MalformedBody()
	}
	return nil
}

// pathID parses the {id} route variable
func pathID(r *http.Request, kind string) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.NotFound("%s with id %s not found", kind, raw)
	}
	return id, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	respond.Error(w, h.log.WithField("path", r.URL.Path), err)
}
