package handler

import (
	"net/http"

	"github.com/Dan9191/task-service/internal/models"
	"github.com/Dan9191/task-service/internal/respond"
)

// ListTasks serves both the authenticated and the public listing; the result
// does not depend on the caller.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, tasks)
}

// GetTask handles fetching a single task
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Task")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

// CreateTask handles task creation
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.svc.CreateTask(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, task)
}

// UpdateTask handles partial task updates
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Task")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in models.TaskInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.svc.UpdateTask(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Task")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
