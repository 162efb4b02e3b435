package handler

import (
	"fmt"
	"net/http"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/Dan9191/task-service/internal/middleware"
	"github.com/Dan9191/task-service/internal/models"
	"github.com/Dan9191/task-service/internal/respond"
)

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.svc.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// Me returns the authenticated user with its tasks
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.fail(w, r, apperr.Unauthenticated(nil))
		return
	}

	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

// ListUsers handles listing all users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

// GetUser handles fetching a user with its tasks
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "User")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

// UpdateUser handles replacing a user's username and password
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "User")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in models.UserInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

// DeleteUser handles user deletion
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "User")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("User with id %d deleted", id),
	})
}
