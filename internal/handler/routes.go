package handler

import (
	"net/http"

	"github.com/Dan9191/task-service/internal/middleware"
	"github.com/Dan9191/task-service/internal/respond"
	"github.com/gorilla/mux"
)

// Routes builds the API router. Public routes are registered on the root router,
// protected ones on a subrouter guarded by the bearer token check.
func (h *Handler) Routes(tokens middleware.TokenVerifier, corsOrigin string) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.Use(middleware.Logging(h.log))
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/users/register", h.Register).Methods("POST")
	api.HandleFunc("/users/login", h.Login).Methods("POST")
	api.HandleFunc("/tasks/public", h.ListTasks).Methods("GET")
	api.HandleFunc("/health", h.Health).Methods("GET")
	api.HandleFunc("/health/full", h.HealthFull).Methods("GET")

	// Protected routes
	authRouter := api.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(tokens, h.log))
	authRouter.HandleFunc("/users/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/users", h.ListUsers).Methods("GET")
	authRouter.HandleFunc("/users/{id:[0-9]+}", h.GetUser).Methods("GET")
	authRouter.HandleFunc("/users/{id:[0-9]+}", h.UpdateUser).Methods("PUT")
	authRouter.HandleFunc("/users/{id:[0-9]+}", h.DeleteUser).Methods("DELETE")
	authRouter.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	authRouter.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.GetTask).Methods("GET")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.UpdateTask).Methods("PUT")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.DeleteTask).Methods("DELETE")

	return middleware.CORS(corsOrigin)(r)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}
