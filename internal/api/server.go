package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/eleven-am/squall/internal/auth"
	"github.com/eleven-am/squall/internal/logger"
	"github.com/eleven-am/squall/internal/policy"
)

// Server maps the HTTP surface onto the policy services.
type Server struct {
	auth   *auth.Service
	todos  *policy.TodoService
	tasks  *policy.TaskService
	shares *policy.SharedTodoService
	log    logger.Logger
}

func NewServer(authService *auth.Service, todos *policy.TodoService, tasks *policy.TaskService, shares *policy.SharedTodoService) *Server {
	return &Server{
		auth:   authService,
		todos:  todos,
		tasks:  tasks,
		shares: shares,
		log:    logger.HTTP(),
	}
}

// Router assembles the chi router with CORS and the bearer-auth middleware
// on every resource route.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Post("/user/register", s.handleRegister)
	r.Post("/user/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(s.auth))

		r.Get("/user/me", s.handleMe)

		r.Route("/todo", func(r chi.Router) {
			r.Post("/", s.handleCreateTodo)
			r.Get("/", s.handleListTodos)
			r.Get("/{todoID}", s.handleGetTodo)
			r.Patch("/{todoID}", s.handlePatchTodo)
			r.Delete("/{todoID}", s.handleDeleteTodo)
			r.Post("/{todoID}/share/", s.handleShareTodo)
			r.Delete("/{todoID}/unshare/", s.handleUnshareTodo)
		})

		r.Route("/task", func(r chi.Router) {
			r.Post("/", s.handleCreateTask)
			r.Get("/", s.handleListTasks)
			r.Get("/{taskID}", s.handleGetTask)
			r.Patch("/{taskID}", s.handlePatchTask)
			r.Delete("/{taskID}", s.handleDeleteTask)
		})

		r.Route("/shared-todo", func(r chi.Router) {
			r.Get("/", s.handleListSharedTodos)
			r.Get("/{todoID}/tasks", s.handleListSharedTodoTasks)
		})
	})

	return r
}

// SplitOrigins turns a comma-separated origin list into the slice the CORS
// middleware expects.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimRight(strings.TrimSpace(part), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// pageParams reads skip/limit query parameters, defaulting to 0/100.
func pageParams(r *http.Request) (int, int) {
	skip, limit := 0, 100
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	return skip, limit
}
