package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/easykanban/easykanban/internal/access"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/board"
	"github.com/easykanban/easykanban/internal/card"
	"github.com/easykanban/easykanban/internal/comment"
	"github.com/easykanban/easykanban/internal/metrics"
	"github.com/easykanban/easykanban/internal/task"
	"github.com/easykanban/easykanban/internal/user"
)

// Pinger checks database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps holds all dependencies for the API router.
type RouterDeps struct {
	Users    *user.Service
	Boards   *board.Service
	Cards    *card.Service
	Tasks    *task.Service
	Comments *comment.Service
	Auth     *auth.Service
	Guard    *access.Guard
	Metrics  *metrics.Metrics
	DB       Pinger

	AllowedOrigins []string

	// EnforceSelfService applies the user ownership check to user mutations.
	EnforceSelfService bool
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	var obs HTTPObserver
	if deps.Metrics != nil {
		obs = deps.Metrics
	}

	r.Use(chimw.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(requestLogger(obs))
	r.Use(secureHeaders)
	r.Use(corsMiddleware(deps.AllowedOrigins))

	r.Get("/health", healthHandler(deps.DB))
	if deps.Metrics != nil {
		r.Handle("/metrics", promHandler(deps.Metrics))
		r.Get("/metrics/summary", deps.Metrics.Handler())
	}

	users := newUsersHandler(deps.Users, deps.Auth, deps.Guard, deps.EnforceSelfService)
	boards := newBoardsHandler(deps.Boards, deps.Guard)
	cards := newCardsHandler(deps.Cards, deps.Guard)
	tasks := newTasksHandler(deps.Tasks, deps.Guard)
	comments := newCommentsHandler(deps.Comments, deps.Guard)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/", welcome)

		ar.Post("/users/create", users.Create)
		ar.Post("/users/login", users.Login)

		ar.Group(func(pr chi.Router) {
			pr.Use(auth.Middleware(deps.Auth))

			pr.Get("/users/{by}", users.Find)
			pr.Patch("/users/email/{by}", users.UpdateEmail)
			pr.Patch("/users/name/{by}", users.UpdateName)
			pr.Patch("/users/username/{by}", users.UpdateUsername)
			pr.Patch("/users/description/{by}", users.UpdateBio)
			pr.Patch("/users/password/{by}", users.UpdatePassword)
			pr.Delete("/users/{by}", users.Delete)

			pr.Get("/boards", boards.List)
			pr.Get("/boards/{id}", boards.Get)
			pr.Post("/boards/create", boards.Create)
			pr.Put("/boards/{id}", boards.Update)
			pr.Delete("/boards/{id}", boards.Delete)

			pr.Get("/cards", cards.List)
			pr.Get("/cards/{id}", cards.Get)
			pr.Post("/cards/create", cards.Create)
			pr.Put("/cards/{id}", cards.Update)
			pr.Delete("/cards/{id}", cards.Delete)

			pr.Get("/tasks", tasks.List)
			pr.Get("/tasks/{id}", tasks.Get)
			pr.Post("/tasks/create", tasks.Create)
			pr.Put("/tasks/{id}", tasks.Update)
			pr.Delete("/tasks/{id}", tasks.Delete)

			pr.Get("/comments", comments.List)
			pr.Get("/comments/{id}", comments.Get)
			pr.Post("/comments/create", comments.Create)
			pr.Patch("/comments/{id}", comments.Update)
			pr.Delete("/comments/{id}", comments.Delete)
		})
	})

	return r
}

func welcome(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Easy Kanban API")
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		if err := db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "disconnected"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "connected"})
	}
}
