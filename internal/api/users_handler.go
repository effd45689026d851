package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/easykanban/easykanban/internal/access"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/user"
)

// usersHandler groups account HTTP handlers.
type usersHandler struct {
	users       *user.Service
	auth        *auth.Service
	guard       *access.Guard
	selfService bool
}

func newUsersHandler(users *user.Service, authSvc *auth.Service, guard *access.Guard, selfService bool) *usersHandler {
	return &usersHandler{users: users, auth: authSvc, guard: guard, selfService: selfService}
}

// Create handles POST /api/users/create.
func (h *usersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "create", "user", u.ID, "username", u.Username)
	writeMessage(w, http.StatusCreated, "User created successfully", "user", u)
}

// Login handles POST /api/users/login.
func (h *usersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "User authenticated successfully", "token", token)
}

// Find handles GET /api/users/{by}.
func (h *usersHandler) Find(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Find(r.Context(), chi.URLParam(r, "by"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// target resolves {by} for a mutation. With self-service enforcement on,
// the caller must be the resolved user.
func (h *usersHandler) target(ctx context.Context, r *http.Request) (string, error) {
	by := chi.URLParam(r, "by")
	if !h.selfService {
		return by, nil
	}
	if _, err := h.guard.User(ctx, auth.ClaimsFromContext(ctx), by); err != nil {
		return "", err
	}
	return by, nil
}

// UpdateEmail handles PATCH /api/users/email/{by}.
func (h *usersHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	h.update(w, r, &req, "Email was updated successfully", func(ctx context.Context, by string) (*user.User, error) {
		return h.users.UpdateEmail(ctx, by, req.Email)
	})
}

// UpdateName handles PATCH /api/users/name/{by}.
func (h *usersHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	h.update(w, r, &req, "Name was updated successfully", func(ctx context.Context, by string) (*user.User, error) {
		return h.users.UpdateName(ctx, by, req.Name)
	})
}

// UpdateUsername handles PATCH /api/users/username/{by}.
func (h *usersHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	h.update(w, r, &req, "Username was updated successfully", func(ctx context.Context, by string) (*user.User, error) {
		return h.users.UpdateUsername(ctx, by, req.Username)
	})
}

// UpdateBio handles PATCH /api/users/description/{by}.
func (h *usersHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bio string `json:"bio"`
	}
	h.update(w, r, &req, "User description was updated successfully", func(ctx context.Context, by string) (*user.User, error) {
		return h.users.UpdateBio(ctx, by, req.Bio)
	})
}

// UpdatePassword handles PATCH /api/users/password/{by}.
func (h *usersHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	h.update(w, r, &req, "Password was updated successfully", func(ctx context.Context, by string) (*user.User, error) {
		if err := h.users.UpdatePassword(ctx, by, req.OldPassword, req.NewPassword); err != nil {
			return nil, err
		}
		return h.users.Find(ctx, by)
	})
}

// Delete handles DELETE /api/users/{by}.
func (h *usersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	by, err := h.target(ctx, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.users.Find(ctx, by)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.users.Delete(ctx, by); err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "delete", "user", u.ID)
	writeMessage(w, http.StatusOK, "User was deleted successfully")
}

// update decodes req, resolves the target and applies fn.
func (h *usersHandler) update(w http.ResponseWriter, r *http.Request, req any, msg string, fn func(context.Context, string) (*user.User, error)) {
	if err := readJSON(r, req); err != nil {
		writeError(w, r, err)
		return
	}
	ctx := r.Context()
	by, err := h.target(ctx, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := fn(ctx, by)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "update", "user", u.ID)
	writeMessage(w, http.StatusOK, msg)
}
