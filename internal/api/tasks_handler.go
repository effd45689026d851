package api

import (
	"net/http"

	"github.com/easykanban/easykanban/internal/access"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/task"
)

// tasksHandler groups task HTTP handlers.
type tasksHandler struct {
	tasks *task.Service
	guard *access.Guard
}

func newTasksHandler(tasks *task.Service, guard *access.Guard) *tasksHandler {
	return &tasksHandler{tasks: tasks, guard: guard}
}

// List handles GET /api/tasks.
func (h *tasksHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *tasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Create handles POST /api/tasks/create. The body owner must be the caller.
func (h *tasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.guard.Owns(auth.ClaimsFromContext(r.Context()), req.Owner); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.tasks.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "create", "task", t.ID, "card", t.Card)
	writeMessage(w, http.StatusCreated, "Task was created successfully", "task", t)
}

// Update handles PUT /api/tasks/{id}.
func (h *tasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req task.UpdateTaskInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Task(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.tasks.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "update", "task", t.ID)
	writeMessage(w, http.StatusCreated, "Task was updated successfully", "task", t)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *tasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Task(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.tasks.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "delete", "task", id)
	writeMessage(w, http.StatusCreated, "Task was deleted successfully")
}
