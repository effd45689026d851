package api

import (
	"net/http"

	"github.com/easykanban/easykanban/internal/access"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/board"
)

// boardsHandler groups board HTTP handlers.
type boardsHandler struct {
	boards *board.Service
	guard  *access.Guard
}

func newBoardsHandler(boards *board.Service, guard *access.Guard) *boardsHandler {
	return &boardsHandler{boards: boards, guard: guard}
}

// List handles GET /api/boards.
func (h *boardsHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.List(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

// Get handles GET /api/boards/{id}.
func (h *boardsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.boards.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Create handles POST /api/boards/create. The body owner must be the caller.
func (h *boardsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req board.CreateBoardInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.guard.Owns(auth.ClaimsFromContext(r.Context()), req.Owner); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := h.boards.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "create", "board", b.ID, "name", b.Name)
	writeMessage(w, http.StatusCreated, "Board was created successfully", "board", b)
}

// Update handles PUT /api/boards/{id}.
func (h *boardsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req board.UpdateBoardInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Board(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := h.boards.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "update", "board", b.ID)
	writeMessage(w, http.StatusCreated, "Board was updated successfully", "board", b)
}

// Delete handles DELETE /api/boards/{id}.
func (h *boardsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Board(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.boards.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "delete", "board", id)
	writeMessage(w, http.StatusCreated, "Board was deleted successfully")
}
