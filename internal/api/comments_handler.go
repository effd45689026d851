package api

import (
	"net/http"

	"github.com/easykanban/easykanban/internal/access"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/comment"
)

type commentsHandler struct {
	comments *comment.Service
	guard    *access.Guard
}

func newCommentsHandler(comments *comment.Service, guard *access.Guard) *commentsHandler {
	return &commentsHandler{comments: comments, guard: guard}
}

// List handles GET /api/comments.
func (h *commentsHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Get handles GET /api/comments/{id}.
func (h *commentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.comments.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/comments/create.
func (h *commentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req comment.CreateCommentInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.guard.Owns(auth.ClaimsFromContext(r.Context()), req.Owner); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.comments.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "create", "comment", c.ID, "task", c.Task)
	writeMessage(w, http.StatusCreated, "Comment was created successfully", "comment", c)
}

// Update handles PATCH /api/comments/{id}.
func (h *commentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req comment.UpdateCommentInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Comment(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.comments.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "update", "comment", c.ID)
	writeMessage(w, http.StatusCreated, "Comment was updated successfully", "comment", c)
}

// Delete handles DELETE /api/comments/{id}.
func (h *commentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Comment(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.comments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "delete", "comment", id)
	writeMessage(w, http.StatusCreated, "Comment was deleted successfully")
}
