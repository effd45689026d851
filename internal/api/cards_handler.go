package api

import (
	"net/http"

	"github.com/easykanban/easykanban/internal/access"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/card"
)

// cardsHandler groups card HTTP handlers. Card ownership is the owning
// board's.
type cardsHandler struct {
	cards *card.Service
	guard *access.Guard
}

func newCardsHandler(cards *card.Service, guard *access.Guard) *cardsHandler {
	return &cardsHandler{cards: cards, guard: guard}
}

// List handles GET /api/cards.
func (h *cardsHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context(), queryLimit(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// Get handles GET /api/cards/{id}.
func (h *cardsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.cards.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/cards/create. The caller must own the board.
func (h *cardsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req card.CreateCardInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.BoardForNewCard(r.Context(), auth.ClaimsFromContext(r.Context()), req.Board); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.cards.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "create", "card", c.ID, "board", c.Board)
	writeMessage(w, http.StatusCreated, "Card was created successfully", "card", c)
}

// Update handles PUT /api/cards/{id}.
func (h *cardsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req card.UpdateCardInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Card(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.cards.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "update", "card", c.ID)
	writeMessage(w, http.StatusCreated, "Card was updated successfully", "card", c)
}

// Delete handles DELETE /api/cards/{id}.
func (h *cardsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.guard.Card(r.Context(), auth.ClaimsFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.cards.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	auditLog(r, "delete", "card", id)
	writeMessage(w, http.StatusCreated, "Card was deleted successfully")
}
