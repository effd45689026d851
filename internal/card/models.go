package card

import "time"

// Card is a column of tasks on a board. It has no owner of its own; the
// board's owner owns it.
type Card struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	HexBgColor string    `json:"hex_bgcolor"`
	Board      int64     `json:"board"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCardInput holds the fields required to create a card.
type CreateCardInput struct {
	Name       string `json:"name"`
	HexBgColor string `json:"hex_bgcolor"`
	Board      int64  `json:"board"`
}

// UpdateCardInput holds the fields of a card update. The board is fixed.
type UpdateCardInput struct {
	Name       string `json:"name"`
	HexBgColor string `json:"hex_bgcolor"`
}
