package board

import "time"

// Board is a named collection of cards owned by one user.
type Board struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ActiveUsers int64     `json:"active_users"`
	Owner       int64     `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateBoardInput holds the fields required to create a board.
type CreateBoardInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ActiveUsers int64  `json:"active_users"`
	Owner       int64  `json:"owner"`
}

// UpdateBoardInput holds the fields of a board update. Owner, when set, must
// match the stored owner.
type UpdateBoardInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       int64  `json:"owner"`
}
