package comment

import "time"

// Comment is a note left on a task by a user.
type Comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	Owner     int64     `json:"owner"`
	Task      int64     `json:"task"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentInput holds the fields required to create a comment.
type CreateCommentInput struct {
	Body  string `json:"body"`
	Owner int64  `json:"owner"`
	Task  int64  `json:"task"`
}

// UpdateCommentInput holds the replacement body.
type UpdateCommentInput struct {
	Body string `json:"body"`
}
