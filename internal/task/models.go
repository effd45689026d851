package task

import "time"

// Task is a unit of work on a card. Owner is its creator; AttributedTo is
// the user it is assigned to.
type Task struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	HexBgColor   string    `json:"hex_bgcolor"`
	Owner        int64     `json:"owner"`
	AttributedTo int64     `json:"attributed_to"`
	Card         int64     `json:"card"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateTaskInput holds the fields required to create a task.
type CreateTaskInput struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	HexBgColor   string `json:"hex_bgcolor"`
	Owner        int64  `json:"owner"`
	AttributedTo int64  `json:"attributed_to"`
	Card         int64  `json:"card"`
}

// UpdateTaskInput holds the fields of a task update.
type UpdateTaskInput struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	HexBgColor   string `json:"hex_bgcolor"`
	AttributedTo int64  `json:"attributed_to"`
}
