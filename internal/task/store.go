package task

import (
	"context"
	"fmt"

	"github.com/easykanban/easykanban/internal/dal"
)

const taskColumns = `id, title, body, hex_bgcolor, owner, attributed_to, card, created_at, updated_at`

// Store provides database operations for tasks.
type Store struct {
	db dal.Executor
}

// NewStore creates a new task store backed by the given executor.
func NewStore(db dal.Executor) *Store {
	return &Store{db: db}
}

func taskFromRow(row dal.Row) *Task {
	return &Task{
		ID:           row.Int64("id"),
		Title:        row.String("title"),
		Body:         row.String("body"),
		HexBgColor:   row.String("hex_bgcolor"),
		Owner:        row.Int64("owner"),
		AttributedTo: row.Int64("attributed_to"),
		Card:         row.Int64("card"),
		CreatedAt:    row.Time("created_at"),
		UpdatedAt:    row.Time("updated_at"),
	}
}

// Create inserts a task and returns the stored row.
func (s *Store) Create(ctx context.Context, in CreateTaskInput) (*Task, error) {
	row, err := s.db.FetchOne(ctx,
		`INSERT INTO tasks (title, body, hex_bgcolor, owner, attributed_to, card)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+taskColumns,
		in.Title, in.Body, in.HexBgColor, in.Owner, in.AttributedTo, in.Card,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return taskFromRow(row), nil
}

// GetByID retrieves a task by primary key.
func (s *Store) GetByID(ctx context.Context, id int64) (*Task, error) {
	row, err := s.db.FetchOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return taskFromRow(row), nil
}

// List returns tasks ordered by id. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.FetchMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	tasks := make([]*Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, taskFromRow(row))
	}
	return tasks, nil
}

// Update rewrites the task's title, body, colour and assignee. Owner and card
// are fixed at creation.
func (s *Store) Update(ctx context.Context, id int64, in UpdateTaskInput) (*Task, error) {
	row, err := s.db.FetchOne(ctx,
		`UPDATE tasks SET title = $1, body = $2, hex_bgcolor = $3, attributed_to = $4,
		 updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING `+taskColumns,
		in.Title, in.Body, in.HexBgColor, in.AttributedTo, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return taskFromRow(row), nil
}

// Delete removes a task. Its comments cascade.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.db.Execute(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}
