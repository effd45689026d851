package comment

import (
	"context"
	"fmt"

	"github.com/easykanban/easykanban/internal/dal"
)

const commentColumns = `id, body, owner, task, created_at, updated_at`

// Store provides database operations for comments.
type Store struct {
	db dal.Executor
}

// NewStore creates a new comment store backed by the given executor.
func NewStore(db dal.Executor) *Store {
	return &Store{db: db}
}

func commentFromRow(row dal.Row) *Comment {
	return &Comment{
		ID:        row.Int64("id"),
		Body:      row.String("body"),
		Owner:     row.Int64("owner"),
		Task:      row.Int64("task"),
		CreatedAt: row.Time("created_at"),
		UpdatedAt: row.Time("updated_at"),
	}
}

// Create inserts a comment and returns the stored row.
func (s *Store) Create(ctx context.Context, in CreateCommentInput) (*Comment, error) {
	row, err := s.db.FetchOne(ctx,
		`INSERT INTO comments (body, owner, task) VALUES ($1, $2, $3)
		 RETURNING `+commentColumns,
		in.Body, in.Owner, in.Task,
	)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return commentFromRow(row), nil
}

// GetByID retrieves a comment by primary key.
func (s *Store) GetByID(ctx context.Context, id int64) (*Comment, error) {
	row, err := s.db.FetchOne(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	return commentFromRow(row), nil
}

// List returns comments ordered by id. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY id`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.FetchMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	comments := make([]*Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, commentFromRow(row))
	}
	return comments, nil
}

// Update replaces the comment body.
func (s *Store) Update(ctx context.Context, id int64, in UpdateCommentInput) (*Comment, error) {
	row, err := s.db.FetchOne(ctx,
		`UPDATE comments SET body = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
		 RETURNING `+commentColumns,
		in.Body, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return commentFromRow(row), nil
}

// Delete removes a comment.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.db.Execute(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
