package board

import (
	"context"
	"fmt"

	"github.com/easykanban/easykanban/internal/dal"
)

const boardColumns = `id, name, description, active_users, owner, created_at, updated_at`

// Store provides database operations for boards.
type Store struct {
	db dal.Executor
}

// NewStore creates a new board store backed by the given executor.
func NewStore(db dal.Executor) *Store {
	return &Store{db: db}
}

func boardFromRow(row dal.Row) *Board {
	return &Board{
		ID:          row.Int64("id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		ActiveUsers: row.Int64("active_users"),
		Owner:       row.Int64("owner"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}

// Create inserts a board and returns the stored row.
func (s *Store) Create(ctx context.Context, in CreateBoardInput) (*Board, error) {
	row, err := s.db.FetchOne(ctx,
		`INSERT INTO boards (name, description, active_users, owner)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+boardColumns,
		in.Name, in.Description, in.ActiveUsers, in.Owner,
	)
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}
	return boardFromRow(row), nil
}

// GetByID retrieves a board by primary key.
func (s *Store) GetByID(ctx context.Context, id int64) (*Board, error) {
	row, err := s.db.FetchOne(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting board: %w", err)
	}
	return boardFromRow(row), nil
}

// List returns boards ordered by id. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Board, error) {
	var rows []dal.Row
	var err error
	if limit > 0 {
		rows, err = s.db.FetchMany(ctx, `SELECT `+boardColumns+` FROM boards ORDER BY id LIMIT $1`, limit)
	} else {
		rows, err = s.db.FetchMany(ctx, `SELECT `+boardColumns+` FROM boards ORDER BY id`)
	}
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}

	boards := make([]*Board, 0, len(rows))
	for _, row := range rows {
		boards = append(boards, boardFromRow(row))
	}
	return boards, nil
}

// Update replaces the board's name and description. The owner is never
// rewritten.
func (s *Store) Update(ctx context.Context, id int64, in UpdateBoardInput) (*Board, error) {
	row, err := s.db.FetchOne(ctx,
		`UPDATE boards SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3
		 RETURNING `+boardColumns,
		in.Name, in.Description, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating board: %w", err)
	}
	return boardFromRow(row), nil
}

// Delete removes a board. Its cards cascade.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.db.Execute(ctx, `DELETE FROM boards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return nil
}
