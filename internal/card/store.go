package card

import (
	"context"
	"fmt"

	"github.com/easykanban/easykanban/internal/dal"
)

const cardColumns = `id, name, hex_bgcolor, board, created_at, updated_at`

// Store provides database operations for cards.
type Store struct {
	db dal.Executor
}

// NewStore creates a new card store backed by the given executor.
func NewStore(db dal.Executor) *Store {
	return &Store{db: db}
}

func cardFromRow(row dal.Row) *Card {
	return &Card{
		ID:         row.Int64("id"),
		Name:       row.String("name"),
		HexBgColor: row.String("hex_bgcolor"),
		Board:      row.Int64("board"),
		CreatedAt:  row.Time("created_at"),
		UpdatedAt:  row.Time("updated_at"),
	}
}

// Create inserts a card and returns the stored row.
func (s *Store) Create(ctx context.Context, in CreateCardInput) (*Card, error) {
	row, err := s.db.FetchOne(ctx,
		`INSERT INTO cards (name, hex_bgcolor, board) VALUES ($1, $2, $3)
		 RETURNING `+cardColumns,
		in.Name, in.HexBgColor, in.Board,
	)
	if err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}
	return cardFromRow(row), nil
}

// GetByID retrieves a card by primary key.
func (s *Store) GetByID(ctx context.Context, id int64) (*Card, error) {
	row, err := s.db.FetchOne(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting card: %w", err)
	}
	return cardFromRow(row), nil
}

// List returns cards ordered by id. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY id`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.FetchMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	cards := make([]*Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, cardFromRow(row))
	}
	return cards, nil
}

// Update replaces the card's name and colour.
func (s *Store) Update(ctx context.Context, id int64, in UpdateCardInput) (*Card, error) {
	row, err := s.db.FetchOne(ctx,
		`UPDATE cards SET name = $1, hex_bgcolor = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3
		 RETURNING `+cardColumns,
		in.Name, in.HexBgColor, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating card: %w", err)
	}
	return cardFromRow(row), nil
}

// Delete removes a card. Its tasks cascade.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.db.Execute(ctx, `DELETE FROM cards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}
