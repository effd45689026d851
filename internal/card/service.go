package card

import (
	"context"
	"errors"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/board"
	"github.com/easykanban/easykanban/internal/dal"
	"github.com/easykanban/easykanban/internal/validate"
)

// Repository is the persistence contract the Service depends on.
type Repository interface {
	Create(ctx context.Context, in CreateCardInput) (*Card, error)
	GetByID(ctx context.Context, id int64) (*Card, error)
	List(ctx context.Context, limit int) ([]*Card, error)
	Update(ctx context.Context, id int64, in UpdateCardInput) (*Card, error)
	Delete(ctx context.Context, id int64) error
}

// BoardFinder resolves boards by id.
type BoardFinder interface {
	GetByID(ctx context.Context, id int64) (*board.Board, error)
}

// Service provides validated business logic over a card Repository.
type Service struct {
	repo   Repository
	boards BoardFinder
}

// NewService creates a new Service.
func NewService(repo Repository, boards BoardFinder) *Service {
	return &Service{repo: repo, boards: boards}
}

// Create validates the input and creates the card on an existing board.
func (s *Service) Create(ctx context.Context, in CreateCardInput) (*Card, error) {
	if !validate.NotBlank(in.Name) {
		return nil, apperr.Validation("The card's name was not provided")
	}
	if !validate.OptionalHexColor(in.HexBgColor) {
		return nil, apperr.Validation("Invalid color format")
	}
	if !validate.CardName(in.Name) {
		return nil, apperr.Validation("Name's format is not valid")
	}
	if _, err := s.boards.GetByID(ctx, in.Board); err != nil {
		if errors.Is(err, dal.ErrNoRows) {
			return nil, apperr.NotFound("Board not found")
		}
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// Get retrieves a card by id.
func (s *Service) Get(ctx context.Context, id int64) (*Card, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, dal.ErrNoRows) {
		return nil, apperr.NotFound("Card not found")
	}
	return c, err
}

// List returns up to limit cards. An empty result is NotFound.
func (s *Service) List(ctx context.Context, limit int) ([]*Card, error) {
	cards, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, apperr.NotFound("Cards could not be found")
	}
	return cards, nil
}

// Update validates the input and rewrites the card's name and colour.
func (s *Service) Update(ctx context.Context, id int64, in UpdateCardInput) (*Card, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if !validate.NotBlank(in.Name) {
		return nil, apperr.Validation("Card's name cannot be empty")
	}
	if !validate.CardName(in.Name) {
		return nil, apperr.Validation("Card's name format is not valid")
	}
	if !validate.OptionalHexColor(in.HexBgColor) {
		return nil, apperr.Validation("Card's color format is not valid")
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a card by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
