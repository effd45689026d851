package board

import (
	"context"
	"errors"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/dal"
	"github.com/easykanban/easykanban/internal/user"
	"github.com/easykanban/easykanban/internal/validate"
)

// Repository is the persistence contract the Service depends on.
type Repository interface {
	Create(ctx context.Context, in CreateBoardInput) (*Board, error)
	GetByID(ctx context.Context, id int64) (*Board, error)
	List(ctx context.Context, limit int) ([]*Board, error)
	Update(ctx context.Context, id int64, in UpdateBoardInput) (*Board, error)
	Delete(ctx context.Context, id int64) error
}

// UserFinder resolves users by id.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// Service provides validated business logic over a board Repository.
type Service struct {
	repo  Repository
	users UserFinder
}

// NewService creates a new Service.
func NewService(repo Repository, users UserFinder) *Service {
	return &Service{repo: repo, users: users}
}

// Create validates the input and creates the board.
func (s *Service) Create(ctx context.Context, in CreateBoardInput) (*Board, error) {
	if !validate.NotBlank(in.Name) {
		return nil, apperr.Validation("The board's name was not provided")
	}
	if err := s.ownerExists(ctx, in.Owner, "Owner not found"); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// Get retrieves a board by id.
func (s *Service) Get(ctx context.Context, id int64) (*Board, error) {
	b, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, dal.ErrNoRows) {
		return nil, apperr.NotFound("Board not found")
	}
	return b, err
}

// List returns up to limit boards. A non-positive limit returns all.
func (s *Service) List(ctx context.Context, limit int) ([]*Board, error) {
	return s.repo.List(ctx, limit)
}

// Update validates the input and replaces the board's name and description.
// The stored owner must still exist and cannot be reassigned.
func (s *Service) Update(ctx context.Context, id int64, in UpdateBoardInput) (*Board, error) {
	if !validate.NotBlank(in.Name) {
		return nil, apperr.Validation("The board's name cannot be empty")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Owner != 0 && in.Owner != existing.Owner {
		return nil, apperr.Validation("The board's owner cannot be changed")
	}
	if err := s.ownerExists(ctx, existing.Owner, "Board's owner not found"); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a board by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ownerExists(ctx context.Context, id int64, msg string) error {
	_, err := s.users.GetByID(ctx, id)
	if errors.Is(err, dal.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}
