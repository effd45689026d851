package task

import (
	"context"
	"errors"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/card"
	"github.com/easykanban/easykanban/internal/dal"
	"github.com/easykanban/easykanban/internal/user"
	"github.com/easykanban/easykanban/internal/validate"
)

// Repository is the persistence contract the Service depends on.
type Repository interface {
	Create(ctx context.Context, in CreateTaskInput) (*Task, error)
	GetByID(ctx context.Context, id int64) (*Task, error)
	List(ctx context.Context, limit int) ([]*Task, error)
	Update(ctx context.Context, id int64, in UpdateTaskInput) (*Task, error)
	Delete(ctx context.Context, id int64) error
}

// UserFinder resolves users by id.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// CardFinder resolves cards by id.
type CardFinder interface {
	GetByID(ctx context.Context, id int64) (*card.Card, error)
}

// Service provides validated business logic over a task Repository.
type Service struct {
	repo  Repository
	users UserFinder
	cards CardFinder
}

// NewService creates a new Service.
func NewService(repo Repository, users UserFinder, cards CardFinder) *Service {
	return &Service{repo: repo, users: users, cards: cards}
}

// Create validates the input and creates the task. Owner, assignee and card
// must all exist.
func (s *Service) Create(ctx context.Context, in CreateTaskInput) (*Task, error) {
	if !validate.NotBlank(in.Title) {
		return nil, apperr.Validation("The task's title was not provided")
	}
	if !validate.OptionalHexColor(in.HexBgColor) {
		return nil, apperr.Validation("Invalid color format")
	}
	if err := notFoundAs(s.userByID(ctx, in.Owner), "Owner not found"); err != nil {
		return nil, err
	}
	if err := notFoundAs(s.userByID(ctx, in.AttributedTo), "User not found"); err != nil {
		return nil, err
	}
	if _, err := s.cards.GetByID(ctx, in.Card); err != nil {
		return nil, notFoundAs(err, "Card not found")
	}
	return s.repo.Create(ctx, in)
}

// Get retrieves a task by id.
func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Task not found")
	}
	return t, nil
}

// List returns up to limit tasks. An empty result is NotFound.
func (s *Service) List(ctx context.Context, limit int) ([]*Task, error) {
	tasks, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperr.NotFound("Tasks could not be found")
	}
	return tasks, nil
}

// Update validates the input and rewrites the task. The new assignee must
// exist.
func (s *Service) Update(ctx context.Context, id int64, in UpdateTaskInput) (*Task, error) {
	if !validate.NotBlank(in.Title) {
		return nil, apperr.Validation("The task's title was not provided")
	}
	if !validate.NotBlank(in.Body) {
		return nil, apperr.Validation("The task's body was not provided")
	}
	if !validate.OptionalHexColor(in.HexBgColor) {
		return nil, apperr.Validation("Invalid color format")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := notFoundAs(s.userByID(ctx, in.AttributedTo), "Attributed user not found"); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a task by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) userByID(ctx context.Context, id int64) error {
	_, err := s.users.GetByID(ctx, id)
	return err
}

// notFoundAs maps dal.ErrNoRows to a NotFound error carrying msg.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, dal.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}
