package comment

import (
	"context"
	"errors"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/dal"
	"github.com/easykanban/easykanban/internal/task"
	"github.com/easykanban/easykanban/internal/user"
	"github.com/easykanban/easykanban/internal/validate"
)

// Repository is the persistence contract the Service depends on.
type Repository interface {
	Create(ctx context.Context, in CreateCommentInput) (*Comment, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
	List(ctx context.Context, limit int) ([]*Comment, error)
	Update(ctx context.Context, id int64, in UpdateCommentInput) (*Comment, error)
	Delete(ctx context.Context, id int64) error
}

// UserFinder resolves users by id.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// TaskFinder resolves tasks by id.
type TaskFinder interface {
	GetByID(ctx context.Context, id int64) (*task.Task, error)
}

// Service provides validated business logic over a comment Repository.
// Bodies are HTML-escaped before they are checked and stored.
type Service struct {
	repo  Repository
	users UserFinder
	tasks TaskFinder
}

// NewService creates a new Service.
func NewService(repo Repository, users UserFinder, tasks TaskFinder) *Service {
	return &Service{repo: repo, users: users, tasks: tasks}
}

// Create sanitizes and validates the body and creates the comment.
func (s *Service) Create(ctx context.Context, in CreateCommentInput) (*Comment, error) {
	in.Body = validate.SanitizeText(in.Body)
	if !validate.NotBlank(in.Body) {
		return nil, apperr.Validation("The comment cannot be empty")
	}
	if _, err := s.users.GetByID(ctx, in.Owner); err != nil {
		return nil, notFoundAs(err, "Owner cannot be found")
	}
	if _, err := s.tasks.GetByID(ctx, in.Task); err != nil {
		return nil, notFoundAs(err, "Task cannot be found")
	}
	return s.repo.Create(ctx, in)
}

// Get retrieves a comment by id.
func (s *Service) Get(ctx context.Context, id int64) (*Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Comment could not be found")
	}
	return c, nil
}

// List returns up to limit comments. An empty result is NotFound.
func (s *Service) List(ctx context.Context, limit int) ([]*Comment, error) {
	comments, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, apperr.NotFound("Comments could not be found")
	}
	return comments, nil
}

// Update sanitizes and validates the new body and stores it.
func (s *Service) Update(ctx context.Context, id int64, in UpdateCommentInput) (*Comment, error) {
	in.Body = validate.SanitizeText(in.Body)
	if !validate.NotBlank(in.Body) {
		return nil, apperr.Validation("The comment cannot be empty")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a comment by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func notFoundAs(err error, msg string) error {
	if errors.Is(err, dal.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}
