package user

import (
	"context"
	"errors"
	"strconv"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/dal"
	"github.com/easykanban/easykanban/internal/validate"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Repository is the persistence contract the Service depends on. *Store
// implements it; missing rows are reported as dal.ErrNoRows.
type Repository interface {
	Create(ctx context.Context, in CreateUserInput, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id int64) error
	AssignedTaskCount(ctx context.Context, id int64) (int64, error)
}

// Service provides validated business logic over a user Repository.
type Service struct {
	repo   Repository
	hasher *auth.PasswordHasher
}

// NewService creates a new Service.
func NewService(repo Repository, hasher *auth.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Register validates the input and creates the user.
func (s *Service) Register(ctx context.Context, in CreateUserInput) (*User, error) {
	taken, err := s.exists(s.repo.GetByUsername(ctx, in.Username))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("The username is already in use")
	}

	taken, err = s.exists(s.repo.GetByEmail(ctx, in.Email))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("The email is already in use")
	}

	if !validate.Email(in.Email) {
		return nil, apperr.Validation("Email format is not valid")
	}
	if !validate.MinLength(in.Password, MinPasswordLength) {
		return nil, apperr.Validation("Password must be greater than 8 characters")
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Validation("Password could not be hashed")
	}
	return s.repo.Create(ctx, in, digest)
}

// Find resolves a user by username first and then by numeric id.
func (s *Service) Find(ctx context.Context, by string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, by)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, dal.ErrNoRows) {
		return nil, err
	}

	id, convErr := strconv.ParseInt(by, 10, 64)
	if convErr != nil {
		return nil, apperr.NotFound("User not found")
	}
	u, err = s.repo.GetByID(ctx, id)
	if errors.Is(err, dal.ErrNoRows) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateEmail changes the user's email after format and uniqueness checks.
func (s *Service) UpdateEmail(ctx context.Context, by, email string) (*User, error) {
	if !validate.Email(email) {
		return nil, apperr.Validation("Email format is not valid")
	}
	u, err := s.Find(ctx, by)
	if err != nil {
		return nil, err
	}
	taken, err := s.exists(s.repo.GetByEmail(ctx, email))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("The email is already in use")
	}
	return s.repo.Update(ctx, u.ID, UpdateUserInput{Email: &email})
}

// UpdateName changes the user's display name.
func (s *Service) UpdateName(ctx context.Context, by, name string) (*User, error) {
	if !validate.PersonName(name) {
		return nil, apperr.Validation(name + " is not a valid name")
	}
	u, err := s.Find(ctx, by)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, u.ID, UpdateUserInput{Name: &name})
}

// UpdateUsername changes the username. The new value must differ from the
// current one and must not belong to another user.
func (s *Service) UpdateUsername(ctx context.Context, by, username string) (*User, error) {
	if !validate.Username(username) {
		return nil, apperr.Validation(username + " is not a valid username")
	}
	u, err := s.Find(ctx, by)
	if err != nil {
		return nil, err
	}
	if u.Username == username {
		return nil, apperr.Validation(username + " is already in use")
	}
	taken, err := s.exists(s.repo.GetByUsername(ctx, username))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation(username + " is already in use")
	}
	return s.repo.Update(ctx, u.ID, UpdateUserInput{Username: &username})
}

// UpdateBio replaces the user's bio.
func (s *Service) UpdateBio(ctx context.Context, by, bio string) (*User, error) {
	u, err := s.Find(ctx, by)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, u.ID, UpdateUserInput{Bio: &bio})
}

// UpdatePassword replaces the password once the old one verifies.
func (s *Service) UpdatePassword(ctx context.Context, by, oldPassword, newPassword string) error {
	if !validate.MinLength(newPassword, MinPasswordLength) {
		return apperr.Validation("Password must be greater than 8 characters")
	}
	u, err := s.Find(ctx, by)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(oldPassword, u.PasswordHash) {
		return apperr.Validation("Old password don't match")
	}
	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Validation("Password could not be hashed")
	}
	_, err = s.repo.Update(ctx, u.ID, UpdateUserInput{PasswordHash: &digest})
	return err
}

// Delete removes the user resolved by username or id. A user still assigned
// to tasks owned by someone else cannot be deleted.
func (s *Service) Delete(ctx context.Context, by string) error {
	u, err := s.Find(ctx, by)
	if err != nil {
		return err
	}
	assigned, err := s.repo.AssignedTaskCount(ctx, u.ID)
	if err != nil {
		return apperr.Storage(err)
	}
	if assigned > 0 {
		return apperr.Validation("The user is assigned to tasks owned by other users")
	}
	if err := s.repo.Delete(ctx, u.ID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) exists(_ *User, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, dal.ErrNoRows) {
		return false, nil
	}
	return false, err
}
