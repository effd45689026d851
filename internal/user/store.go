package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/easykanban/easykanban/internal/dal"
)

const userColumns = `id, username, name, email, password, bio, avatar, created_at, updated_at`

// Store provides database operations for users.
type Store struct {
	db dal.Executor
}

// NewStore creates a new user store backed by the given executor.
func NewStore(db dal.Executor) *Store {
	return &Store{db: db}
}

func userFromRow(row dal.Row) *User {
	return &User{
		ID:           row.Int64("id"),
		Username:     row.String("username"),
		Name:         row.String("name"),
		Email:        row.String("email"),
		PasswordHash: row.String("password"),
		Bio:          row.String("bio"),
		Avatar:       row.String("avatar"),
		CreatedAt:    row.Time("created_at"),
		UpdatedAt:    row.Time("updated_at"),
	}
}

// Create inserts a new user with an already hashed password.
func (s *Store) Create(ctx context.Context, in CreateUserInput, passwordHash string) (*User, error) {
	row, err := s.db.FetchOne(ctx,
		`INSERT INTO users (username, name, email, password, bio, avatar)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		in.Username, in.Name, in.Email, passwordHash, in.Bio, in.Avatar,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return userFromRow(row), nil
}

// GetByID retrieves a user by primary key.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	row, err := s.db.FetchOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return userFromRow(row), nil
}

// GetByEmail retrieves a user by email address.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	row, err := s.db.FetchOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return userFromRow(row), nil
}

// GetByUsername retrieves a user by username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	row, err := s.db.FetchOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return userFromRow(row), nil
}

// Update performs a partial update on the user with the given id.
func (s *Store) Update(ctx context.Context, id int64, in UpdateUserInput) (*User, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	set := func(col string, v *string) {
		if v == nil {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, *v)
		argIdx++
	}
	set("username", in.Username)
	set("name", in.Name)
	set("email", in.Email)
	set("password", in.PasswordHash)
	set("bio", in.Bio)

	if len(setClauses) == 0 {
		return s.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $%d
		 RETURNING `+userColumns,
		strings.Join(setClauses, ", "), argIdx,
	)

	row, err := s.db.FetchOne(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return userFromRow(row), nil
}

// AssignedTaskCount counts tasks attributed to the user that another user
// owns. Those rows do not cascade when the user is deleted.
func (s *Store) AssignedTaskCount(ctx context.Context, id int64) (int64, error) {
	row, err := s.db.FetchOne(ctx,
		`SELECT COUNT(*) AS assigned FROM tasks WHERE attributed_to = $1 AND owner <> $2`, id, id)
	if err != nil {
		return 0, fmt.Errorf("counting assigned tasks: %w", err)
	}
	return row.Int64("assigned"), nil
}

// Delete removes a user by id. Owned boards, tasks and comments cascade.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.db.Execute(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
