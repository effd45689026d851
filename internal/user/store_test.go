package user

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/easykanban/easykanban/internal/dal"
)

var userCols = []string{"id", "username", "name", "email", "password", "bio", "avatar", "created_at", "updated_at"}

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(dal.New(sqlx.NewDb(db, "sqlmock"))), mock
}

func TestStore_Create(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectPrepare(`INSERT INTO users`).
		ExpectQuery().
		WithArgs("johndoe", "John Doe", "johndoe@example.com", "$2a$digest", "bio", "").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), "johndoe", "John Doe", "johndoe@example.com", "$2a$digest", "bio", "", now, now))

	u, err := s.Create(context.Background(), CreateUserInput{
		Username: "johndoe",
		Name:     "John Doe",
		Email:    "johndoe@example.com",
		Password: "plaintext-never-stored",
		Bio:      "bio",
	}, "$2a$digest")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if u.ID != 1 || u.PasswordHash != "$2a$digest" {
		t.Errorf("user = %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStore_GetByUsername_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectPrepare(`FROM users WHERE username = \$1`).
		ExpectQuery().
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := s.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, dal.ErrNoRows) {
		t.Fatalf("expected dal.ErrNoRows, got %v", err)
	}
}

func TestStore_Update_BuildsPartialStatement(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now().UTC()
	email := "new@example.com"
	bio := "hello"

	mock.ExpectPrepare(`UPDATE users SET email = \$1, bio = \$2, updated_at = CURRENT_TIMESTAMP WHERE id = \$3`).
		ExpectQuery().
		WithArgs(email, bio, int64(5)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(5), "jane", "Jane", email, "x", bio, "", now, now))

	u, err := s.Update(context.Background(), 5, UpdateUserInput{Email: &email, Bio: &bio})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if u.Email != email || u.Bio != bio {
		t.Errorf("user = %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStore_Update_NoFieldsReadsBack(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now().UTC()

	mock.ExpectPrepare(`FROM users WHERE id = \$1`).
		ExpectQuery().
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(5), "jane", "Jane", "jane@example.com", "x", "", "", now, now))

	if _, err := s.Update(context.Background(), 5, UpdateUserInput{}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectPrepare(`DELETE FROM users WHERE id = \$1`).
		ExpectExec().
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
}

func TestStore_AssignedTaskCount(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectPrepare(`SELECT COUNT\(\*\) AS assigned FROM tasks WHERE attributed_to = \$1 AND owner <> \$2`).
		ExpectQuery().
		WithArgs(int64(4), int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"assigned"}).AddRow(int64(2)))

	n, err := s.AssignedTaskCount(context.Background(), 4)
	if err != nil {
		t.Fatalf("AssignedTaskCount() error: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
