package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/board"
	"github.com/easykanban/easykanban/internal/card"
	"github.com/easykanban/easykanban/internal/dal/daltest"
	"github.com/easykanban/easykanban/internal/task"
	"github.com/easykanban/easykanban/internal/user"
)

func newTestService(t *testing.T) (*Service, *user.User, *task.Task) {
	t.Helper()
	ctx := context.Background()
	db := daltest.Open(t)
	users := user.NewStore(db)

	u, err := users.Create(ctx, user.CreateUserInput{Username: "lucas_pereira", Name: "Lucas Pereira", Email: "lucas.pereira@example.com"}, "digest")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	b, err := board.NewStore(db).Create(ctx, board.CreateBoardInput{Name: "Ops", Owner: u.ID})
	if err != nil {
		t.Fatalf("creating board: %v", err)
	}
	c, err := card.NewStore(db).Create(ctx, card.CreateCardInput{Name: "Doing", Board: b.ID})
	if err != nil {
		t.Fatalf("creating card: %v", err)
	}
	tasks := task.NewStore(db)
	tk, err := tasks.Create(ctx, task.CreateTaskInput{Title: "Rotate keys", Owner: u.ID, AttributedTo: u.ID, Card: c.ID})
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	return NewService(NewStore(db), users, tasks), u, tk
}

func wantAppErr(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want kind %v", err, kind)
	}
	if e, _ := apperr.As(err); e.Message != msg {
		t.Errorf("message = %q, want %q", e.Message, msg)
	}
}

func TestService_Create_EscapesBody(t *testing.T) {
	svc, u, tk := newTestService(t)

	c, err := svc.Create(context.Background(), CreateCommentInput{
		Body:  `<script>alert("x")</script>`,
		Owner: u.ID,
		Task:  tk.ID,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	want := `&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;`
	if c.Body != want {
		t.Errorf("body = %q, want %q", c.Body, want)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, u, tk := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCommentInput{Body: "  ", Owner: u.ID, Task: tk.ID})
	wantAppErr(t, err, apperr.ErrValidation, "The comment cannot be empty")

	_, err = svc.Create(ctx, CreateCommentInput{Body: "hi", Owner: 999, Task: tk.ID})
	wantAppErr(t, err, apperr.ErrNotFound, "Owner cannot be found")

	_, err = svc.Create(ctx, CreateCommentInput{Body: "hi", Owner: u.ID, Task: 999})
	wantAppErr(t, err, apperr.ErrNotFound, "Task cannot be found")
}

func TestService_UpdateListDelete(t *testing.T) {
	svc, u, tk := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, 0)
	wantAppErr(t, err, apperr.ErrNotFound, "Comments could not be found")

	c, err := svc.Create(ctx, CreateCommentInput{Body: "first", Owner: u.ID, Task: tk.ID})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated, err := svc.Update(ctx, c.ID, UpdateCommentInput{Body: "a & b"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Body != "a &amp; b" {
		t.Errorf("body = %q", updated.Body)
	}

	_, err = svc.Update(ctx, c.ID, UpdateCommentInput{Body: ""})
	wantAppErr(t, err, apperr.ErrValidation, "The comment cannot be empty")

	comments, err := svc.List(ctx, 1)
	if err != nil || len(comments) != 1 {
		t.Fatalf("List() = %v, %v", comments, err)
	}

	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	_, err = svc.Get(ctx, c.ID)
	wantAppErr(t, err, apperr.ErrNotFound, "Comment could not be found")
}
