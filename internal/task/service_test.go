package task

import (
	"context"
	"errors"
	"testing"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/board"
	"github.com/easykanban/easykanban/internal/card"
	"github.com/easykanban/easykanban/internal/dal/daltest"
	"github.com/easykanban/easykanban/internal/user"
)

type fixture struct {
	svc      *Service
	owner    *user.User
	assignee *user.User
	card     *card.Card
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := daltest.Open(t)
	users := user.NewStore(db)

	owner, err := users.Create(ctx, user.CreateUserInput{Username: "bob_jones", Name: "Bob Jones", Email: "bob.jones@example.com"}, "digest")
	if err != nil {
		t.Fatalf("creating owner: %v", err)
	}
	assignee, err := users.Create(ctx, user.CreateUserInput{Username: "janedoe", Name: "Jane Doe", Email: "janedoe@example.com"}, "digest")
	if err != nil {
		t.Fatalf("creating assignee: %v", err)
	}
	b, err := board.NewStore(db).Create(ctx, board.CreateBoardInput{Name: "Sprint", Owner: owner.ID})
	if err != nil {
		t.Fatalf("creating board: %v", err)
	}
	cards := card.NewStore(db)
	c, err := cards.Create(ctx, card.CreateCardInput{Name: "Todo", Board: b.ID})
	if err != nil {
		t.Fatalf("creating card: %v", err)
	}

	return fixture{
		svc:      NewService(NewStore(db), users, cards),
		owner:    owner,
		assignee: assignee,
		card:     c,
	}
}

func (f fixture) input() CreateTaskInput {
	return CreateTaskInput{
		Title:        "Write release notes",
		Body:         "Cover the API changes",
		HexBgColor:   "#336699",
		Owner:        f.owner.ID,
		AttributedTo: f.assignee.ID,
		Card:         f.card.ID,
	}
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

func TestService_Create(t *testing.T) {
	f := newFixture(t)

	tk, err := f.svc.Create(context.Background(), f.input())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if tk.ID == 0 || tk.Owner != f.owner.ID || tk.AttributedTo != f.assignee.ID || tk.Card != f.card.ID {
		t.Errorf("task = %+v", tk)
	}
}

func TestService_Create_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*CreateTaskInput)
		kind   error
		msg    string
	}{
		{"blank title", func(in *CreateTaskInput) { in.Title = "" }, apperr.ErrValidation, "The task's title was not provided"},
		{"bad colour", func(in *CreateTaskInput) { in.HexBgColor = "#zzzzzz" }, apperr.ErrValidation, "Invalid color format"},
		{"missing owner", func(in *CreateTaskInput) { in.Owner = 999 }, apperr.ErrNotFound, "Owner not found"},
		{"missing assignee", func(in *CreateTaskInput) { in.AttributedTo = 999 }, apperr.ErrNotFound, "User not found"},
		{"missing card", func(in *CreateTaskInput) { in.Card = 999 }, apperr.ErrNotFound, "Card not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input()
			tt.mutate(&in)
			_, err := f.svc.Create(context.Background(), in)
			wantAppErr(t, err, tt.kind, tt.msg)
		})
	}
}

func TestService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tk, err := f.svc.Create(ctx, f.input())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated, err := f.svc.Update(ctx, tk.ID, UpdateTaskInput{
		Title:        "Publish release notes",
		Body:         "Ship it",
		AttributedTo: f.owner.ID,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Title != "Publish release notes" || updated.AttributedTo != f.owner.ID || updated.Owner != f.owner.ID {
		t.Errorf("updated = %+v", updated)
	}

	_, err = f.svc.Update(ctx, tk.ID, UpdateTaskInput{Title: "x", Body: " ", AttributedTo: f.owner.ID})
	wantAppErr(t, err, apperr.ErrValidation, "The task's body was not provided")

	_, err = f.svc.Update(ctx, tk.ID, UpdateTaskInput{Title: "x", Body: "y", AttributedTo: 999})
	wantAppErr(t, err, apperr.ErrNotFound, "Attributed user not found")

	_, err = f.svc.Update(ctx, 999, UpdateTaskInput{Title: "x", Body: "y", AttributedTo: f.owner.ID})
	wantAppErr(t, err, apperr.ErrNotFound, "Task not found")
}

func TestService_ListAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.List(ctx, 0)
	wantAppErr(t, err, apperr.ErrNotFound, "Tasks could not be found")

	tk, err := f.svc.Create(ctx, f.input())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	tasks, err := f.svc.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != tk.ID {
		t.Errorf("tasks = %+v", tasks)
	}

	if err := f.svc.Delete(ctx, tk.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	err = f.svc.Delete(ctx, tk.ID)
	wantAppErr(t, err, apperr.ErrNotFound, "Task not found")
}
