// Package access decides whether an authenticated subject owns the resource
// it is about to mutate.
//
// Every check resolves the resource (and, for cards, the parent board)
// before comparing owners, so a missing resource is reported as NotFound
// even to a caller who would not own it.
package access

import (
	"context"
	"log/slog"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/board"
	"github.com/easykanban/easykanban/internal/card"
	"github.com/easykanban/easykanban/internal/comment"
	"github.com/easykanban/easykanban/internal/task"
	"github.com/easykanban/easykanban/internal/user"
)

// BoardGetter resolves a board, returning apperr NotFound when absent.
type BoardGetter interface {
	Get(ctx context.Context, id int64) (*board.Board, error)
}

// CardGetter resolves a card, returning apperr NotFound when absent.
type CardGetter interface {
	Get(ctx context.Context, id int64) (*card.Card, error)
}

// TaskGetter resolves a task, returning apperr NotFound when absent.
type TaskGetter interface {
	Get(ctx context.Context, id int64) (*task.Task, error)
}

// CommentGetter resolves a comment, returning apperr NotFound when absent.
type CommentGetter interface {
	Get(ctx context.Context, id int64) (*comment.Comment, error)
}

// UserFinder resolves a user by username or numeric id.
type UserFinder interface {
	Find(ctx context.Context, by string) (*user.User, error)
}

// MetricsRecorder is an optional interface for counting denied checks.
type MetricsRecorder interface {
	IncOwnershipDenial(resource string)
}

// Guard runs ownership checks against the domain services.
type Guard struct {
	boards   BoardGetter
	cards    CardGetter
	tasks    TaskGetter
	comments CommentGetter
	users    UserFinder
	metrics  MetricsRecorder
}

// NewGuard creates a new Guard.
func NewGuard(boards BoardGetter, cards CardGetter, tasks TaskGetter, comments CommentGetter, users UserFinder) *Guard {
	return &Guard{boards: boards, cards: cards, tasks: tasks, comments: comments, users: users}
}

// SetMetrics sets the optional metrics recorder.
func (g *Guard) SetMetrics(m MetricsRecorder) {
	g.metrics = m
}

// Owns reports whether claims belong to ownerID. It is used on creation,
// where the owner comes from the request body rather than a stored row.
func (g *Guard) Owns(claims *auth.Claims, ownerID int64) error {
	return g.compare("owner", claims, ownerID)
}

// Board checks that the subject owns the board.
func (g *Guard) Board(ctx context.Context, claims *auth.Claims, id int64) (*board.Board, error) {
	b, err := g.boards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.compare("board", claims, b.Owner); err != nil {
		return nil, err
	}
	return b, nil
}

// BoardForNewCard checks that the subject owns the board a new card will be
// placed on.
func (g *Guard) BoardForNewCard(ctx context.Context, claims *auth.Claims, boardID int64) (*board.Board, error) {
	b, err := g.boards.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := g.compare("card", claims, b.Owner); err != nil {
		return nil, err
	}
	return b, nil
}

// Card checks that the subject owns the board the card belongs to.
func (g *Guard) Card(ctx context.Context, claims *auth.Claims, id int64) (*card.Card, error) {
	c, err := g.cards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := g.boards.Get(ctx, c.Board)
	if err != nil {
		return nil, err
	}
	if err := g.compare("card", claims, b.Owner); err != nil {
		return nil, err
	}
	return c, nil
}

// Task checks that the subject owns the task.
func (g *Guard) Task(ctx context.Context, claims *auth.Claims, id int64) (*task.Task, error) {
	t, err := g.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.compare("task", claims, t.Owner); err != nil {
		return nil, err
	}
	return t, nil
}

// Comment checks that the subject wrote the comment.
func (g *Guard) Comment(ctx context.Context, claims *auth.Claims, id int64) (*comment.Comment, error) {
	c, err := g.comments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.compare("comment", claims, c.Owner); err != nil {
		return nil, err
	}
	return c, nil
}

// User checks that the subject is the user resolved by username or id.
func (g *Guard) User(ctx context.Context, claims *auth.Claims, by string) (*user.User, error) {
	u, err := g.users.Find(ctx, by)
	if err != nil {
		return nil, err
	}
	if err := g.compare("user", claims, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (g *Guard) compare(resource string, claims *auth.Claims, ownerID int64) error {
	if claims != nil && claims.SubjectID == ownerID {
		return nil
	}
	var subject int64
	if claims != nil {
		subject = claims.SubjectID
	}
	slog.Debug("ownership check denied", "resource", resource, "subject", subject, "owner", ownerID)
	if g.metrics != nil {
		g.metrics.IncOwnershipDenial(resource)
	}
	return apperr.Unauthorized("User unauthorized")
}
