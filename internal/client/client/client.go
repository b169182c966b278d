// Package client talks to the LoveLetters HTTP API and bootstraps the local
// session database.
//
// Failures are reported with sentinel errors matched by errors.Is:
// ErrUnavailable (server unreachable), ErrUnauthorized (401),
// ErrNotFound (404) and ErrRejected (400, with the server's detail text).
package client

import (
	"context"

	"github.com/dmitrijs2005/loveletters/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password string) (*models.Token, error)
	Login(ctx context.Context, username, password string) (*models.Token, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Users(ctx context.Context, token string) ([]models.User, error)
	Send(ctx context.Context, token string, msg models.NewMessage) (*models.Message, error)
	Inbox(ctx context.Context, token string) ([]models.Message, error)
	Sent(ctx context.Context, token string) ([]models.Message, error)
	Drafts(ctx context.Context, token string) ([]models.Message, error)
	Message(ctx context.Context, token, id string) (*models.Message, error)
	Unlock(ctx context.Context, token, id, code string) error
	MarkRead(ctx context.Context, token, id string) error
	Delete(ctx context.Context, token, id string) error
}
