package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/loveletters/internal/client/client"
	"github.com/dmitrijs2005/loveletters/internal/client/models"
)

// AuthService covers account and session operations of the CLI.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	// Restore loads the persisted session and checks it against the server.
	// It returns (nil, nil) when there is no usable session.
	Restore(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Users(ctx context.Context) ([]models.User, error)
	Ping(ctx context.Context) error
	// CurrentUser is the username of the session, or "" when logged out.
	CurrentUser() string
}

type authService struct {
	client  client.Client
	session *Session
}

func NewAuthService(c client.Client, s *Session) AuthService {
	return &authService{client: c, session: s}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) (*models.User, error) {
	token, err := a.client.Register(ctx, username, string(password))
	if err != nil {
		return nil, err
	}
	return a.start(ctx, token)
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	token, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, err
	}
	return a.start(ctx, token)
}

func (a *authService) start(ctx context.Context, token *models.Token) (*models.User, error) {
	if err := a.session.save(ctx, token.AccessToken, token.User.UserName); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &token.User, nil
}

func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	if err := a.session.Load(ctx); err != nil {
		return nil, fmt.Errorf("session loading error: %w", err)
	}
	if !a.session.LoggedIn() {
		return nil, nil
	}

	user, err := a.Me(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.forget(ctx)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	var user *models.User
	err := a.session.authorized(ctx, func(token string) (err error) {
		user, err = a.client.Me(ctx, token)
		return err
	})
	return user, err
}

func (a *authService) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := a.session.authorized(ctx, func(token string) (err error) {
		users, err = a.client.Users(ctx, token)
		return err
	})
	return users, err
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) CurrentUser() string {
	if !a.session.LoggedIn() {
		return ""
	}
	return a.session.UserName()
}
