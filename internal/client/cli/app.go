package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/loveletters/internal/client/client"
	"github.com/dmitrijs2005/loveletters/internal/client/config"
	"github.com/dmitrijs2005/loveletters/internal/client/services"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	auth     services.AuthService
	messages services.MessageService
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("session database error: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSession(db)

	return &App{
		config:   c,
		db:       db,
		auth:     services.NewAuthService(apiClient, session),
		messages: services.NewMessageService(apiClient, session),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.CurrentUser() != ""
}

func (a *App) getStatus() string {
	if u := a.auth.CurrentUser(); u != "" {
		return fmt.Sprintf("(%s)", u)
	}
	return ""
}

// restore picks up the session saved by a previous run.
func (a *App) restore(ctx context.Context) {
	user, err := a.auth.Restore(ctx)
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "Server unavailable, keeping saved session for %s\n", a.auth.CurrentUser())
	case err != nil:
		fmt.Fprintln(a.out, "Could not restore session:", describe(err))
	case user != nil:
		fmt.Fprintf(a.out, "Welcome back, %s!\n", user.UserName)
	default:
		fmt.Fprintln(a.out, "Type 'login' or 'register' to start")
	}
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, client.ErrRejected):
		return detail(err)
	}
	return err.Error()
}

func detail(err error) string {
	s := err.Error()
	for _, sentinel := range []error{client.ErrUnauthorized, client.ErrNotFound, client.ErrRejected} {
		if rest, ok := strings.CutPrefix(s, sentinel.Error()+": "); ok && rest != "" {
			return rest
		}
	}
	return s
}
