// Package services holds the CLI's use cases on top of the API client and
// the local session store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/loveletters/internal/client/client"
	"github.com/dmitrijs2005/loveletters/internal/client/repositories/session"
	"github.com/dmitrijs2005/loveletters/internal/dbx"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Session is the login state shared by the services: the access token and
// the username it was issued for, mirrored in the local database so that a
// restart does not require logging in again.
type Session struct {
	db *sql.DB

	mu       sync.RWMutex
	token    string
	userName string
}

func NewSession(db *sql.DB) *Session {
	return &Session{db: db}
}

func (s *Session) repo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

// Load reads the persisted session, if any, into memory.
func (s *Session) Load(ctx context.Context) error {
	repo := s.repo(s.db)

	token, err := repo.Get(ctx, session.KeyToken)
	if err != nil {
		return err
	}
	userName, err := repo.Get(ctx, session.KeyUserName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token, s.userName = token, userName
	s.mu.Unlock()
	return nil
}

func (s *Session) save(ctx context.Context, token, userName string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, session.KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyUserName, userName)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token, s.userName = token, userName
	s.mu.Unlock()
	return nil
}

// forget drops the in-memory state first so a failing store still logs the
// user out of this run.
func (s *Session) forget(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.userName = "", ""
	s.mu.Unlock()

	return s.repo(s.db).Clear(ctx)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// authorized runs fn with the current token. A 401 from the server means
// the token is no longer usable, so the session is dropped.
func (s *Session) authorized(ctx context.Context, fn func(token string) error) error {
	token := s.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	err := fn(token)
	if errors.Is(err, client.ErrUnauthorized) {
		if ferr := s.forget(ctx); ferr != nil {
			return errors.Join(err, ferr)
		}
	}
	return err
}
