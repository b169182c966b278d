// Package services contains server-side business logic. This file implements
// UserService: registration, login, bearer token authentication and the
// directory of other users.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/logging"
	"github.com/dmitrijs2005/loveletters/internal/server/auth"
	"github.com/dmitrijs2005/loveletters/internal/server/metrics"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthResult is what a successful register or login hands back.
type AuthResult struct {
	AccessToken string
	User        *models.User
}

type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      *auth.TokenService
	logger      logging.Logger
	now         func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens *auth.TokenService, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
		now:         time.Now,
	}
}

// Register creates an account and signs the new user in. An existing
// username yields common.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()

	_, err := repo.GetUserByLogin(ctx, username)
	switch {
	case err == nil:
		metrics.RecordAuthEvent("register", metrics.OutcomeFailure)
		return nil, common.ErrUsernameTaken
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.internal(ctx, "register", "user lookup failed", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, s.internal(ctx, "register", "password hashing failed", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			metrics.RecordAuthEvent("register", metrics.OutcomeFailure)
			return nil, err
		}
		return nil, s.internal(ctx, "register", "user insert failed", err)
	}

	token, err := s.tokens.Issue(user.UserName)
	if err != nil {
		return nil, s.internal(ctx, "register", "token issue failed", err)
	}

	metrics.RecordAuthEvent("register", metrics.OutcomeSuccess)
	s.logger.Info(ctx, "user registered", "username", user.UserName, "id", user.ID)

	return &AuthResult{AccessToken: token, User: user}, nil
}

// Login checks the password and stamps last seen. Unknown users and wrong
// passwords both give common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			metrics.RecordAuthEvent("login", metrics.OutcomeFailure)
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.internal(ctx, "login", "user lookup failed", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.RecordAuthEvent("login", metrics.OutcomeFailure)
		return nil, common.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := repo.UpdateLastSeen(ctx, user.UserName, now); err != nil {
		return nil, s.internal(ctx, "login", "last seen update failed", err)
	}
	user.LastSeen = &now

	token, err := s.tokens.Issue(user.UserName)
	if err != nil {
		return nil, s.internal(ctx, "login", "token issue failed", err)
	}

	metrics.RecordAuthEvent("login", metrics.OutcomeSuccess)
	s.logger.Debug(ctx, "user logged in", "username", user.UserName)

	return &AuthResult{AccessToken: token, User: user}, nil
}

// Authenticate resolves a bearer token to its current user. Bad tokens give
// common.ErrorUnauthorized, a vanished user common.ErrUserNotFound.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		metrics.RecordAuthEvent("authenticate", metrics.OutcomeFailure)
		s.logger.Debug(ctx, "token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.repomanager.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			metrics.RecordAuthEvent("authenticate", metrics.OutcomeFailure)
			return nil, common.ErrUserNotFound
		}
		return nil, s.internal(ctx, "authenticate", "user lookup failed", err)
	}

	metrics.RecordAuthEvent("authenticate", metrics.OutcomeSuccess)
	return user, nil
}

// ListOthers returns everybody except username, capped at common.MaxListSize.
func (s *UserService) ListOthers(ctx context.Context, username string) ([]*models.User, error) {
	list, err := s.repomanager.Users().ListExcept(ctx, username, common.MaxListSize)
	if err != nil {
		s.logger.Error(ctx, "user list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

func (s *UserService) internal(ctx context.Context, event, msg string, err error) error {
	metrics.RecordAuthEvent(event, metrics.OutcomeError)
	s.logger.Error(ctx, msg, "event", event, "error", err)
	return common.ErrorInternal
}

func validateCredentials(username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return nil
}
