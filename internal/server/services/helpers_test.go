package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/logging"
	"github.com/dmitrijs2005/loveletters/internal/server/auth"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/messages"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

// clock hands out strictly increasing instants.
type clock struct{ t time.Time }

func newClock() *clock {
	return &clock{t: time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newServices(t *testing.T) (*UserService, *MessageService, *clock) {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	return newServicesWith(t, m)
}

func newServicesWith(t *testing.T, m repomanager.RepositoryManager) (*UserService, *MessageService, *clock) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher("sha256")
	require.NoError(t, err)

	c := newClock()
	us := NewUserService(m, hasher, auth.NewTokenService("test-secret", time.Hour), logging.Nop())
	us.now = c.now
	ms := NewMessageService(m, logging.Nop())
	ms.now = c.now
	return us, ms, c
}

// brokenManager fails every store call.
type brokenManager struct{}

func (brokenManager) Users() users.Repository { return brokenUsers{} }
func (brokenManager) Messages() messages.Repository { return brokenMessages{} }
func (brokenManager) RunMigrations(context.Context) error { return nil }
func (brokenManager) Ping(context.Context) error { return errStore }
func (brokenManager) Close() error { return nil }

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) error { return errStore }
func (brokenUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, errStore
}
func (brokenUsers) UpdateLastSeen(context.Context, string, time.Time) error { return errStore }
func (brokenUsers) ListExcept(context.Context, string, int) ([]*models.User, error) {
	return nil, errStore
}

type brokenMessages struct{}

func (brokenMessages) Create(context.Context, *models.Message) error { return errStore }
func (brokenMessages) FindByID(context.Context, string) (*models.Message, error) {
	return nil, errStore
}
func (brokenMessages) ListReceived(context.Context, string, int) ([]*models.Message, error) {
	return nil, errStore
}
func (brokenMessages) ListSent(context.Context, string, bool, int) ([]*models.Message, error) {
	return nil, errStore
}
func (brokenMessages) MarkRead(context.Context, string, string, time.Time) error { return errStore }
func (brokenMessages) MarkReadIfUnread(context.Context, string, time.Time) (bool, error) {
	return false, errStore
}
func (brokenMessages) SoftDelete(context.Context, string, string) error { return errStore }

func strPtr(s string) *string { return &s }
