package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/client/models"
	"github.com/dmitrijs2005/loveletters/internal/logging"
	"github.com/dmitrijs2005/loveletters/internal/server/auth"
	"github.com/dmitrijs2005/loveletters/internal/server/httpapi"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loveletters/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer runs the real API over the in-memory store.
func newServer(t *testing.T) *HTTPClient {
	t.Helper()

	m := repomanager.NewMemoryRepositoryManager()
	hasher, err := auth.NewPasswordHasher("sha256")
	require.NoError(t, err)

	us := services.NewUserService(m, hasher, auth.NewTokenService("test-secret", time.Hour), logging.Nop())
	ms := services.NewMessageService(m, logging.Nop())

	srv := httptest.NewServer(httpapi.NewRouter(us, ms, logging.Nop(), []string{"*"}, nil))
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestRoundTrip_LockedLetter(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	alice, err := c.Register(ctx, "alice", "pw-a")
	require.NoError(t, err)
	assert.Equal(t, "bearer", alice.TokenType)

	_, err = c.Register(ctx, "alice", "again")
	assert.ErrorIs(t, err, ErrRejected)

	bob, err := c.Register(ctx, "bob", "pw-b")
	require.NoError(t, err)

	_, err = c.Login(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	again, err := c.Login(ctx, "bob", "pw-b")
	require.NoError(t, err)
	require.NotNil(t, again.User.LastSeen)

	me, err := c.Me(ctx, bob.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", me.UserName)

	users, err := c.Users(ctx, alice.AccessToken)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].UserName)

	code := "42"
	sent, err := c.Send(ctx, alice.AccessToken, models.NewMessage{Recipient: "bob", Content: "be mine", SecretCode: &code})
	require.NoError(t, err)
	assert.True(t, sent.IsLocked())

	inbox, err := c.Inbox(ctx, bob.AccessToken)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.True(t, inbox[0].NeedsCode("bob"))

	err = c.Unlock(ctx, bob.AccessToken, sent.ID, "41")
	assert.ErrorIs(t, err, ErrRejected)

	err = c.Unlock(ctx, alice.AccessToken, sent.ID, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Unlock(ctx, bob.AccessToken, sent.ID, "42"))

	got, err := c.Message(ctx, bob.AccessToken, sent.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReadAt)
	assert.False(t, got.NeedsCode("bob"))

	require.NoError(t, c.Delete(ctx, alice.AccessToken, sent.ID))

	outbox, err := c.Sent(ctx, alice.AccessToken)
	require.NoError(t, err)
	assert.Empty(t, outbox)

	_, err = c.Me(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRoundTrip_DraftsAndRead(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	alice, err := c.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	bob, err := c.Register(ctx, "bob", "pw")
	require.NoError(t, err)

	_, err = c.Send(ctx, alice.AccessToken, models.NewMessage{Recipient: "bob", Content: "later", IsDraft: true})
	require.NoError(t, err)
	plain, err := c.Send(ctx, alice.AccessToken, models.NewMessage{Recipient: "bob", Content: "now"})
	require.NoError(t, err)

	drafts, err := c.Drafts(ctx, alice.AccessToken)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.True(t, drafts[0].IsDraft)

	inbox, err := c.Inbox(ctx, bob.AccessToken)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.True(t, inbox[0].OpensOnView("bob"))

	require.NoError(t, c.MarkRead(ctx, bob.AccessToken, plain.ID))

	got, err := c.Message(ctx, bob.AccessToken, plain.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.ReadAt)

	_, err = c.Send(ctx, alice.AccessToken, models.NewMessage{Content: "nobody"})
	assert.ErrorIs(t, err, ErrRejected)
}
