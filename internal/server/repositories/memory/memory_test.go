package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/messages"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ users.Repository    = (*UserRepository)(nil)
	_ messages.Repository = (*MessageRepository)(nil)
)

func TestUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	require.NoError(t, repo.Create(ctx, &models.User{ID: "1", UserName: "alice", PasswordHash: "h"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.User{ID: "2", UserName: "alice"}), common.ErrUsernameTaken)

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	_, err = repo.GetUserByLogin(ctx, "Alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUsers_UpdateLastSeenAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, repo.Create(ctx, &models.User{ID: name, UserName: name}))
	}

	at := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastSeen(ctx, "bob", at))
	require.NoError(t, repo.UpdateLastSeen(ctx, "ghost", at))

	list, err := repo.ListExcept(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].UserName)
	require.NotNil(t, list[0].LastSeen)
	assert.True(t, at.Equal(*list[0].LastSeen))
	assert.Equal(t, "carol", list[1].UserName)

	list, err = repo.ListExcept(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUsers_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "1", UserName: "alice", PasswordHash: "h"}))

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	got.PasswordHash = "changed"

	again, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", again.PasswordHash)
}

func seed(t *testing.T, repo *MessageRepository, msgs ...models.Message) {
	t.Helper()
	for i := range msgs {
		require.NoError(t, repo.Create(context.Background(), &msgs[i]))
	}
}

func TestMessages_Lists(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Messages()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	seed(t, repo,
		models.Message{ID: "a", Sender: "alice", Recipient: "bob", CreatedAt: base},
		models.Message{ID: "b", Sender: "carol", Recipient: "bob", CreatedAt: base.Add(time.Hour)},
		models.Message{ID: "c", Sender: "alice", Recipient: "bob", CreatedAt: base.Add(2 * time.Hour), IsDraft: true},
		models.Message{ID: "d", Sender: "alice", Recipient: "bob", CreatedAt: base.Add(3 * time.Hour), IsDeleted: true},
	)

	inbox, err := repo.ListReceived(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "b", inbox[0].ID)
	assert.Equal(t, "a", inbox[1].ID)

	sent, err := repo.ListSent(ctx, "alice", false, 10)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "a", sent[0].ID)

	drafts, err := repo.ListSent(ctx, "alice", true, 10)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "c", drafts[0].ID)

	inbox, err = repo.ListReceived(ctx, "bob", 1)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
}

func TestMessages_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Messages()
	seed(t, repo, models.Message{ID: "a", Sender: "alice", Recipient: "bob"})

	at := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkRead(ctx, "a", "alice", at))
	got, _ := repo.FindByID(ctx, "a")
	assert.Nil(t, got.ReadAt)

	require.NoError(t, repo.MarkRead(ctx, "a", "bob", at))
	got, _ = repo.FindByID(ctx, "a")
	require.NotNil(t, got.ReadAt)
	assert.True(t, at.Equal(*got.ReadAt))

	later := at.Add(time.Hour)
	require.NoError(t, repo.MarkRead(ctx, "a", "bob", later))
	got, _ = repo.FindByID(ctx, "a")
	assert.True(t, later.Equal(*got.ReadAt))
}

func TestMessages_MarkReadIfUnread(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Messages()
	seed(t, repo, models.Message{ID: "a", Sender: "alice", Recipient: "bob"})

	first := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	ok, err := repo.MarkReadIfUnread(ctx, "a", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkReadIfUnread(ctx, "a", first.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	got, _ := repo.FindByID(ctx, "a")
	assert.True(t, first.Equal(*got.ReadAt))

	ok, err = repo.MarkReadIfUnread(ctx, "missing", first)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMessages_SoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Messages()
	seed(t, repo, models.Message{ID: "a", Sender: "alice", Recipient: "bob"})

	assert.ErrorIs(t, repo.SoftDelete(ctx, "a", "carol"), common.ErrorNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, "zzz", "alice"), common.ErrorNotFound)
	require.NoError(t, repo.SoftDelete(ctx, "a", "bob"))

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)

	inbox, err := repo.ListReceived(ctx, "bob", 10)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}
