package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/loveletters/internal/client/client"
	"github.com/dmitrijs2005/loveletters/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, client.RunMigrations(context.Background(), db))
	return db
}

func readSession(t *testing.T, db *sql.DB) map[string]string {
	t.Helper()
	rows, err := db.Query(`SELECT key, value FROM session`)
	require.NoError(t, err)
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		require.NoError(t, rows.Scan(&k, &v))
		out[k] = v
	}
	require.NoError(t, rows.Err())
	return out
}

// fakeClient implements client.Client. Unset function fields fail the test
// through a nil call panic, which keeps unexpected calls visible.
type fakeClient struct {
	ping     func() error
	register func(username, password string) (*models.Token, error)
	login    func(username, password string) (*models.Token, error)
	me       func(token string) (*models.User, error)
	users    func(token string) ([]models.User, error)
	send     func(token string, msg models.NewMessage) (*models.Message, error)
	folder   func(token, name string) ([]models.Message, error)
	message  func(token, id string) (*models.Message, error)
	unlock   func(token, id, code string) error
	markRead func(token, id string) error
	del      func(token, id string) error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(context.Context) error { return f.ping() }
func (f *fakeClient) Register(_ context.Context, u, p string) (*models.Token, error) {
	return f.register(u, p)
}
func (f *fakeClient) Login(_ context.Context, u, p string) (*models.Token, error) {
	return f.login(u, p)
}
func (f *fakeClient) Me(_ context.Context, token string) (*models.User, error) { return f.me(token) }
func (f *fakeClient) Users(_ context.Context, token string) ([]models.User, error) {
	return f.users(token)
}
func (f *fakeClient) Send(_ context.Context, token string, msg models.NewMessage) (*models.Message, error) {
	return f.send(token, msg)
}
func (f *fakeClient) Inbox(_ context.Context, token string) ([]models.Message, error) {
	return f.folder(token, "inbox")
}
func (f *fakeClient) Sent(_ context.Context, token string) ([]models.Message, error) {
	return f.folder(token, "sent")
}
func (f *fakeClient) Drafts(_ context.Context, token string) ([]models.Message, error) {
	return f.folder(token, "drafts")
}
func (f *fakeClient) Message(_ context.Context, token, id string) (*models.Message, error) {
	return f.message(token, id)
}
func (f *fakeClient) Unlock(_ context.Context, token, id, code string) error {
	return f.unlock(token, id, code)
}
func (f *fakeClient) MarkRead(_ context.Context, token, id string) error {
	return f.markRead(token, id)
}
func (f *fakeClient) Delete(_ context.Context, token, id string) error { return f.del(token, id) }

func tokenFor(name string) *models.Token {
	return &models.Token{AccessToken: "tok-" + name, TokenType: "bearer", User: models.User{ID: "id-" + name, UserName: name}}
}

// loggedIn returns a session already holding a token for name.
func loggedIn(t *testing.T, db *sql.DB, name string) *Session {
	t.Helper()
	s := NewSession(db)
	require.NoError(t, s.save(context.Background(), "tok-"+name, name))
	return s
}
