package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

const (
	insertUserQuery = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*password_hash,\s*created_at,\s*last_seen\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	selectUserQuery = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*created_at,\s*last_seen\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	listUsersQuery  = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*created_at,\s*last_seen\s+FROM\s+users\s+WHERE\s+username\s*<>\s*\$1\s+LIMIT\s+\$2\s*$`
	lastSeenQuery   = `^UPDATE users SET last_seen = \$1 WHERE username = \$2$`
)

var userColumns = []string{"id", "username", "password_hash", "created_at", "last_seen"}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	created := time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(insertUserQuery).
		WithArgs("u-1", "alice", "salt:digest", created, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.User{
		ID: "u-1", UserName: "alice", PasswordHash: "salt:digest", CreatedAt: created,
	})
	require.NoError(t, err)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertUserQuery).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), &models.User{ID: "u-2", UserName: "alice", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertUserQuery).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.User{ID: "u-3", UserName: "bob", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := created.Add(time.Hour)
	mock.ExpectQuery(selectUserQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "alice", "s:d", created, seen))

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, "s:d", got.PasswordHash)
	assert.True(t, created.Equal(got.CreatedAt))
	require.NotNil(t, got.LastSeen)
	assert.True(t, seen.Equal(*got.LastSeen))
}

func TestGetUserByLogin_NeverSeen(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-2", "bob", "s:d", time.Now(), nil))

	got, err := repo.GetUserByLogin(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, got.LastSeen)
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).WithArgs("alice").WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db err`, err.Error())
}

func TestUpdateLastSeen(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(lastSeenQuery).WithArgs(at, "alice").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastSeen(context.Background(), "alice", at))
}

func TestListExcept(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(userColumns).
		AddRow("u-2", "bob", "s:d", time.Now(), nil).
		AddRow("u-3", "carol", "s:d", time.Now(), time.Now())
	mock.ExpectQuery(listUsersQuery).WithArgs("alice", common.MaxListSize).WillReturnRows(rows)

	got, err := repo.ListExcept(context.Background(), "alice", common.MaxListSize)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].UserName)
	assert.Equal(t, "carol", got[1].UserName)
}

func TestListExcept_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(userColumns).AddRow("u-2", "bob", "s:d", "not-a-time", nil)
	mock.ExpectQuery(listUsersQuery).WithArgs("alice", 10).WillReturnRows(rows)

	_, err := repo.ListExcept(context.Background(), "alice", 10)
	assert.Error(t, err)
}
