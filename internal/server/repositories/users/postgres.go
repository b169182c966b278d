// Package users provides the PostgreSQL-backed credential store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/dbx"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, username, password_hash, created_at, last_seen)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.UserName, user.PasswordHash, user.CreatedAt, nullTime(user.LastSeen))

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, created_at, last_seen FROM users
		 WHERE username = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateLastSeen(ctx context.Context, userName string, at time.Time) error {
	query := `UPDATE users SET last_seen = $1 WHERE username = $2`

	if _, err := r.db.ExecContext(ctx, query, at, userName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListExcept(ctx context.Context, userName string, limit int) ([]*models.User, error) {
	query :=
		`SELECT id, username, password_hash, created_at, last_seen FROM users
		 WHERE username <> $1
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userName, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user     models.User
		lastSeen sql.NullTime
	)

	if err := row.Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.CreatedAt, &lastSeen); err != nil {
		return nil, err
	}

	user.CreatedAt = user.CreatedAt.UTC()
	if lastSeen.Valid {
		t := lastSeen.Time.UTC()
		user.LastSeen = &t
	}

	return &user, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
