// Package messages provides the PostgreSQL-backed message store.
package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/dbx"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements message storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// knownID reports whether id can name a row at all. Ids arrive from the URL
// path as free text while the column is UUID; anything else is no match.
func knownID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

const messageColumns = `id, sender, recipient, content, secret_code, created_at, read_at, is_draft, is_deleted`

func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `INSERT INTO messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Sender, msg.Recipient, msg.Content, nullString(msg.SecretCode),
		msg.CreatedAt, nullTime(msg.ReadAt), msg.IsDraft, msg.IsDeleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	if !knownID(id) {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

func (r *PostgresRepository) ListReceived(ctx context.Context, recipient string, limit int) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		WHERE recipient = $1 AND is_draft = FALSE AND is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $2`

	return r.list(ctx, query, recipient, limit)
}

func (r *PostgresRepository) ListSent(ctx context.Context, sender string, drafts bool, limit int) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		WHERE sender = $1 AND is_draft = $2 AND is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $3`

	return r.list(ctx, query, sender, drafts, limit)
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id, recipient string, at time.Time) error {
	if !knownID(id) {
		return nil
	}

	query := `UPDATE messages SET read_at = $1 WHERE id = $2 AND recipient = $3`

	if _, err := r.db.ExecContext(ctx, query, at, id, recipient); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) MarkReadIfUnread(ctx context.Context, id string, at time.Time) (bool, error) {
	if !knownID(id) {
		return false, nil
	}

	query := `UPDATE messages SET read_at = $1 WHERE id = $2 AND read_at IS NULL`

	n, err := r.exec(ctx, query, at, id)
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id, participant string) error {
	if !knownID(id) {
		return common.ErrorNotFound
	}

	query := `UPDATE messages SET is_deleted = TRUE
		WHERE id = $1 AND (sender = $2 OR recipient = $2)`

	n, err := r.exec(ctx, query, id, participant)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		result = append(result, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*models.Message, error) {
	var (
		msg    models.Message
		code   sql.NullString
		readAt sql.NullTime
	)

	err := row.Scan(&msg.ID, &msg.Sender, &msg.Recipient, &msg.Content, &code,
		&msg.CreatedAt, &readAt, &msg.IsDraft, &msg.IsDeleted)
	if err != nil {
		return nil, err
	}

	msg.CreatedAt = msg.CreatedAt.UTC()
	if code.Valid {
		msg.SecretCode = &code.String
	}
	if readAt.Valid {
		t := readAt.Time.UTC()
		msg.ReadAt = &t
	}

	return &msg, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
