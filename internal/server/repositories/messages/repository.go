package messages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/server/models"
)

// Repository is the message store. Lists exclude soft-deleted rows and are
// ordered newest first.
type Repository interface {
	Create(ctx context.Context, msg *models.Message) error
	// FindByID returns common.ErrorNotFound for an unknown id. Soft-deleted
	// messages are still returned.
	FindByID(ctx context.Context, id string) (*models.Message, error)
	// ListReceived returns non-draft messages addressed to recipient.
	ListReceived(ctx context.Context, recipient string, limit int) ([]*models.Message, error)
	// ListSent returns messages from sender whose draft flag equals drafts.
	ListSent(ctx context.Context, sender string, drafts bool, limit int) ([]*models.Message, error)
	// MarkRead sets read_at on message id if recipient matches, whatever its
	// current value. A non-matching id is not an error.
	MarkRead(ctx context.Context, id, recipient string, at time.Time) error
	// MarkReadIfUnread sets read_at only while it is still null and reports
	// whether it did.
	MarkReadIfUnread(ctx context.Context, id string, at time.Time) (bool, error)
	// SoftDelete flags message id deleted if participant sent or received it,
	// otherwise it returns common.ErrorNotFound.
	SoftDelete(ctx context.Context, id, participant string) error
}
