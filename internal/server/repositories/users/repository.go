package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/server/models"
)

// Repository is the credential store, keyed by username.
type Repository interface {
	// Create inserts user. A duplicate username yields common.ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) error
	// GetUserByLogin returns common.ErrorNotFound when nobody has that username.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	UpdateLastSeen(ctx context.Context, userName string, at time.Time) error
	// ListExcept returns up to limit users other than userName, in no particular order.
	ListExcept(ctx context.Context, userName string, limit int) ([]*models.User, error)
}
