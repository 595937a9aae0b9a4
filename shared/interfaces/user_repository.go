package interfaces

import (
	"context"
	"time"

	"invite-auth/shared/models"

	"github.com/google/uuid"
)

// UserRepository defines user persistence.
// Every method takes the querier to run on, so callers can compose calls in a transaction.
type UserRepository interface {
	// CreateUser inserts the user and fills in ID and CreatedAt.
	// Returns models.ErrUserAlreadyExists when the username is taken; the unique
	// constraint is the only source of truth for that.
	CreateUser(ctx context.Context, querier DBTX, user *models.User) error

	// GetUserByUsername returns models.ErrUserNotFound if the user does not exist.
	GetUserByUsername(ctx context.Context, querier DBTX, username string) (*models.User, error)

	// GetUserByID returns models.ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.User, error)

	// TouchLastLogin sets last_login_at for the user.
	TouchLastLogin(ctx context.Context, querier DBTX, id uuid.UUID, at time.Time) error
}
