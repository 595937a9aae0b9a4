package interfaces

import (
	"context"
	"time"

	"invite-auth/shared/models"
)

// InviteCodeRepository defines invite code persistence.
type InviteCodeRepository interface {
	// GetByCode returns models.ErrInviteCodeNotFound if the code does not exist.
	GetByCode(ctx context.Context, querier DBTX, code string) (*models.InviteCode, error)

	// Consume atomically increments the used count if, and only if, the code is
	// consumable on the calendar day of now. When nothing was updated it reports why:
	// models.ErrInviteCodeNotFound, ErrInviteCodeInactive, ErrInviteCodeExhausted or ErrInviteCodeExpired.
	Consume(ctx context.Context, querier DBTX, code string, now time.Time) (*models.InviteCode, error)

	// Create inserts a new invite code and fills in ID and CreatedAt.
	// Returns models.ErrInviteCodeAlreadyExists on a duplicate code.
	Create(ctx context.Context, querier DBTX, invite *models.InviteCode) error
}
