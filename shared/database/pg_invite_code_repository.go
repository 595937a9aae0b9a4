package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgInviteCodeRepository implements InviteCodeRepository
var _ interfaces.InviteCodeRepository = (*pgInviteCodeRepository)(nil)

const (
	inviteCodesCodeConstraint = "invite_codes_code_key"

	inviteCodeColumns = `id, code, max_uses, used, status, expire_date, created_at, created_by`

	getInviteCodeQuery = `SELECT ` + inviteCodeColumns + ` FROM invite_codes WHERE code = $1`

	// The WHERE clause is the consumability predicate, so the check and the
	// increment happen in one statement and concurrent consumers cannot push
	// used past max_uses.
	consumeInviteCodeQuery = `
		UPDATE invite_codes SET used = used + 1
		WHERE code = $1
		  AND status = 'active'
		  AND (max_uses = -1 OR used < max_uses)
		  AND (expire_date IS NULL OR expire_date >= $2::date)
		RETURNING ` + inviteCodeColumns

	createInviteCodeQuery = `
		INSERT INTO invite_codes (code, max_uses, status, expire_date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, used, created_at`
)

type pgInviteCodeRepository struct {
	logger *zap.Logger
}

// NewPgInviteCodeRepository creates a new PostgreSQL-backed InviteCodeRepository.
func NewPgInviteCodeRepository(logger *zap.Logger) interfaces.InviteCodeRepository {
	return &pgInviteCodeRepository{
		logger: logger.Named("PgInviteCodeRepo"),
	}
}

// GetByCode retrieves an invite code by its code string.
func (r *pgInviteCodeRepository) GetByCode(ctx context.Context, querier interfaces.DBTX, code string) (*models.InviteCode, error) {
	invite := &models.InviteCode{}
	if err := pgxscan.Get(ctx, querier, invite, getInviteCodeQuery, code); err != nil {
		if pgxscan.NotFound(err) {
			return nil, models.ErrInviteCodeNotFound
		}
		r.logger.Error("Failed to get invite code from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to get invite code from postgres: %w", err)
	}
	return invite, nil
}

// Consume increments the used count of a consumable code.
func (r *pgInviteCodeRepository) Consume(ctx context.Context, querier interfaces.DBTX, code string, now time.Time) (*models.InviteCode, error) {
	today := now.UTC().Format(time.DateOnly)
	invite := &models.InviteCode{}
	err := pgxscan.Get(ctx, querier, invite, consumeInviteCodeQuery, code, today)
	if err == nil {
		r.logger.Info("Invite code consumed", zap.Int64("inviteID", invite.ID), zap.Int("used", invite.Used), zap.Int("maxUses", invite.MaxUses))
		return invite, nil
	}
	if !pgxscan.NotFound(err) {
		r.logger.Error("Failed to consume invite code in postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to consume invite code: %w", err)
	}

	// Nothing updated: find out why.
	current, getErr := r.GetByCode(ctx, querier, code)
	if getErr != nil {
		return nil, getErr
	}
	reason := current.CheckConsumable(now)
	if reason == nil {
		// A concurrent update landed between the two statements.
		reason = models.ErrInviteCodeExhausted
	}
	r.logger.Debug("Invite code not consumable", zap.Int64("inviteID", current.ID), zap.Error(reason))
	return nil, reason
}

// Create inserts a new invite code.
func (r *pgInviteCodeRepository) Create(ctx context.Context, querier interfaces.DBTX, invite *models.InviteCode) error {
	if invite.Status == "" {
		invite.Status = models.InviteCodeActive
	}
	err := querier.QueryRow(ctx, createInviteCodeQuery,
		invite.Code, invite.MaxUses, string(invite.Status), invite.ExpireDate, invite.CreatedBy,
	).Scan(&invite.ID, &invite.Used, &invite.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == inviteCodesCodeConstraint {
			r.logger.Warn("Attempted to create duplicate invite code")
			return models.ErrInviteCodeAlreadyExists
		}
		r.logger.Error("Failed to create invite code in postgres", zap.Error(err))
		return fmt.Errorf("failed to create invite code in postgres: %w", err)
	}
	r.logger.Info("Invite code created", zap.Int64("inviteID", invite.ID), zap.Int("maxUses", invite.MaxUses))
	return nil
}
