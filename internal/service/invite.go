package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	generatedInviteCodeLength = 12
	defaultInviteMaxUses      = 1
)

var inviteCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,64}$`)

// CreateInviteCodeInput describes a new invite code. Zero values mean
// "generate a code", "one use" and "never expires".
type CreateInviteCodeInput struct {
	Code       string
	MaxUses    *int
	ExpireDate *time.Time
	CreatedBy  *uuid.UUID
}

// InviteService applies the invite code rules on top of the repository.
type InviteService struct {
	db     interfaces.DBTX
	repo   interfaces.InviteCodeRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewInviteService creates an InviteService. Reads outside a transaction go to db.
func NewInviteService(db interfaces.DBTX, repo interfaces.InviteCodeRepository, now func() time.Time, logger *zap.Logger) *InviteService {
	if now == nil {
		now = time.Now
	}
	return &InviteService{
		db:     db,
		repo:   repo,
		now:    now,
		logger: logger.Named("InviteService"),
	}
}

// IsConsumable reports whether code could be consumed right now.
// An unknown code is simply not consumable.
func (s *InviteService) IsConsumable(ctx context.Context, code string) (bool, error) {
	invite, err := s.repo.GetByCode(ctx, s.db, code)
	if err != nil {
		if errors.Is(err, models.ErrInviteCodeNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read invite code: %w", err)
	}
	return invite.IsConsumable(s.now()), nil
}

// CheckConsumable returns nil when code could be consumed right now, otherwise
// the reason as one of the invite code sentinels. It reads outside any
// transaction, so a later Consume can still lose a race.
func (s *InviteService) CheckConsumable(ctx context.Context, code string) error {
	invite, err := s.repo.GetByCode(ctx, s.db, code)
	if err != nil {
		if errors.Is(err, models.ErrInviteCodeNotFound) {
			return err
		}
		return fmt.Errorf("failed to read invite code: %w", err)
	}
	return invite.CheckConsumable(s.now())
}

// Consume uses up one use of code on querier, normally inside the
// registration transaction.
func (s *InviteService) Consume(ctx context.Context, querier interfaces.DBTX, code string) (*models.InviteCode, error) {
	invite, err := s.repo.Consume(ctx, querier, code, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Invite code consumed", zap.Int64("inviteCodeID", invite.ID), zap.Int("used", invite.Used), zap.Int("maxUses", invite.MaxUses))
	return invite, nil
}

// Create validates input and stores a new active invite code.
func (s *InviteService) Create(ctx context.Context, input CreateInviteCodeInput) (*models.InviteCode, error) {
	invite, err := s.buildInviteCode(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, s.db, invite); err != nil {
		return nil, err
	}
	s.logger.Info("Invite code created", zap.Int64("inviteCodeID", invite.ID), zap.Int("maxUses", invite.MaxUses))
	return invite, nil
}

// EnsureExists creates the invite code unless one with the same code is already stored.
func (s *InviteService) EnsureExists(ctx context.Context, input CreateInviteCodeInput) (created bool, err error) {
	_, err = s.Create(ctx, input)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, models.ErrInviteCodeAlreadyExists):
		return false, nil
	default:
		return false, err
	}
}

func (s *InviteService) buildInviteCode(input CreateInviteCodeInput) (*models.InviteCode, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = generateInviteCode()
	} else if !inviteCodePattern.MatchString(code) {
		return nil, models.NewValidationError("invite code must be 4-64 letters, digits, '-' or '_'")
	}

	maxUses := defaultInviteMaxUses
	if input.MaxUses != nil {
		maxUses = *input.MaxUses
	}
	if maxUses != models.UnlimitedUses && maxUses < 1 {
		return nil, models.NewValidationError("maxUses must be -1 (unlimited) or at least 1")
	}

	invite := &models.InviteCode{
		Code:       code,
		MaxUses:    maxUses,
		Status:     models.InviteCodeActive,
		ExpireDate: input.ExpireDate,
		CreatedBy:  input.CreatedBy,
	}
	if invite.ExpireDate != nil && invite.CheckConsumable(s.now()) != nil {
		return nil, models.NewValidationError("expireDate must not be in the past")
	}
	return invite, nil
}

// generateInviteCode derives a code from a random UUID.
func generateInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:generatedInviteCodeLength])
}
