package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"go.uber.org/zap"
)

// BootstrapConfig seeds an empty deployment. Empty fields are skipped.
type BootstrapConfig struct {
	InviteCode    string
	InviteMaxUses int
	AdminUsername string
	AdminPassword string
}

// Bootstrapper makes sure the first invite code and the first admin exist.
// Every step is idempotent, so it runs on each start.
type Bootstrapper struct {
	db       interfaces.DBTX
	userRepo interfaces.UserRepository
	invites  *InviteService
	hasher   *PasswordHasher
	logger   *zap.Logger
}

func NewBootstrapper(db interfaces.DBTX, userRepo interfaces.UserRepository, invites *InviteService, hasher *PasswordHasher, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{
		db:       db,
		userRepo: userRepo,
		invites:  invites,
		hasher:   hasher,
		logger:   logger.Named("Bootstrap"),
	}
}

// Run performs both steps and returns their combined errors. One failing step
// does not skip the other.
func (b *Bootstrapper) Run(ctx context.Context, cfg BootstrapConfig) error {
	var errs []error
	if cfg.InviteCode != "" {
		if err := b.ensureInviteCode(ctx, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.AdminUsername != "" {
		if err := b.ensureAdmin(ctx, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bootstrapper) ensureInviteCode(ctx context.Context, cfg BootstrapConfig) error {
	maxUses := cfg.InviteMaxUses
	created, err := b.invites.EnsureExists(ctx, CreateInviteCodeInput{Code: cfg.InviteCode, MaxUses: &maxUses})
	if err != nil {
		return fmt.Errorf("bootstrap invite code: %w", err)
	}
	if created {
		b.logger.Info("Bootstrap invite code created", zap.Int("maxUses", maxUses))
	} else {
		b.logger.Debug("Bootstrap invite code already present")
	}
	return nil
}

func (b *Bootstrapper) ensureAdmin(ctx context.Context, cfg BootstrapConfig) error {
	log := b.logger.With(zap.String("username", cfg.AdminUsername))

	_, err := b.userRepo.GetUserByUsername(ctx, b.db, cfg.AdminUsername)
	if err == nil {
		log.Debug("Bootstrap admin already present")
		return nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return fmt.Errorf("bootstrap admin lookup: %w", err)
	}

	if n := utf8.RuneCountInString(cfg.AdminUsername); n < minUsernameLength || n > maxUsernameLength {
		return fmt.Errorf("bootstrap admin: %w", models.NewValidationError("username must be 3-20 characters long"))
	}
	if utf8.RuneCountInString(cfg.AdminPassword) < minPasswordLength {
		return fmt.Errorf("bootstrap admin: %w", models.NewValidationError("password secret is missing or shorter than 6 characters"))
	}

	passwordHash, err := b.hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	admin := &models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: passwordHash,
		Avatar:       models.AvatarFor(cfg.AdminUsername),
		Roles:        []string{models.RoleUser, models.RoleAdmin},
	}
	if err := b.userRepo.CreateUser(ctx, b.db, admin); err != nil {
		if errors.Is(err, models.ErrUserAlreadyExists) {
			return nil
		}
		return fmt.Errorf("bootstrap admin create: %w", err)
	}
	log.Info("Bootstrap admin created", zap.String("userID", admin.ID.String()))
	return nil
}
