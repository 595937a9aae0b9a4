package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const (
	pgUniqueViolation       = "23505"
	usersUsernameConstraint = "users_username_key"

	userColumns = `id, username, password_hash, avatar, email, roles, last_login_at, created_at`

	createUserQuery        = `INSERT INTO users (id, username, password_hash, avatar, email, roles) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	getUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	getUserByIDQuery       = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	touchLastLoginQuery    = `UPDATE users SET last_login_at = $2 WHERE id = $1`
)

type pgUserRepository struct {
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		logger: logger.Named("PgUserRepo"),
	}
}

// CreateUser inserts a new user. A duplicate username surfaces as ErrUserAlreadyExists.
func (r *pgUserRepository) CreateUser(ctx context.Context, querier interfaces.DBTX, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Roles = models.NormalizeRoles(user.Roles)

	r.logger.Debug("Executing query", zap.String("query", createUserQuery), zap.String("username", user.Username))
	err := querier.QueryRow(ctx, createUserQuery,
		user.ID, user.Username, user.PasswordHash, user.Avatar, user.Email, pq.Array(user.Roles),
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if pgErr.ConstraintName != usersUsernameConstraint {
				r.logger.Warn("Unique constraint violation on user insert",
					zap.String("username", user.Username), zap.String("constraint", pgErr.ConstraintName))
			} else {
				r.logger.Warn("Attempted to create duplicate user by username", zap.String("username", user.Username))
			}
			return models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}

	r.logger.Info("User created successfully", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return nil
}

// GetUserByUsername retrieves a user by their username.
func (r *pgUserRepository) GetUserByUsername(ctx context.Context, querier interfaces.DBTX, username string) (*models.User, error) {
	r.logger.Debug("Executing query", zap.String("query", getUserByUsernameQuery), zap.String("username", username))
	user := &models.User{}
	if err := pgxscan.Get(ctx, querier, user, getUserByUsernameQuery, username); err != nil {
		if pgxscan.NotFound(err) {
			r.logger.Debug("User not found by username", zap.String("username", username))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by username from postgres", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username from postgres: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, querier interfaces.DBTX, id uuid.UUID) (*models.User, error) {
	r.logger.Debug("Executing query", zap.String("query", getUserByIDQuery), zap.String("id", id.String()))
	user := &models.User{}
	if err := pgxscan.Get(ctx, querier, user, getUserByIDQuery, id); err != nil {
		if pgxscan.NotFound(err) {
			r.logger.Debug("User not found by ID", zap.String("id", id.String()))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

// TouchLastLogin records a successful login time.
func (r *pgUserRepository) TouchLastLogin(ctx context.Context, querier interfaces.DBTX, id uuid.UUID, at time.Time) error {
	r.logger.Debug("Executing query", zap.String("query", touchLastLoginQuery), zap.String("id", id.String()))
	cmdTag, err := querier.Exec(ctx, touchLastLoginQuery, id, at)
	if err != nil {
		r.logger.Error("Failed to update last login in postgres", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
