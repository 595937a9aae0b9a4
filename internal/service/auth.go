package service

import (
	"context"

	"invite-auth/internal/domain"
	"invite-auth/shared/models"

	"github.com/google/uuid"
)

// RegisterInput is a registration request after JSON decoding.
type RegisterInput struct {
	Username   string
	Password   string
	InviteCode string
	Email      string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  *models.User
}

// AuthService defines the authentication use cases.
type AuthService interface {
	ValidateInviteCode(ctx context.Context, code string) (bool, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*domain.Identity, error)
	UserInfo(ctx context.Context, userID uuid.UUID) (*models.User, error)
	CreateInviteCode(ctx context.Context, input CreateInviteCodeInput) (*models.InviteCode, error)
}
