package service

import (
	"errors"
	"fmt"
	"time"

	"invite-auth/internal/domain"
	"invite-auth/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager issues and verifies HS256 session tokens.
// Tokens are self-contained and never stored server-side.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. A nil now uses time.Now.
func NewTokenManager(secret string, ttl time.Duration, now func() time.Time) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	if now == nil {
		now = time.Now
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: now}, nil
}

// TTL is the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for the user that expires ttl after now.
func (m *TokenManager) Issue(userID uuid.UUID, username string, roles []string) (string, error) {
	issuedAt := m.now()
	claims := &domain.Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature and expiry of tokenString and returns the identity it carries.
// Errors are models.ErrTokenExpired, models.ErrTokenMalformed or models.ErrTokenInvalid.
func (m *TokenManager) Verify(tokenString string) (*domain.Identity, error) {
	claims := &domain.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, models.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.Username == "" {
		return nil, models.ErrTokenInvalid
	}
	return &domain.Identity{
		UserID:   userID,
		Username: claims.Username,
		Roles:    claims.Roles,
	}, nil
}
