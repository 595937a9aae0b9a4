package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"invite-auth/internal/domain"
	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

const (
	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordLength = 6
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	db       interfaces.DBTX
	txm      interfaces.TxManager
	userRepo interfaces.UserRepository
	invites  *InviteService
	hasher   *PasswordHasher
	tokens   *TokenManager
	now      func() time.Time
	logger   *zap.Logger
}

// NewAuthService wires the authentication use cases. Reads outside a
// transaction go to db; registration runs through txm. A nil now uses time.Now.
func NewAuthService(
	db interfaces.DBTX,
	txm interfaces.TxManager,
	userRepo interfaces.UserRepository,
	invites *InviteService,
	hasher *PasswordHasher,
	tokens *TokenManager,
	now func() time.Time,
	logger *zap.Logger,
) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authServiceImpl{
		db:       db,
		txm:      txm,
		userRepo: userRepo,
		invites:  invites,
		hasher:   hasher,
		tokens:   tokens,
		now:      now,
		logger:   logger.Named("AuthService"),
	}
}

// ValidateInviteCode reports whether the code is consumable. It never consumes it.
func (s *authServiceImpl) ValidateInviteCode(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, models.NewValidationError("invite code is required")
	}
	valid, err := s.invites.IsConsumable(ctx, code)
	if err != nil {
		s.logger.Error("Failed to validate invite code", zap.Error(err))
		return false, err
	}
	return valid, nil
}

// Register creates the user and consumes one use of the invite code in a
// single transaction, then issues a session token.
func (s *authServiceImpl) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	logFields := []zap.Field{zap.String("username", input.Username)}

	email, err := validateRegisterInput(input)
	if err != nil {
		s.logger.Debug("Registration rejected by validation", append(logFields, zap.Error(err))...)
		return nil, err
	}

	if err := s.precheckRegistration(ctx, input); err != nil {
		if isRegistrationRejection(err) {
			s.logger.Info("Registration rejected before hashing", append(logFields, zap.Error(err))...)
			return nil, err
		}
		s.logger.Error("Registration precheck failed", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: passwordHash,
		Avatar:       models.AvatarFor(input.Username),
		Email:        email,
		Roles:        models.DefaultRoles(),
	}

	err = s.txm.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		if _, err := s.invites.Consume(ctx, tx, input.InviteCode); err != nil {
			return err
		}
		return s.userRepo.CreateUser(ctx, tx, user)
	})
	if err != nil {
		if isRegistrationRejection(err) {
			s.logger.Info("Registration rejected", append(logFields, zap.Error(err))...)
			return nil, err
		}
		s.logger.Error("Registration transaction failed", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Roles)
	if err != nil {
		s.logger.Error("Failed to issue token after registration", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return &AuthResult{Token: token, User: user}, nil
}

// Login checks the credentials, records the login time and issues a session token.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required")
	}
	logFields := []zap.Field{zap.String("username", username)}

	user, err := s.userRepo.GetUserByUsername(ctx, s.db, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.hasher.VerifyAbsent(password)
			s.logger.Warn("Login failed: user not found", logFields...)
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn("Login failed: invalid password", append(logFields, zap.String("userID", user.ID.String()))...)
		return nil, models.ErrInvalidCredentials
	}

	loginAt := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, s.db, user.ID, loginAt); err != nil {
		s.logger.Warn("Failed to update last login time", append(logFields, zap.Error(err))...)
	} else {
		user.LastLoginAt = &loginAt
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Roles)
	if err != nil {
		s.logger.Error("Failed to issue token on login", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("User logged in successfully", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return &AuthResult{Token: token, User: user}, nil
}

// VerifyToken checks a session token without touching the store.
func (s *authServiceImpl) VerifyToken(_ context.Context, token string) (*domain.Identity, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("Token verification failed", zap.Error(err))
		return nil, err
	}
	return identity, nil
}

// UserInfo loads the profile of an authenticated user.
func (s *authServiceImpl) UserInfo(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Token subject no longer exists", zap.String("userID", userID.String()))
			return nil, err
		}
		s.logger.Error("Failed to load user info", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateInviteCode issues a new invite code.
func (s *authServiceImpl) CreateInviteCode(ctx context.Context, input CreateInviteCodeInput) (*models.InviteCode, error) {
	invite, err := s.invites.Create(ctx, input)
	if err != nil {
		if !errors.Is(err, models.ErrInvalidInput) && !errors.Is(err, models.ErrInviteCodeAlreadyExists) {
			s.logger.Error("Failed to create invite code", zap.Error(err))
		}
		return nil, err
	}
	return invite, nil
}

// precheckRegistration rejects a dead invite code or a taken username before
// any hashing. The transaction in Register stays authoritative for both.
func (s *authServiceImpl) precheckRegistration(ctx context.Context, input RegisterInput) error {
	if err := s.invites.CheckConsumable(ctx, input.InviteCode); err != nil {
		return err
	}
	_, err := s.userRepo.GetUserByUsername(ctx, s.db, input.Username)
	switch {
	case err == nil:
		return models.ErrUserAlreadyExists
	case errors.Is(err, models.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check username: %w", err)
	}
}

func isRegistrationRejection(err error) bool {
	return errors.Is(err, models.ErrUserAlreadyExists) ||
		errors.Is(err, models.ErrInviteCodeNotFound) ||
		errors.Is(err, models.ErrInviteCodeExhausted) ||
		errors.Is(err, models.ErrInviteCodeExpired) ||
		errors.Is(err, models.ErrInviteCodeInactive)
}

// validateRegisterInput checks the request shape and returns the normalized
// email, nil when none was given.
func validateRegisterInput(input RegisterInput) (*string, error) {
	if input.Username == "" || input.Password == "" || input.InviteCode == "" {
		return nil, models.NewValidationError("username, password and invite code are required")
	}
	if n := utf8.RuneCountInString(input.Username); n < minUsernameLength || n > maxUsernameLength {
		return nil, models.NewValidationError("username must be 3-20 characters long")
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return nil, models.NewValidationError("password must be at least 6 characters long")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, models.NewValidationError("email format is invalid")
	}
	return &email, nil
}
