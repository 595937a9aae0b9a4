package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"invite-auth/shared/database"
	"invite-auth/shared/interfaces"
	"invite-auth/shared/models"

	"github.com/docker/docker/client"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	logger      *zap.Logger
	userRepo    interfaces.UserRepository
	inviteRepo  interfaces.InviteCodeRepository
	txHelper    *database.TransactionHelper
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err)

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	require.NoError(s.T(), database.RunMigrations(pgConnStr, s.logger), "Failed to run migrations")
	// Applying twice must be a no-op.
	require.NoError(s.T(), database.RunMigrations(pgConnStr, s.logger))

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err)

	s.userRepo = database.NewPgUserRepository(s.logger)
	s.inviteRepo = database.NewPgInviteCodeRepository(s.logger)
	s.txHelper = database.NewTransactionHelper(s.pgPool, s.logger)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE invite_codes, users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err)
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Skipf("Docker client init error: %v", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		cli.Close()
		t.Skipf("Docker daemon is not accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) newUser(username string) *models.User {
	return &models.User{
		Username:     username,
		PasswordHash: "$2a$10$notarealhashbutlongenough",
		Avatar:       models.AvatarFor(username),
		Roles:        models.DefaultRoles(),
	}
}

func (s *RepositoryIntegrationSuite) TestCreateAndGetUser() {
	t := s.T()
	email := "alice@example.com"
	user := s.newUser("alice")
	user.Email = &email
	user.Roles = []string{"user", "admin", "user"}

	require.NoError(t, s.userRepo.CreateUser(s.ctx, s.pgPool, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := s.userRepo.GetUserByUsername(s.ctx, s.pgPool, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "A", byName.Avatar)
	assert.Equal(t, []string{"user", "admin"}, byName.Roles)
	require.NotNil(t, byName.Email)
	assert.Equal(t, email, *byName.Email)
	assert.Nil(t, byName.LastLoginAt)

	byID, err := s.userRepo.GetUserByID(s.ctx, s.pgPool, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func (s *RepositoryIntegrationSuite) TestGetUser_NotFound() {
	_, err := s.userRepo.GetUserByUsername(s.ctx, s.pgPool, "ghost")
	assert.ErrorIs(s.T(), err, models.ErrUserNotFound)

	_, err = s.userRepo.GetUserByID(s.ctx, s.pgPool, uuid.New())
	assert.ErrorIs(s.T(), err, models.ErrUserNotFound)
}

func (s *RepositoryIntegrationSuite) TestCreateUser_Duplicate() {
	t := s.T()
	require.NoError(t, s.userRepo.CreateUser(s.ctx, s.pgPool, s.newUser("bob")))
	err := s.userRepo.CreateUser(s.ctx, s.pgPool, s.newUser("bob"))
	assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
}

func (s *RepositoryIntegrationSuite) TestCreateUser_ConcurrentDuplicate() {
	t := s.T()
	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.userRepo.CreateUser(s.ctx, s.pgPool, s.newUser("carol"))
		}(i)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, models.ErrUserAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func (s *RepositoryIntegrationSuite) TestTouchLastLogin() {
	t := s.T()
	user := s.newUser("dave")
	require.NoError(t, s.userRepo.CreateUser(s.ctx, s.pgPool, user))

	at := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.userRepo.TouchLastLogin(s.ctx, s.pgPool, user.ID, at))

	got, err := s.userRepo.GetUserByID(s.ctx, s.pgPool, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, at.Equal(*got.LastLoginAt))

	err = s.userRepo.TouchLastLogin(s.ctx, s.pgPool, uuid.New(), at)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func (s *RepositoryIntegrationSuite) createInvite(code string, maxUses int, status models.InviteCodeStatus, expire *time.Time) {
	invite := &models.InviteCode{Code: code, MaxUses: maxUses, Status: status, ExpireDate: expire}
	require.NoError(s.T(), s.inviteRepo.Create(s.ctx, s.pgPool, invite))
	require.NotZero(s.T(), invite.ID)
}

func (s *RepositoryIntegrationSuite) TestInviteCode_ConsumeUntilExhausted() {
	t := s.T()
	now := time.Now()
	s.createInvite("VALIDCODE", 1, models.InviteCodeActive, nil)

	consumed, err := s.inviteRepo.Consume(s.ctx, s.pgPool, "VALIDCODE", now)
	require.NoError(t, err)
	assert.Equal(t, 1, consumed.Used)

	got, err := s.inviteRepo.GetByCode(s.ctx, s.pgPool, "VALIDCODE")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Used)
	assert.False(t, got.IsConsumable(now))

	_, err = s.inviteRepo.Consume(s.ctx, s.pgPool, "VALIDCODE", now)
	assert.ErrorIs(t, err, models.ErrInviteCodeExhausted)
}

func (s *RepositoryIntegrationSuite) TestInviteCode_ConsumeReasons() {
	t := s.T()
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := now

	s.createInvite("INACTIVE", 5, models.InviteCodeInactive, nil)
	s.createInvite("EXPIRED", 5, models.InviteCodeActive, &yesterday)
	s.createInvite("TODAY", 5, models.InviteCodeActive, &today)
	s.createInvite("UNLIMITED", models.UnlimitedUses, models.InviteCodeActive, nil)

	_, err := s.inviteRepo.Consume(s.ctx, s.pgPool, "MISSING", now)
	assert.ErrorIs(t, err, models.ErrInviteCodeNotFound)

	_, err = s.inviteRepo.Consume(s.ctx, s.pgPool, "INACTIVE", now)
	assert.ErrorIs(t, err, models.ErrInviteCodeInactive)

	_, err = s.inviteRepo.Consume(s.ctx, s.pgPool, "EXPIRED", now)
	assert.ErrorIs(t, err, models.ErrInviteCodeExpired)

	_, err = s.inviteRepo.Consume(s.ctx, s.pgPool, "TODAY", now)
	assert.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = s.inviteRepo.Consume(s.ctx, s.pgPool, "UNLIMITED", now)
		require.NoError(t, err)
	}
}

func (s *RepositoryIntegrationSuite) TestInviteCode_ConcurrentConsumeNeverExceedsMaxUses() {
	t := s.T()
	const maxUses, workers = 3, 12
	s.createInvite("RACE", maxUses, models.InviteCodeActive, nil)
	now := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.inviteRepo.Consume(s.ctx, s.pgPool, "RACE", now)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, models.ErrInviteCodeExhausted)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, maxUses, succeeded)
	got, err := s.inviteRepo.GetByCode(s.ctx, s.pgPool, "RACE")
	require.NoError(t, err)
	assert.Equal(t, maxUses, got.Used)
}

func (s *RepositoryIntegrationSuite) TestInviteCode_CreateDuplicateAndCreator() {
	t := s.T()
	creator := s.newUser("admin")
	require.NoError(t, s.userRepo.CreateUser(s.ctx, s.pgPool, creator))

	invite := &models.InviteCode{Code: "FROMADMIN", MaxUses: 2, CreatedBy: &creator.ID}
	require.NoError(t, s.inviteRepo.Create(s.ctx, s.pgPool, invite))
	assert.Equal(t, models.InviteCodeActive, invite.Status)

	got, err := s.inviteRepo.GetByCode(s.ctx, s.pgPool, "FROMADMIN")
	require.NoError(t, err)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, creator.ID, *got.CreatedBy)

	err = s.inviteRepo.Create(s.ctx, s.pgPool, &models.InviteCode{Code: "FROMADMIN", MaxUses: 1})
	assert.ErrorIs(t, err, models.ErrInviteCodeAlreadyExists)
}

func (s *RepositoryIntegrationSuite) TestTransaction_RollsBackConsumeOnDuplicateUser() {
	t := s.T()
	now := time.Now()
	s.createInvite("TXCODE", 5, models.InviteCodeActive, nil)
	require.NoError(t, s.userRepo.CreateUser(s.ctx, s.pgPool, s.newUser("erin")))

	err := s.txHelper.WithTransaction(s.ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		if _, err := s.inviteRepo.Consume(ctx, tx, "TXCODE", now); err != nil {
			return err
		}
		return s.userRepo.CreateUser(ctx, tx, s.newUser("erin"))
	})
	assert.ErrorIs(t, err, models.ErrUserAlreadyExists)

	got, err := s.inviteRepo.GetByCode(s.ctx, s.pgPool, "TXCODE")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Used, "consumption must be rolled back with the failed insert")
}
