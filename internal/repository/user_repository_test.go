package repository_test

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type userRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.UserRepository
	container testcontainers.Container
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(userRepositorySuite))
}

func (suite *userRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewUser(suite.pool)
}

func (suite *userRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *userRepositorySuite) TestCreateUser() {
	existing, err := suite.repo.CreateUser(suite.T().Context(), randomIdentity())
	suite.Require().NoError(err)

	tests := []struct {
		name         string
		identityFunc func() domain.Identity
		wantError    error
		wantErrorMsg string
	}{
		{
			name:         "regular user: ok",
			identityFunc: randomIdentity,
		},
		{
			name: "admin: ok",
			identityFunc: func() domain.Identity {
				i := randomIdentity()
				i.Role = domain.RoleAdmin
				return i
			},
		},
		{
			name: "mixed case email is lower-cased: ok",
			identityFunc: func() domain.Identity {
				i := randomIdentity()
				i.Email = " " + strings.ToUpper(i.Email) + " "
				return i
			},
		},
		{
			name: "existing email in another case: fail",
			identityFunc: func() domain.Identity {
				i := randomIdentity()
				i.Email = strings.ToUpper(existing.Email)
				return i
			},
			wantError: domain.ErrEmailExists,
		},
		{
			name: "empty password hash: fail",
			identityFunc: func() domain.Identity {
				i := randomIdentity()
				i.PasswordHash = ""
				return i
			},
			wantErrorMsg: "password hash is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ttIdentity := tt.identityFunc()

			created, err := suite.repo.CreateUser(ctx, ttIdentity)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			if tt.wantErrorMsg != "" {
				require.EqualError(t, err, tt.wantErrorMsg)
				return
			}
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.False(t, created.CreatedAt.IsZero())

			ttIdentity.Email = domain.NormalizeEmail(ttIdentity.Email)
			assertIdentity(t, ttIdentity, created)

			byID, err := suite.repo.GetUser(ctx, created.ID)
			require.NoError(t, err)
			assertIdentity(t, created, byID)

			byEmail, err := suite.repo.GetUserByEmail(ctx, strings.ToUpper(created.Email))
			require.NoError(t, err)
			assertIdentity(t, created, byEmail)
		})
	}
}

func (suite *userRepositorySuite) TestGetUserNotFound() {
	t := suite.T()
	ctx := t.Context()

	_, err := suite.repo.GetUser(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = suite.repo.GetUserByEmail(ctx, gofakeit.Email())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func randomIdentity() domain.Identity {
	return domain.Identity{
		Name:         gofakeit.Name(),
		Email:        domain.NormalizeEmail(gofakeit.Email()),
		PasswordHash: "$2a$04$" + gofakeit.LetterN(53),
		Role:         domain.RoleUser,
	}
}

func assertIdentity(t *testing.T, expected, actual domain.Identity) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cmpopts.IgnoreFields(domain.Identity{}, "ID", "CreatedAt"))
	assert.Empty(t, diff)
}
