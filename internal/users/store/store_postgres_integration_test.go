//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"contacthub/internal/users/models"
	"contacthub/pkg/platform/sentinel"
	"contacthub/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "users"))
}

func (s *PostgresUserStoreSuite) newUser(username, email string) *models.User {
	user, err := models.NewUser(uuid.New(), username, email, "$2a$10$fakehashfakehashfakehash", time.Now().UTC())
	s.Require().NoError(err)
	return user
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	user := s.newUser("ada", "ada@example.com")

	s.Require().NoError(s.store.Create(ctx, user))

	byEmail, err := s.store.FindByEmail(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)
	s.Equal("ada", byEmail.Username)

	byID, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("ada@example.com", byID.Email)
}

func (s *PostgresUserStoreSuite) TestDuplicateEmailConflict() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newUser("ada", "ada@example.com")))

	err := s.store.Create(ctx, s.newUser("imposter", "ada@example.com"))
	s.Require().Error(err)
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresUserStoreSuite) TestFindMissing() {
	ctx := context.Background()

	_, err := s.store.FindByEmail(ctx, "nobody@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByID(ctx, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
