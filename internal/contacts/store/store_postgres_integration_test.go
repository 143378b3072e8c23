//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"contacthub/internal/contacts/models"
	"contacthub/pkg/platform/sentinel"
	"contacthub/pkg/testutil/containers"
)

type PostgresContactStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	owner uuid.UUID
}

func TestPostgresContactStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresContactStoreSuite))
}

func (s *PostgresContactStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *PostgresContactStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "contacts", "users"))

	// Contacts reference their owner; seed one user per test.
	s.owner = uuid.New()
	_, err := s.pg.DB.ExecContext(context.Background(),
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.owner, "owner", s.owner.String()+"@example.com", "hash", time.Now().UTC())
	s.Require().NoError(err)
}

func (s *PostgresContactStoreSuite) newContact(name string) *models.Contact {
	contact, err := models.NewContact(uuid.New(), s.owner, name, name+"@example.com", "555-0100", time.Now().UTC())
	s.Require().NoError(err)
	return contact
}

func (s *PostgresContactStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	contact := s.newContact("ada")

	s.Require().NoError(s.store.Create(ctx, contact))

	got, err := s.store.FindByID(ctx, contact.ID)
	s.Require().NoError(err)
	s.Equal("ada", got.Name)
	s.Equal(s.owner, got.OwnerID)
}

func (s *PostgresContactStoreSuite) TestListByOwner() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newContact("a1")))
	s.Require().NoError(s.store.Create(ctx, s.newContact("a2")))

	list, err := s.store.ListByOwner(ctx, s.owner)
	s.Require().NoError(err)
	s.Len(list, 2)

	empty, err := s.store.ListByOwner(ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *PostgresContactStoreSuite) TestUpdate() {
	ctx := context.Background()
	contact := s.newContact("ada")
	s.Require().NoError(s.store.Create(ctx, contact))

	contact.Phone = "555-0199"
	contact.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.store.Update(ctx, contact))

	got, err := s.store.FindByID(ctx, contact.ID)
	s.Require().NoError(err)
	s.Equal("555-0199", got.Phone)
}

func (s *PostgresContactStoreSuite) TestUpdateMissing() {
	err := s.store.Update(context.Background(), s.newContact("ghost"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresContactStoreSuite) TestDelete() {
	ctx := context.Background()
	contact := s.newContact("ada")
	s.Require().NoError(s.store.Create(ctx, contact))

	s.Require().NoError(s.store.Delete(ctx, contact.ID))

	_, err := s.store.FindByID(ctx, contact.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, contact.ID), sentinel.ErrNotFound)
}
