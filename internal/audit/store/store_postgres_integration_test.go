//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"contacthub/internal/audit"
	"contacthub/pkg/testutil/containers"
)

type PostgresAuditStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
}

func TestPostgresAuditStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresAuditStoreSuite))
}

func (s *PostgresAuditStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *PostgresAuditStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "audit_events"))
}

func (s *PostgresAuditStoreSuite) newEvent(userID uuid.UUID, action audit.Action, at time.Time) audit.Event {
	return audit.Event{
		ID:         uuid.New(),
		OccurredAt: at,
		UserID:     userID,
		Action:     action,
		Subject:    "subject",
	}
}

func (s *PostgresAuditStoreSuite) TestAppendAndListByUser() {
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Append(ctx, s.newEvent(alice, audit.ActionUserRegistered, now)))
	s.Require().NoError(s.store.Append(ctx, s.newEvent(alice, audit.ActionContactCreated, now.Add(time.Second))))
	s.Require().NoError(s.store.Append(ctx, s.newEvent(bob, audit.ActionUserLogin, now)))

	events, err := s.store.ListByUser(ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(audit.ActionUserRegistered, events[0].Action)
	s.Equal(audit.ActionContactCreated, events[1].Action)
	s.Equal(alice, events[0].UserID)
	s.True(events[0].OccurredAt.Equal(now))
}

func (s *PostgresAuditStoreSuite) TestListUnknownUser() {
	events, err := s.store.ListByUser(context.Background(), uuid.New())
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *PostgresAuditStoreSuite) TestAppendWithoutUser() {
	ctx := context.Background()
	event := s.newEvent(uuid.Nil, audit.ActionUserLogout, time.Now().UTC())

	// A nil user id is stored as NULL, not the zero uuid.
	s.Require().NoError(s.store.Append(ctx, event))

	events, err := s.store.ListByUser(ctx, uuid.Nil)
	s.Require().NoError(err)
	s.Empty(events)
}
