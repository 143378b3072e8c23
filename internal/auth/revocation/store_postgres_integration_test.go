//go:build integration

package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contacthub/pkg/testutil/containers"
)

type PostgresTRLSuite struct {
	suite.Suite
	pg  *containers.PostgresContainer
	now time.Time
	trl *PostgresTRL
}

func TestPostgresTRLSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTRLSuite))
}

func (s *PostgresTRLSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
}

func (s *PostgresTRLSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "token_revocations"))
	s.now = time.Now().UTC()
	s.trl = NewPostgresTRL(s.pg.DB, WithPostgresClock(func() time.Time { return s.now }))
}

func (s *PostgresTRLSuite) TestRevokeAndCheck() {
	ctx := context.Background()

	s.Require().NoError(s.trl.Revoke(ctx, "jti-1", time.Minute))

	revoked, err := s.trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	revoked, err = s.trl.IsRevoked(ctx, "jti-unknown")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *PostgresTRLSuite) TestRevokeAgainExtendsEntry() {
	ctx := context.Background()

	s.Require().NoError(s.trl.Revoke(ctx, "jti-1", time.Minute))
	s.Require().NoError(s.trl.Revoke(ctx, "jti-1", time.Hour))

	s.now = s.now.Add(30 * time.Minute)
	revoked, err := s.trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked, "upsert must keep the later expiry")
}

func (s *PostgresTRLSuite) TestEntryExpiresWithToken() {
	ctx := context.Background()

	s.Require().NoError(s.trl.Revoke(ctx, "jti-short", time.Minute))

	s.now = s.now.Add(2 * time.Minute)
	revoked, err := s.trl.IsRevoked(ctx, "jti-short")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *PostgresTRLSuite) TestDeleteExpired() {
	ctx := context.Background()

	s.Require().NoError(s.trl.Revoke(ctx, "jti-old", time.Minute))
	s.Require().NoError(s.trl.Revoke(ctx, "jti-live", time.Hour))

	s.now = s.now.Add(10 * time.Minute)
	deleted, err := s.trl.DeleteExpired(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	// The live entry survives the sweep.
	revoked, err := s.trl.IsRevoked(ctx, "jti-live")
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *PostgresTRLSuite) TestRevokeRejectsBadTTL() {
	ctx := context.Background()
	s.Error(s.trl.Revoke(ctx, "jti", 0))
	s.Error(s.trl.Revoke(ctx, "jti", 48*time.Hour))
}
