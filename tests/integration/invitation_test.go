package integration

import (
	"context"
	"testing"
	"time"

	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/services"
	"github.com/schul92/worshipteam-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationService_Integration_AcceptFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	svc := services.NewInvitationService(tdb.DB, 7*24*time.Hour)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	invitee := fixtures.CreateUser(t, testutil.WithEmail("invitee@example.com"))

	team, err := teamSvc.Create(ctx, "Sunday Team", "UTC", owner.ID)
	require.NoError(t, err)

	inv, err := svc.Create(ctx, team.ID, owner.ID, "invitee@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, inv.Status)
	assert.NotEmpty(t, inv.Token)

	joined, err := svc.Accept(ctx, inv.Token, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, joined.ID)

	role, err := teamSvc.ActiveRole(ctx, team.ID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, role)

	// A consumed token cannot be accepted again
	_, err = svc.Accept(ctx, inv.Token, invitee.ID)
	assert.ErrorIs(t, err, services.ErrInviteNotPending)
}

func TestInvitationService_Integration_LazyExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	svc := services.NewInvitationService(tdb.DB, 7*24*time.Hour)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team, err := teamSvc.Create(ctx, "Sunday Team", "UTC", owner.ID)
	require.NoError(t, err)

	inv, err := svc.Create(ctx, team.ID, owner.ID, "late@example.com")
	require.NoError(t, err)

	fixtures.Backdate(t, "invitations", inv.ID, time.Hour)

	// Reading past the deadline flips the row to expired and persists it
	got, err := svc.GetByToken(ctx, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationExpired, got.Status)

	status := fixtures.CountRows(t,
		"SELECT COUNT(*) FROM invitations WHERE id = $1 AND status = 'expired'", inv.ID)
	assert.Equal(t, 1, status)
}
