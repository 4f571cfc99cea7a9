package integration

import (
	"context"
	"testing"
	"time"

	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/services"
	"github.com/schul92/worshipteam-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferService_Integration_Complete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	svc := services.NewTransferService(tdb.DB, 24*time.Hour)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	successor := fixtures.CreateUser(t)

	team, err := teamSvc.Create(ctx, "Sunday Team", "America/Los_Angeles", owner.ID)
	require.NoError(t, err)
	fixtures.AddMember(t, team.ID, successor.ID, models.RoleMember)

	transfer, err := svc.Initiate(ctx, team.ID, owner.ID, successor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferPending, transfer.Status)

	completed, err := svc.Complete(ctx, transfer.ID, successor.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.TransferCompleted, completed.Status)

	// Ownership swapped on both the team row and the memberships
	fresh, err := teamSvc.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, successor.ID, fresh.OwnerID)

	role, err := teamSvc.ActiveRole(ctx, team.ID, successor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, role)

	priorRole, err := teamSvc.ActiveRole(ctx, team.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, priorRole)

	// Never more than one active owner, backed by the partial unique index
	owners := fixtures.CountRows(t,
		"SELECT COUNT(*) FROM memberships WHERE team_id = $1 AND role = 'owner' AND status = 'active'",
		team.ID)
	assert.Equal(t, 1, owners)
}

func TestTransferService_Integration_ExpiredCannotComplete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	svc := services.NewTransferService(tdb.DB, 24*time.Hour)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	successor := fixtures.CreateUser(t)

	team, err := teamSvc.Create(ctx, "Sunday Team", "UTC", owner.ID)
	require.NoError(t, err)
	fixtures.AddMember(t, team.ID, successor.ID, models.RoleMember)

	transfer, err := svc.Initiate(ctx, team.ID, owner.ID, successor.ID)
	require.NoError(t, err)

	fixtures.Backdate(t, "ownership_transfers", transfer.ID, time.Hour)

	_, err = svc.Complete(ctx, transfer.ID, successor.ID, models.RoleAdmin)
	assert.True(t, apperrors.IsConflict(err))

	// Expiry was persisted, not just observed
	got, err := svc.Get(ctx, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferExpired, got.Status)

	// Ownership untouched
	fresh, err := teamSvc.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, fresh.OwnerID)
}
