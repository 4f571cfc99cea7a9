package integration

import (
	"context"
	"testing"
	"time"

	"github.com/schul92/worshipteam-api/internal/logger"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/notify"
	"github.com/schul92/worshipteam-api/internal/services"
	"github.com/schul92/worshipteam-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityService_Integration_SetBulkReplacesExisting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	svc := services.NewAvailabilityService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)

	team, err := teamSvc.Create(ctx, "Sunday Team", "UTC", owner.ID)
	require.NoError(t, err)
	fixtures.AddMember(t, team.ID, member.ID, models.RoleMember)

	d1 := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)
	reason := "out of town"

	err = svc.SetBulk(ctx, team.ID, member.ID, []models.AvailabilityEntry{
		{Date: d1, IsAvailable: true},
		{Date: d2, IsAvailable: false, Reason: &reason},
	})
	require.NoError(t, err)

	// Repeating the same dates updates in place rather than duplicating
	err = svc.SetBulk(ctx, team.ID, member.ID, []models.AvailabilityEntry{
		{Date: d1, IsAvailable: false},
		{Date: d2, IsAvailable: true},
	})
	require.NoError(t, err)

	count := fixtures.CountRows(t,
		"SELECT COUNT(*) FROM availability WHERE team_id = $1 AND user_id = $2",
		team.ID, member.ID)
	assert.Equal(t, 2, count)

	entries, err := svc.ListMine(ctx, team.ID, member.ID, d1, d2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].IsAvailable)
	assert.True(t, entries[1].IsAvailable)
	assert.Nil(t, entries[1].Reason)
}

func TestAvailabilityService_Integration_PendingRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	scheduleSvc := services.NewScheduleService(tdb.DB, notify.Nop{}, logger.Nop())
	svc := services.NewAvailabilityService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)

	team, err := teamSvc.Create(ctx, "Sunday Team", "UTC", owner.ID)
	require.NoError(t, err)
	fixtures.AddMember(t, team.ID, member.ID, models.RoleMember)

	now := time.Now()
	first := now.AddDate(0, 0, 7)
	second := now.AddDate(0, 0, 14)

	_, err = scheduleSvc.CreateDraft(ctx, team.ID, owner.ID, services.CreateServiceInput{
		Name: "Sunday Worship", Date: first,
	})
	require.NoError(t, err)
	_, err = scheduleSvc.CreateDraft(ctx, team.ID, owner.ID, services.CreateServiceInput{
		Name: "Evening Prayer", Date: second,
	})
	require.NoError(t, err)

	// Respond to the first only
	err = svc.SetBulk(ctx, team.ID, member.ID, []models.AvailabilityEntry{
		{Date: first, IsAvailable: true},
	})
	require.NoError(t, err)

	result, err := svc.PendingRequests(ctx, team.ID, member.ID, now)
	require.NoError(t, err)
	assert.Len(t, result.Pending, 1)
	assert.Equal(t, "Evening Prayer", result.Pending[0].Service.Name)
	assert.Len(t, result.Responded, 1)
}
