package integration

import (
	"context"
	"testing"
	"time"

	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/logger"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/notify"
	"github.com/schul92/worshipteam-api/internal/services"
	"github.com/schul92/worshipteam-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleService_Integration_PublishLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	svc := services.NewScheduleService(tdb.DB, notify.Nop{}, logger.Nop())
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team, err := teamSvc.Create(ctx, "Sunday Team", "UTC", owner.ID)
	require.NoError(t, err)

	draft, err := svc.CreateDraft(ctx, team.ID, owner.ID, services.CreateServiceInput{
		Name: "Sunday Worship",
		Date: time.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)

	published, err := svc.Publish(ctx, draft.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServicePublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	// draft is no longer a legal target
	_, err = svc.Publish(ctx, draft.ID, owner.ID)
	assert.True(t, apperrors.IsConflict(err))

	completed, err := svc.Complete(ctx, draft.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceCompleted, completed.Status)

	_, err = svc.Cancel(ctx, draft.ID, owner.ID)
	assert.True(t, apperrors.IsConflict(err))
}

func TestScheduleService_Integration_DeleteCascadesAssignments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	teamSvc := services.NewTeamService(tdb.DB)
	svc := services.NewScheduleService(tdb.DB, notify.Nop{}, logger.Nop())
	assignSvc := services.NewAssignmentService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)

	team, err := teamSvc.Create(ctx, "Sunday Team", "UTC", owner.ID)
	require.NoError(t, err)
	membership := fixtures.AddMember(t, team.ID, member.ID, models.RoleMember)
	role := fixtures.CreateRole(t, team.ID, "Vocals")

	service, err := svc.CreateDraft(ctx, team.ID, owner.ID, services.CreateServiceInput{
		Name: "Sunday Worship",
		Date: time.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	_, err = assignSvc.Create(ctx, service.ID, membership.ID, role.ID, owner.ID)
	require.NoError(t, err)

	count := fixtures.CountRows(t,
		"SELECT COUNT(*) FROM assignments WHERE service_id = $1", service.ID)
	require.Equal(t, 1, count)

	err = svc.Delete(ctx, service.ID, owner.ID)
	require.NoError(t, err)

	count = fixtures.CountRows(t,
		"SELECT COUNT(*) FROM assignments WHERE service_id = $1", service.ID)
	assert.Equal(t, 0, count)
}
