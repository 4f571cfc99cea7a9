package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAvailabilityService(t *testing.T) (*AvailabilityService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewAvailabilityService(db), mock
}

func TestAvailabilityService_SetBulk_SingleUpsertStatement(t *testing.T) {
	svc, mock := setupAvailabilityService(t)
	teamID := uuid.New()
	userID := uuid.New()

	d1 := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)
	reason := "out of town"
	entries := []models.AvailabilityEntry{
		{Date: d1, IsAvailable: true},
		{Date: d2, IsAvailable: false, Reason: &reason},
	}

	expectRole(mock, teamID, userID, models.RoleMember)
	mock.ExpectBegin()
	// All N dates travel in one statement: the write is atomic and a
	// retry after timeout replaces rather than duplicates.
	mock.ExpectExec(`INSERT INTO availability`).
		WithArgs(teamID, userID,
			[]time.Time{d1, d2}, []bool{true, false}, []*string{nil, &reason}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	err := svc.SetBulk(context.Background(), teamID, userID, entries)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityService_SetBulk_NonMemberDenied(t *testing.T) {
	svc, mock := setupAvailabilityService(t)
	teamID := uuid.New()
	userID := uuid.New()

	expectRole(mock, teamID, userID, "")

	err := svc.SetBulk(context.Background(), teamID, userID, []models.AvailabilityEntry{
		{Date: time.Now(), IsAvailable: true},
	})

	assert.True(t, apperrors.IsPermission(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityService_SetBulk_EmptyIsNoop(t *testing.T) {
	svc, mock := setupAvailabilityService(t)
	teamID := uuid.New()
	userID := uuid.New()

	expectRole(mock, teamID, userID, models.RoleMember)

	err := svc.SetBulk(context.Background(), teamID, userID, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityService_SetBulk_RollbackOnFailure(t *testing.T) {
	svc, mock := setupAvailabilityService(t)
	teamID := uuid.New()
	userID := uuid.New()

	expectRole(mock, teamID, userID, models.RoleMember)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO availability`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := svc.SetBulk(context.Background(), teamID, userID, []models.AvailabilityEntry{
		{Date: time.Now(), IsAvailable: true},
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityService_PendingRequests(t *testing.T) {
	svc, mock := setupAvailabilityService(t)
	teamID := uuid.New()
	userID := uuid.New()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	typeID := uuid.New()
	created := time.Now()

	expectRole(mock, teamID, userID, models.RoleMember)

	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	answered := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)
	drafts := pgxmock.NewRows(serviceColumnList).
		AddRow(uuid.New(), teamID, &typeID, "3/15 Sunday Worship", sunday,
			(*string)(nil), (*string)(nil), (*time.Time)(nil), (*string)(nil),
			models.ServiceDraft, (*time.Time)(nil), created, created).
		AddRow(uuid.New(), teamID, &typeID, "3/22 Sunday Worship", answered,
			(*string)(nil), (*string)(nil), (*time.Time)(nil), (*string)(nil),
			models.ServiceDraft, (*time.Time)(nil), created, created)
	mock.ExpectQuery(`SELECT .+ FROM services\s+WHERE team_id = \$1 AND status = 'draft'`).
		WithArgs(teamID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(drafts)

	types := pgxmock.NewRows([]string{"id", "team_id", "name", "default_weekday", "display_order", "is_active", "created_at"}).
		AddRow(typeID, teamID, "Sunday Worship", 0, 0, true, created)
	mock.ExpectQuery(`SELECT .+ FROM service_types`).
		WithArgs(teamID).
		WillReturnRows(types)

	avail := pgxmock.NewRows([]string{"id", "team_id", "user_id", "date", "is_available", "reason", "created_at", "updated_at"}).
		AddRow(uuid.New(), teamID, userID, answered, true, (*string)(nil), created, created)
	mock.ExpectQuery(`SELECT .+ FROM availability`).
		WithArgs(teamID, userID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(avail)

	result, err := svc.PendingRequests(context.Background(), teamID, userID, now)

	require.NoError(t, err)
	require.Len(t, result.Pending, 1)
	assert.Equal(t, "3/15 Sunday Worship", result.Pending[0].Service.Name)
	require.Len(t, result.Responded, 1)
	assert.True(t, result.Responded[0].IsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityService_Dashboard_MemberDenied(t *testing.T) {
	svc, mock := setupAvailabilityService(t)
	teamID := uuid.New()
	actorID := uuid.New()

	expectRole(mock, teamID, actorID, models.RoleMember)

	_, err := svc.Dashboard(context.Background(), teamID, actorID, time.Now())

	assert.True(t, apperrors.IsPermission(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
