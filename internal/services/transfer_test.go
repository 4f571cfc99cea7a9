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

func setupTransferService(t *testing.T) (*TransferService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewTransferService(db, 24*time.Hour), mock
}

var transferColumnList = []string{"id", "team_id", "from_user_id", "to_user_id",
	"status", "expires_at", "created_at", "updated_at"}

func transferRow(id, teamID, fromID, toID uuid.UUID, status string, expiresAt time.Time) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(transferColumnList).
		AddRow(id, teamID, fromID, toID, status, expiresAt, now, now)
}

func TestTransferService_Initiate_AdminDenied(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	fromID := uuid.New()

	expectRole(mock, teamID, fromID, models.RoleAdmin)

	_, err := svc.Initiate(context.Background(), teamID, fromID, uuid.New())

	assert.True(t, apperrors.IsPermission(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Initiate_TargetMustBeActive(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	fromID := uuid.New()
	toID := uuid.New()

	expectRole(mock, teamID, fromID, models.RoleOwner)
	expectRole(mock, teamID, toID, "")

	_, err := svc.Initiate(context.Background(), teamID, fromID, toID)

	assert.True(t, apperrors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Initiate(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	fromID := uuid.New()
	toID := uuid.New()

	expectRole(mock, teamID, fromID, models.RoleOwner)
	expectRole(mock, teamID, toID, models.RoleMember)
	mock.ExpectQuery(`INSERT INTO ownership_transfers`).
		WithArgs(teamID, fromID, toID, "86400 seconds").
		WillReturnRows(transferRow(uuid.New(), teamID, fromID, toID, models.TransferPending, time.Now().Add(24*time.Hour)))

	transfer, err := svc.Initiate(context.Background(), teamID, fromID, toID)

	require.NoError(t, err)
	assert.Equal(t, models.TransferPending, transfer.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Complete_SwapsInOneTransaction(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	fromID := uuid.New()
	toID := uuid.New()
	transferID := uuid.New()
	expires := time.Now().Add(time.Hour)

	mock.ExpectQuery(`SELECT .+ FROM ownership_transfers WHERE id = \$1`).
		WithArgs(transferID).
		WillReturnRows(transferRow(transferID, teamID, fromID, toID, models.TransferPending, expires))
	mock.ExpectBegin()
	// Prior owner steps down before the new owner steps up, so at no
	// point do two active owner rows exist.
	mock.ExpectExec(`UPDATE memberships SET role = \$1`).
		WithArgs(models.RoleAdmin, teamID, fromID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE memberships SET role = 'owner'`).
		WithArgs(teamID, toID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE teams SET owner_id = \$1`).
		WithArgs(toID, teamID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`UPDATE ownership_transfers SET status = 'completed'`).
		WithArgs(transferID).
		WillReturnRows(transferRow(transferID, teamID, fromID, toID, models.TransferCompleted, expires))
	mock.ExpectCommit()

	completed, err := svc.Complete(context.Background(), transferID, toID, models.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, models.TransferCompleted, completed.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Complete_OnlyReceiver(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	fromID := uuid.New()
	toID := uuid.New()
	transferID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM ownership_transfers WHERE id = \$1`).
		WithArgs(transferID).
		WillReturnRows(transferRow(transferID, teamID, fromID, toID, models.TransferPending, time.Now().Add(time.Hour)))

	// The initiating owner cannot complete their own transfer.
	_, err := svc.Complete(context.Background(), transferID, fromID, models.RoleMember)

	assert.True(t, apperrors.IsPermission(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Complete_RejectsOwnerAsPriorRole(t *testing.T) {
	svc, mock := setupTransferService(t)

	_, err := svc.Complete(context.Background(), uuid.New(), uuid.New(), models.RoleOwner)

	assert.True(t, apperrors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Complete_ExpiredPersistedAndConflicts(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	toID := uuid.New()
	transferID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM ownership_transfers WHERE id = \$1`).
		WithArgs(transferID).
		WillReturnRows(transferRow(transferID, teamID, uuid.New(), toID, models.TransferPending, time.Now().Add(-time.Minute)))
	mock.ExpectExec(`UPDATE ownership_transfers SET status = 'expired'`).
		WithArgs(transferID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	_, err := svc.Complete(context.Background(), transferID, toID, models.RoleAdmin)

	assert.True(t, apperrors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Complete_OwnerChangedUnderneath(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	fromID := uuid.New()
	toID := uuid.New()
	transferID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM ownership_transfers WHERE id = \$1`).
		WithArgs(transferID).
		WillReturnRows(transferRow(transferID, teamID, fromID, toID, models.TransferPending, time.Now().Add(time.Hour)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE memberships SET role = \$1`).
		WithArgs(models.RoleMember, teamID, fromID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := svc.Complete(context.Background(), transferID, toID, models.RoleMember)

	assert.True(t, apperrors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferService_Cancel_OnlyInitiator(t *testing.T) {
	svc, mock := setupTransferService(t)
	teamID := uuid.New()
	fromID := uuid.New()
	toID := uuid.New()
	transferID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM ownership_transfers WHERE id = \$1`).
		WithArgs(transferID).
		WillReturnRows(transferRow(transferID, teamID, fromID, toID, models.TransferPending, time.Now().Add(time.Hour)))

	err := svc.Cancel(context.Background(), transferID, toID)

	assert.True(t, apperrors.IsPermission(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
