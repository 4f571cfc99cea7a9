package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTeamService(t *testing.T) (*TeamService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewTeamService(db), mock
}

func teamRow(teamID, ownerID uuid.UUID, name string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "name", "color", "timezone", "owner_id", "invite_code", "settings", "created_at", "updated_at"}).
		AddRow(teamID, name, (*string)(nil), "UTC", ownerID, "ABCD2345", json.RawMessage(`{}`), now, now)
}

func expectRole(mock pgxmock.PgxPoolIface, teamID, userID uuid.UUID, role string) {
	rows := pgxmock.NewRows([]string{"role"})
	if role != "" {
		rows.AddRow(role)
	}
	q := mock.ExpectQuery(`SELECT role FROM memberships`).WithArgs(teamID, userID)
	if role == "" {
		q.WillReturnError(pgx.ErrNoRows)
		return
	}
	q.WillReturnRows(rows)
}

func TestTeamService_Create(t *testing.T) {
	svc, mock := setupTeamService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	teamID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("Grace Worship", "America/Los_Angeles", ownerID, pgxmock.AnyArg()).
		WillReturnRows(teamRow(teamID, ownerID, "Grace Worship"))
	mock.ExpectExec(`INSERT INTO memberships`).
		WithArgs(teamID, ownerID, models.RoleOwner, models.MembershipActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	team, err := svc.Create(ctx, "Grace Worship", "America/Los_Angeles", ownerID)

	require.NoError(t, err)
	assert.Equal(t, teamID, team.ID)
	assert.Equal(t, ownerID, team.OwnerID)
	assert.Len(t, team.InviteCode, 8)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Create_RollbackOnMembershipFailure(t *testing.T) {
	svc, mock := setupTeamService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	teamID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("Grace Worship", "UTC", ownerID, pgxmock.AnyArg()).
		WillReturnRows(teamRow(teamID, ownerID, "Grace Worship"))
	mock.ExpectExec(`INSERT INTO memberships`).
		WithArgs(teamID, ownerID, models.RoleOwner, models.MembershipActive).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := svc.Create(ctx, "Grace Worship", "", ownerID)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupTeamService(t)
	teamID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM teams WHERE id`).
		WithArgs(teamID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), teamID)

	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_GetUserTeams_ActiveOnly(t *testing.T) {
	svc, mock := setupTeamService(t)
	userID := uuid.New()
	teamID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "name", "color", "timezone", "owner_id", "invite_code", "settings", "created_at", "updated_at", "role"}).
		AddRow(teamID, "Grace Worship", (*string)(nil), "UTC", userID, "ABCD2345", json.RawMessage(`{}`), now, now, models.RoleOwner)

	mock.ExpectQuery(`SELECT .+ FROM teams t\s+JOIN memberships m`).
		WithArgs(userID).
		WillReturnRows(rows)

	teams, roles, err := svc.GetUserTeams(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, models.RoleOwner, roles[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Delete_OwnerOnly(t *testing.T) {
	svc, mock := setupTeamService(t)
	teamID := uuid.New()
	actorID := uuid.New()

	expectRole(mock, teamID, actorID, models.RoleAdmin)

	err := svc.Delete(context.Background(), teamID, actorID)

	assert.True(t, apperrors.IsPermission(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Delete_AsOwner(t *testing.T) {
	svc, mock := setupTeamService(t)
	teamID := uuid.New()
	actorID := uuid.New()

	expectRole(mock, teamID, actorID, models.RoleOwner)
	mock.ExpectExec(`DELETE FROM teams WHERE id`).
		WithArgs(teamID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Delete(context.Background(), teamID, actorID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_JoinByCode(t *testing.T) {
	svc, mock := setupTeamService(t)
	teamID := uuid.New()
	ownerID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM teams WHERE invite_code`).
		WithArgs("ABCD2345").
		WillReturnRows(teamRow(teamID, ownerID, "Grace Worship"))
	mock.ExpectExec(`INSERT INTO memberships`).
		WithArgs(teamID, userID, models.RoleMember, models.MembershipActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	team, err := svc.JoinByCode(context.Background(), "ABCD2345", userID)

	require.NoError(t, err)
	assert.Equal(t, teamID, team.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_JoinByCode_UnknownCode(t *testing.T) {
	svc, mock := setupTeamService(t)

	mock.ExpectQuery(`SELECT .+ FROM teams WHERE invite_code`).
		WithArgs("ZZZZ9999").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.JoinByCode(context.Background(), "ZZZZ9999", uuid.New())

	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRandomInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := randomInviteCode()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.Contains(t, inviteCodeAlphabet, string(r))
		}
		seen[code] = true
	}
	// 50 draws from a 31^8 space never repeat in practice.
	assert.Len(t, seen, 50)
}
