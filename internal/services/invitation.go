package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/permissions"
)

var ErrInviteNotPending = errors.New("invitation is not pending")

type InvitationService struct {
	db     *database.DB
	expiry time.Duration
}

func NewInvitationService(db *database.DB, expiry time.Duration) *InvitationService {
	if expiry <= 0 {
		expiry = 168 * time.Hour
	}
	return &InvitationService{db: db, expiry: expiry}
}

const invitationColumns = "id, team_id, inviter_id, email, token, status, expires_at, created_at, updated_at"

func scanInvitation(row pgx.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(&inv.ID, &inv.TeamID, &inv.InviterID, &inv.Email, &inv.Token,
		&inv.Status, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvitationService) Create(ctx context.Context, teamID, inviterID uuid.UUID, email string) (*models.Invitation, error) {
	role, err := activeRole(ctx, s.db, teamID, inviterID)
	if err != nil {
		return nil, err
	}
	if !permissions.For(role).CanInviteMembers {
		return nil, apperrors.NewPermission("only owners and admins may invite members")
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}

	inv, err := scanInvitation(s.db.Pool.QueryRow(ctx, `
		INSERT INTO invitations (team_id, inviter_id, email, token, expires_at)
		VALUES ($1, $2, $3, $4, NOW() + $5::interval)
		RETURNING `+invitationColumns,
		teamID, inviterID, email, token, fmt.Sprintf("%d seconds", int(s.expiry.Seconds()))))
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return inv, nil
}

// GetByToken loads an invitation and lazily expires it: a pending row
// past its expires_at is corrected to expired and persisted back during
// the read, instead of waiting on a background job.
func (s *InvitationService) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	inv, err := scanInvitation(s.db.Pool.QueryRow(ctx, `
		SELECT `+invitationColumns+` FROM invitations WHERE token = $1
	`, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("invitation")
	}
	if err != nil {
		return nil, err
	}
	return s.lazyExpire(ctx, inv)
}

func (s *InvitationService) lazyExpire(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	if !inv.ExpiredBy(time.Now()) {
		return inv, nil
	}

	_, err := s.db.Pool.Exec(ctx, `
		UPDATE invitations SET status = 'expired', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to persist invitation expiry: %w", err)
	}
	inv.Status = models.InvitationExpired
	return inv, nil
}

// ListForTeam returns a team's pending invitations, expiring stale ones
// on the way out.
func (s *InvitationService) ListForTeam(ctx context.Context, teamID, actorID uuid.UUID) ([]models.Invitation, error) {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.For(role).CanInviteMembers {
		return nil, apperrors.NewPermission("only owners and admins may list invitations")
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE team_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(&inv.ID, &inv.TeamID, &inv.InviterID, &inv.Email, &inv.Token,
			&inv.Status, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	live := out[:0]
	for i := range out {
		inv, err := s.lazyExpire(ctx, &out[i])
		if err != nil {
			return nil, err
		}
		if inv.Status == models.InvitationPending {
			live = append(live, *inv)
		}
	}
	return live, nil
}

// ListForEmail returns the pending invitations addressed to an email,
// expiring stale ones on the way out. Callers pass the authenticated
// user's own email, so no role check applies.
func (s *InvitationService) ListForEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE email = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(&inv.ID, &inv.TeamID, &inv.InviterID, &inv.Email, &inv.Token,
			&inv.Status, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	live := out[:0]
	for i := range out {
		inv, err := s.lazyExpire(ctx, &out[i])
		if err != nil {
			return nil, err
		}
		if inv.Status == models.InvitationPending {
			live = append(live, *inv)
		}
	}
	return live, nil
}

// Accept marks the invitation accepted and creates (or reactivates) the
// member's membership in one transaction.
func (s *InvitationService) Accept(ctx context.Context, token string, userID uuid.UUID) (*models.Team, error) {
	inv, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvitationPending {
		return nil, apperrors.NewConflict("invitation is %s", inv.Status)
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE invitations SET status = 'accepted', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrInviteNotPending
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO memberships (team_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, user_id)
		DO UPDATE SET status = $4, updated_at = NOW()
		WHERE memberships.role <> 'owner'
	`, inv.TeamID, userID, models.RoleMember, models.MembershipActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	team, err := scanTeam(tx.QueryRow(ctx, `
		SELECT `+teamColumns+` FROM teams WHERE id = $1
	`, inv.TeamID))
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return team, nil
}

func (s *InvitationService) Cancel(ctx context.Context, invitationID, actorID uuid.UUID) error {
	var teamID uuid.UUID
	var status string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT team_id, status FROM invitations WHERE id = $1
	`, invitationID).Scan(&teamID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("invitation")
	}
	if err != nil {
		return err
	}

	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return err
	}
	if !permissions.For(role).CanInviteMembers {
		return apperrors.NewPermission("only owners and admins may cancel invitations")
	}
	if !models.CanInvitationTransition(status, models.InvitationCancelled) {
		return apperrors.NewConflict("invitation is %s", status)
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE invitations SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, invitationID)
	return err
}
