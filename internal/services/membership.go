package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/permissions"
)

type MembershipService struct {
	db *database.DB
}

func NewMembershipService(db *database.DB) *MembershipService {
	return &MembershipService{db: db}
}

// List returns the team's active memberships with their users.
func (s *MembershipService) List(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT m.id, m.team_id, m.user_id, m.role, m.status, m.created_at, m.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.language, u.created_at, u.updated_at
		FROM memberships m
		JOIN users u ON m.user_id = u.id
		WHERE m.team_id = $1 AND m.status = 'active'
		ORDER BY m.created_at
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Membership
	for rows.Next() {
		var m models.Membership
		var u models.User
		if err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt,
			&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.Language, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.User = &u
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *MembershipService) getActive(ctx context.Context, membershipID uuid.UUID) (*models.Membership, error) {
	var m models.Membership
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, team_id, user_id, role, status, created_at, updated_at
		FROM memberships WHERE id = $1 AND status = 'active'
	`, membershipID).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("membership")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ChangeRole moves a membership between admin and member. Ownership never
// changes here; that is the transfer flow.
func (s *MembershipService) ChangeRole(ctx context.Context, membershipID, actorID uuid.UUID, newRole string) (*models.Membership, error) {
	target, err := s.getActive(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	actorRole, err := activeRole(ctx, s.db, target.TeamID, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanChangeRole(actorRole, target.Role, newRole) {
		return nil, apperrors.NewPermission("not allowed to change this member's role")
	}

	err = s.db.Pool.QueryRow(ctx, `
		UPDATE memberships SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, team_id, user_id, role, status, created_at, updated_at
	`, newRole, membershipID).Scan(&target.ID, &target.TeamID, &target.UserID, &target.Role,
		&target.Status, &target.CreatedAt, &target.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	return target, nil
}

// Remove soft-deletes a membership by flipping it to inactive. The row
// stays for history; the member can rejoin later via invite.
func (s *MembershipService) Remove(ctx context.Context, membershipID, actorID uuid.UUID) error {
	target, err := s.getActive(ctx, membershipID)
	if err != nil {
		return err
	}

	actorRole, err := activeRole(ctx, s.db, target.TeamID, actorID)
	if err != nil {
		return err
	}
	if !permissions.CanRemove(actorRole, target.Role) {
		return apperrors.NewPermission("not allowed to remove this member")
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE memberships SET status = 'inactive', updated_at = NOW() WHERE id = $1
	`, membershipID)
	return err
}

// Leave soft-deletes the caller's own membership. The owner cannot leave;
// ownership has to be transferred first so the team is never ownerless.
func (s *MembershipService) Leave(ctx context.Context, teamID, userID uuid.UUID) error {
	role, err := activeRole(ctx, s.db, teamID, userID)
	if err != nil {
		return err
	}
	if role == "" {
		return apperrors.NewNotFound("membership")
	}
	if role == models.RoleOwner {
		return apperrors.NewPermission("the owner must transfer ownership before leaving")
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE memberships SET status = 'inactive', updated_at = NOW()
		WHERE team_id = $1 AND user_id = $2
	`, teamID, userID)
	return err
}
