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
	"github.com/schul92/worshipteam-api/internal/notify"
	"github.com/schul92/worshipteam-api/internal/permissions"
)

type AssignmentService struct {
	db *database.DB
}

func NewAssignmentService(db *database.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

const assignmentColumns = "id, service_id, membership_id, role_id, status, decline_reason, responded_at, created_at, updated_at"

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(&a.ID, &a.ServiceID, &a.MembershipID, &a.RoleID, &a.Status,
		&a.DeclineReason, &a.RespondedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create adds a pending assignment. The membership and the musical role
// must both belong to the service's team; a cross-team reference is
// rejected before anything is written.
func (s *AssignmentService) Create(ctx context.Context, serviceID, membershipID, roleID, actorID uuid.UUID) (*models.Assignment, error) {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT team_id FROM services WHERE id = $1`, serviceID).Scan(&teamID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("service")
	}
	if err != nil {
		return nil, err
	}

	actorRole, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.For(actorRole).CanManageAssignments {
		return nil, apperrors.NewPermission("only owners and admins may create assignments")
	}

	var sameTeam bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM memberships m, roles r
			WHERE m.id = $1 AND m.team_id = $3 AND m.status = 'active'
			  AND r.id = $2 AND r.team_id = $3
		)
	`, membershipID, roleID, teamID).Scan(&sameTeam)
	if err != nil {
		return nil, err
	}
	if !sameTeam {
		return nil, apperrors.NewConflict("membership and role must belong to the service's team")
	}

	assignment, err := scanAssignment(s.db.Pool.QueryRow(ctx, `
		INSERT INTO assignments (service_id, membership_id, role_id)
		VALUES ($1, $2, $3)
		RETURNING `+assignmentColumns, serviceID, membershipID, roleID))
	if isUniqueViolation(err) {
		return nil, apperrors.NewConflict("this member is already assigned to that role")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

// Respond records the assigned member's confirm or decline. Only the
// member behind the assignment's membership may respond, only while the
// assignment is pending, and a decline is terminal: restarting the cycle
// requires the leader to delete and recreate the assignment.
func (s *AssignmentService) Respond(ctx context.Context, assignmentID, actorID uuid.UUID, confirm bool, declineReason *string) (*models.Assignment, error) {
	var current models.Assignment
	var memberUserID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT a.id, a.service_id, a.membership_id, a.role_id, a.status,
		       a.decline_reason, a.responded_at, a.created_at, a.updated_at, m.user_id
		FROM assignments a
		JOIN memberships m ON a.membership_id = m.id
		WHERE a.id = $1
	`, assignmentID).Scan(&current.ID, &current.ServiceID, &current.MembershipID, &current.RoleID,
		&current.Status, &current.DeclineReason, &current.RespondedAt, &current.CreatedAt,
		&current.UpdatedAt, &memberUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("assignment")
	}
	if err != nil {
		return nil, err
	}

	if memberUserID != actorID {
		return nil, apperrors.NewPermission("only the assigned member may respond")
	}

	to := models.AssignmentDeclined
	if confirm {
		to = models.AssignmentConfirmed
		declineReason = nil
	}
	if !models.CanAssignmentTransition(current.Status, to) {
		return nil, apperrors.NewConflict("cannot move assignment from %s to %s", current.Status, to)
	}

	assignment, err := scanAssignment(s.db.Pool.QueryRow(ctx, `
		UPDATE assignments
		SET status = $1, decline_reason = $2,
		    responded_at = COALESCE(responded_at, NOW()), updated_at = NOW()
		WHERE id = $3
		RETURNING `+assignmentColumns, to, declineReason, assignmentID))
	if err != nil {
		return nil, fmt.Errorf("failed to record response: %w", err)
	}
	return assignment, nil
}

// Delete removes an assignment. This is the leader's reset path after a
// decline.
func (s *AssignmentService) Delete(ctx context.Context, assignmentID, actorID uuid.UUID) error {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT s.team_id
		FROM assignments a
		JOIN services s ON a.service_id = s.id
		WHERE a.id = $1
	`, assignmentID).Scan(&teamID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("assignment")
	}
	if err != nil {
		return err
	}

	actorRole, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return err
	}
	if !permissions.For(actorRole).CanManageAssignments {
		return apperrors.NewPermission("only owners and admins may delete assignments")
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, assignmentID)
	return err
}

// ListForService returns a service's assignments with membership, user
// and role detail: the live per-service breakdown the dashboard's count
// resolver prefers.
func (s *AssignmentService) ListForService(ctx context.Context, serviceID uuid.UUID) ([]models.Assignment, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT a.id, a.service_id, a.membership_id, a.role_id, a.status,
		       a.decline_reason, a.responded_at, a.created_at, a.updated_at,
		       m.id, m.team_id, m.user_id, m.role, m.status, m.created_at, m.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.language, u.created_at, u.updated_at,
		       r.id, r.team_id, r.name, r.name_ko, r.display_order, r.is_active, r.created_at, r.updated_at
		FROM assignments a
		JOIN memberships m ON a.membership_id = m.id
		JOIN users u ON m.user_id = u.id
		JOIN roles r ON a.role_id = r.id
		WHERE a.service_id = $1
		ORDER BY r.display_order, a.created_at
	`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		var a models.Assignment
		var m models.Membership
		var u models.User
		var r models.Role
		if err := rows.Scan(
			&a.ID, &a.ServiceID, &a.MembershipID, &a.RoleID, &a.Status,
			&a.DeclineReason, &a.RespondedAt, &a.CreatedAt, &a.UpdatedAt,
			&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt,
			&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.Language, &u.CreatedAt, &u.UpdatedAt,
			&r.ID, &r.TeamID, &r.Name, &r.NameKo, &r.DisplayOrder, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.User = &u
		a.Membership = &m
		a.Role = &r
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListMine returns the caller's own assignments on published or completed
// services in a team. Drafts stay invisible to members.
func (s *AssignmentService) ListMine(ctx context.Context, teamID, userID uuid.UUID) ([]models.Assignment, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT a.id, a.service_id, a.membership_id, a.role_id, a.status,
		       a.decline_reason, a.responded_at, a.created_at, a.updated_at
		FROM assignments a
		JOIN memberships m ON a.membership_id = m.id
		JOIN services s ON a.service_id = s.id
		WHERE m.team_id = $1 AND m.user_id = $2
		  AND s.status IN ('published', 'completed')
		ORDER BY s.date
	`, teamID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.MembershipID, &a.RoleID, &a.Status,
			&a.DeclineReason, &a.RespondedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// NotificationRecipients resolves the pending assignees of a service for
// the notification collaborator.
func (s *AssignmentService) NotificationRecipients(ctx context.Context, serviceID uuid.UUID) ([]notify.Recipient, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT u.email, u.name, s.name, r.name, t.name
		FROM assignments a
		JOIN services s ON a.service_id = s.id
		JOIN teams t ON s.team_id = t.id
		JOIN memberships m ON a.membership_id = m.id
		JOIN users u ON m.user_id = u.id
		JOIN roles r ON a.role_id = r.id
		WHERE a.service_id = $1 AND a.status = 'pending'
	`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notify.Recipient
	for rows.Next() {
		var rec notify.Recipient
		if err := rows.Scan(&rec.Email, &rec.Name, &rec.ServiceName, &rec.RoleName, &rec.TeamName); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
