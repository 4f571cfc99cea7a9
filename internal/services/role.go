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

// RoleService manages the musical parts a team schedules and the
// member-to-part links.
type RoleService struct {
	db *database.DB
}

func NewRoleService(db *database.DB) *RoleService {
	return &RoleService{db: db}
}

func (s *RoleService) requireManage(ctx context.Context, teamID, actorID uuid.UUID) error {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return err
	}
	if !permissions.For(role).CanManageRoles {
		return apperrors.NewPermission("only owners and admins may manage roles")
	}
	return nil
}

func (s *RoleService) Create(ctx context.Context, teamID, actorID uuid.UUID, name string, nameKo *string, displayOrder int) (*models.Role, error) {
	if err := s.requireManage(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	var role models.Role
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO roles (team_id, name, name_ko, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, team_id, name, name_ko, display_order, is_active, created_at, updated_at
	`, teamID, name, nameKo, displayOrder).Scan(&role.ID, &role.TeamID, &role.Name, &role.NameKo,
		&role.DisplayOrder, &role.IsActive, &role.CreatedAt, &role.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, apperrors.NewConflict("role %q already exists", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &role, nil
}

func (s *RoleService) List(ctx context.Context, teamID uuid.UUID) ([]models.Role, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, team_id, name, name_ko, display_order, is_active, created_at, updated_at
		FROM roles
		WHERE team_id = $1 AND is_active
		ORDER BY display_order, name
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.TeamID, &r.Name, &r.NameKo, &r.DisplayOrder,
			&r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func (s *RoleService) Update(ctx context.Context, roleID, actorID uuid.UUID, name string, nameKo *string, displayOrder int, isActive bool) (*models.Role, error) {
	teamID, err := s.teamOf(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManage(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	var role models.Role
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE roles
		SET name = $1, name_ko = $2, display_order = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, team_id, name, name_ko, display_order, is_active, created_at, updated_at
	`, name, nameKo, displayOrder, isActive, roleID).Scan(&role.ID, &role.TeamID, &role.Name,
		&role.NameKo, &role.DisplayOrder, &role.IsActive, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &role, nil
}

func (s *RoleService) teamOf(ctx context.Context, roleID uuid.UUID) (uuid.UUID, error) {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT team_id FROM roles WHERE id = $1`, roleID).Scan(&teamID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, apperrors.NewNotFound("role")
	}
	return teamID, err
}

// AssignToMember links a membership to a musical part. Marking a part
// primary clears any previous primary for that membership first.
func (s *RoleService) AssignToMember(ctx context.Context, teamID, actorID, membershipID, roleID uuid.UUID, isPrimary bool, proficiency int) (*models.MemberRole, error) {
	if err := s.requireManage(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if isPrimary {
		_, err = tx.Exec(ctx, `
			UPDATE member_roles SET is_primary = FALSE WHERE membership_id = $1 AND is_primary
		`, membershipID)
		if err != nil {
			return nil, fmt.Errorf("failed to clear primary role: %w", err)
		}
	}

	var mr models.MemberRole
	err = tx.QueryRow(ctx, `
		INSERT INTO member_roles (membership_id, role_id, is_primary, proficiency)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (membership_id, role_id)
		DO UPDATE SET is_primary = $3, proficiency = $4
		RETURNING id, membership_id, role_id, is_primary, proficiency, created_at
	`, membershipID, roleID, isPrimary, proficiency).Scan(&mr.ID, &mr.MembershipID, &mr.RoleID,
		&mr.IsPrimary, &mr.Proficiency, &mr.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to assign role to member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &mr, nil
}

func (s *RoleService) RemoveFromMember(ctx context.Context, teamID, actorID, membershipID, roleID uuid.UUID) error {
	if err := s.requireManage(ctx, teamID, actorID); err != nil {
		return err
	}

	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM member_roles WHERE membership_id = $1 AND role_id = $2
	`, membershipID, roleID)
	return err
}

// MemberRoles lists a membership's parts with role details.
func (s *RoleService) MemberRoles(ctx context.Context, membershipID uuid.UUID) ([]models.MemberRole, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT mr.id, mr.membership_id, mr.role_id, mr.is_primary, mr.proficiency, mr.created_at,
		       r.id, r.team_id, r.name, r.name_ko, r.display_order, r.is_active, r.created_at, r.updated_at
		FROM member_roles mr
		JOIN roles r ON mr.role_id = r.id
		WHERE mr.membership_id = $1
		ORDER BY mr.is_primary DESC, r.display_order
	`, membershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MemberRole
	for rows.Next() {
		var mr models.MemberRole
		var r models.Role
		if err := rows.Scan(
			&mr.ID, &mr.MembershipID, &mr.RoleID, &mr.IsPrimary, &mr.Proficiency, &mr.CreatedAt,
			&r.ID, &r.TeamID, &r.Name, &r.NameKo, &r.DisplayOrder, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		mr.Role = &r
		out = append(out, mr)
	}
	return out, rows.Err()
}
