package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/permissions"
)

const teamColumns = "id, name, color, timezone, owner_id, invite_code, settings, created_at, updated_at"

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var team models.Team
	err := row.Scan(&team.ID, &team.Name, &team.Color, &team.Timezone, &team.OwnerID,
		&team.InviteCode, &team.Settings, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Create inserts the team and its owner membership in one transaction, so
// a team never exists without exactly one active owner. Invite code
// collisions are retried with a fresh code.
func (s *TeamService) Create(ctx context.Context, name, timezone string, ownerID uuid.UUID) (*models.Team, error) {
	if timezone == "" {
		timezone = "UTC"
	}

	for attempt := 0; attempt < 3; attempt++ {
		code, err := randomInviteCode()
		if err != nil {
			return nil, err
		}

		team, err := s.createWithCode(ctx, name, timezone, ownerID, code)
		if isUniqueViolation(err) {
			continue
		}
		return team, err
	}
	return nil, fmt.Errorf("failed to allocate a unique invite code")
}

func (s *TeamService) createWithCode(ctx context.Context, name, timezone string, ownerID uuid.UUID, code string) (*models.Team, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	team, err := scanTeam(tx.QueryRow(ctx, `
		INSERT INTO teams (name, timezone, owner_id, invite_code)
		VALUES ($1, $2, $3, $4)
		RETURNING `+teamColumns, name, timezone, ownerID, code))
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO memberships (team_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
	`, team.ID, ownerID, models.RoleOwner, models.MembershipActive)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	team, err := scanTeam(s.db.Pool.QueryRow(ctx, `
		SELECT `+teamColumns+` FROM teams WHERE id = $1
	`, teamID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("team")
	}
	return team, err
}

// GetUserTeams lists teams the user actively belongs to, with the role
// held in each.
func (s *TeamService) GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.name, t.color, t.timezone, t.owner_id, t.invite_code, t.settings, t.created_at, t.updated_at, m.role
		FROM teams t
		JOIN memberships m ON t.id = m.team_id
		WHERE m.user_id = $1 AND m.status = 'active'
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var teams []models.Team
	var roles []string
	for rows.Next() {
		var team models.Team
		var role string
		if err := rows.Scan(&team.ID, &team.Name, &team.Color, &team.Timezone, &team.OwnerID,
			&team.InviteCode, &team.Settings, &team.CreatedAt, &team.UpdatedAt, &role); err != nil {
			return nil, nil, err
		}
		teams = append(teams, team)
		roles = append(roles, role)
	}
	return teams, roles, rows.Err()
}

func (s *TeamService) Update(ctx context.Context, teamID, actorID uuid.UUID, name string, color *string, timezone string, settings json.RawMessage) (*models.Team, error) {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.For(role).CanUpdateTeam {
		return nil, apperrors.NewPermission("only owners and admins may update the team")
	}

	team, err := scanTeam(s.db.Pool.QueryRow(ctx, `
		UPDATE teams
		SET name = $1, color = $2, timezone = $3, settings = COALESCE($4, settings), updated_at = NOW()
		WHERE id = $5
		RETURNING `+teamColumns, name, color, timezone, settings, teamID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("team")
	}
	return team, err
}

// Delete removes the team; assignments, services, memberships and the
// rest cascade at the storage layer.
func (s *TeamService) Delete(ctx context.Context, teamID, actorID uuid.UUID) error {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return err
	}
	if !permissions.For(role).CanDeleteTeam {
		return apperrors.NewPermission("only the owner may delete the team")
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	return err
}

// JoinByCode creates (or reactivates) an active member membership for the
// team behind an invite code.
func (s *TeamService) JoinByCode(ctx context.Context, code string, userID uuid.UUID) (*models.Team, error) {
	team, err := scanTeam(s.db.Pool.QueryRow(ctx, `
		SELECT `+teamColumns+` FROM teams WHERE invite_code = $1
	`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("team")
	}
	if err != nil {
		return nil, err
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO memberships (team_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, user_id)
		DO UPDATE SET status = $4, updated_at = NOW()
		WHERE memberships.role <> 'owner'
	`, team.ID, userID, models.RoleMember, models.MembershipActive)
	if err != nil {
		return nil, fmt.Errorf("failed to join team: %w", err)
	}
	return team, nil
}

// RegenerateInviteCode replaces the team's invite code, invalidating the
// old one.
func (s *TeamService) RegenerateInviteCode(ctx context.Context, teamID, actorID uuid.UUID) (string, error) {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return "", err
	}
	if !permissions.For(role).CanInviteMembers {
		return "", apperrors.NewPermission("only owners and admins may regenerate the invite code")
	}

	for attempt := 0; attempt < 3; attempt++ {
		code, err := randomInviteCode()
		if err != nil {
			return "", err
		}
		_, err = s.db.Pool.Exec(ctx, `
			UPDATE teams SET invite_code = $1, updated_at = NOW() WHERE id = $2
		`, code, teamID)
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", fmt.Errorf("failed to allocate a unique invite code")
}

// ActiveRole exposes the role lookup for handlers that gate rendering on
// the capability set.
func (s *TeamService) ActiveRole(ctx context.Context, teamID, userID uuid.UUID) (string, error) {
	return activeRole(ctx, s.db, teamID, userID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
