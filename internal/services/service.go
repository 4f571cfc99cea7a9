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
	"github.com/schul92/worshipteam-api/internal/notify"
	"github.com/schul92/worshipteam-api/internal/permissions"
	"go.uber.org/zap"
)

const serviceColumns = `id, team_id, service_type_id, name, date, start_time, end_time,
		rehearsal_date, rehearsal_time, status, published_at, created_at, updated_at`

// ScheduleService manages services (calendar instances needing role
// coverage) and the team-configured service types that classify them.
type ScheduleService struct {
	db       *database.DB
	notifier notify.Notifier
	log      *zap.SugaredLogger
}

func NewScheduleService(db *database.DB, notifier notify.Notifier, log *zap.SugaredLogger) *ScheduleService {
	return &ScheduleService{db: db, notifier: notifier, log: log}
}

func scanService(row pgx.Row) (*models.Service, error) {
	var svc models.Service
	err := row.Scan(&svc.ID, &svc.TeamID, &svc.ServiceTypeID, &svc.Name, &svc.Date,
		&svc.StartTime, &svc.EndTime, &svc.RehearsalDate, &svc.RehearsalTime,
		&svc.Status, &svc.PublishedAt, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *ScheduleService) requireLeader(ctx context.Context, teamID, actorID uuid.UUID) error {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return err
	}
	if !permissions.For(role).CanCreateService {
		return apperrors.NewPermission("only owners and admins may manage services")
	}
	return nil
}

type CreateServiceInput struct {
	ServiceTypeID *uuid.UUID
	Name          string
	Date          time.Time
	StartTime     *string
	EndTime       *string
	RehearsalDate *time.Time
	RehearsalTime *string
}

// CreateDraft creates a service in draft status: an open availability
// request with no binding force until published.
func (s *ScheduleService) CreateDraft(ctx context.Context, teamID, actorID uuid.UUID, in CreateServiceInput) (*models.Service, error) {
	if err := s.requireLeader(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	svc, err := scanService(s.db.Pool.QueryRow(ctx, `
		INSERT INTO services (team_id, service_type_id, name, date, start_time, end_time, rehearsal_date, rehearsal_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+serviceColumns,
		teamID, in.ServiceTypeID, in.Name, in.Date, in.StartTime, in.EndTime, in.RehearsalDate, in.RehearsalTime))
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *ScheduleService) GetByID(ctx context.Context, serviceID uuid.UUID) (*models.Service, error) {
	svc, err := scanService(s.db.Pool.QueryRow(ctx, `
		SELECT `+serviceColumns+` FROM services WHERE id = $1
	`, serviceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("service")
	}
	return svc, err
}

// ListWindow returns a team's services between the two dates inclusive.
// Members never see drafts or cancellations here; drafts reach members
// only as availability requests through the matcher.
func (s *ScheduleService) ListWindow(ctx context.Context, teamID, actorID uuid.UUID, from, to time.Time) ([]models.Service, error) {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, apperrors.NewPermission("not a member of this team")
	}

	query := `
		SELECT ` + serviceColumns + ` FROM services
		WHERE team_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_time`
	if !permissions.For(role).CanViewDrafts {
		query = `
		SELECT ` + serviceColumns + ` FROM services
		WHERE team_id = $1 AND date BETWEEN $2 AND $3 AND status IN ('published', 'completed')
		ORDER BY date, start_time`
	}

	rows, err := s.db.Pool.Query(ctx, query, teamID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Service
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(&svc.ID, &svc.TeamID, &svc.ServiceTypeID, &svc.Name, &svc.Date,
			&svc.StartTime, &svc.EndTime, &svc.RehearsalDate, &svc.RehearsalTime,
			&svc.Status, &svc.PublishedAt, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, rows.Err()
}

func (s *ScheduleService) Update(ctx context.Context, serviceID, actorID uuid.UUID, in CreateServiceInput) (*models.Service, error) {
	current, err := s.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.requireLeader(ctx, current.TeamID, actorID); err != nil {
		return nil, err
	}

	svc, err := scanService(s.db.Pool.QueryRow(ctx, `
		UPDATE services
		SET service_type_id = $1, name = $2, date = $3, start_time = $4, end_time = $5,
		    rehearsal_date = $6, rehearsal_time = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+serviceColumns,
		in.ServiceTypeID, in.Name, in.Date, in.StartTime, in.EndTime, in.RehearsalDate, in.RehearsalTime, serviceID))
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

// Publish moves a draft to published, stamps published_at and fires the
// assignment notifications. Notification delivery is fire-and-forget: a
// failure is logged and the publish still succeeds.
func (s *ScheduleService) Publish(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error) {
	svc, err := s.transition(ctx, serviceID, actorID, models.ServicePublished)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendAssignmentNotifications(ctx, svc.ID); err != nil {
		s.log.Warnw("assignment notifications failed after publish",
			"service_id", svc.ID, "error", err)
	}
	return svc, nil
}

func (s *ScheduleService) Complete(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error) {
	return s.transition(ctx, serviceID, actorID, models.ServiceCompleted)
}

func (s *ScheduleService) Cancel(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error) {
	return s.transition(ctx, serviceID, actorID, models.ServiceCancelled)
}

func (s *ScheduleService) transition(ctx context.Context, serviceID, actorID uuid.UUID, to string) (*models.Service, error) {
	current, err := s.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.requireLeader(ctx, current.TeamID, actorID); err != nil {
		return nil, err
	}
	if !models.CanServiceTransition(current.Status, to) {
		return nil, apperrors.NewConflict("cannot move service from %s to %s", current.Status, to)
	}

	query := `
		UPDATE services SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + serviceColumns
	if to == models.ServicePublished {
		query = `
		UPDATE services SET status = $1, published_at = NOW(), updated_at = NOW()
		WHERE id = $2
		RETURNING ` + serviceColumns
	}

	svc, err := scanService(s.db.Pool.QueryRow(ctx, query, to, serviceID))
	if err != nil {
		return nil, fmt.Errorf("failed to update service status: %w", err)
	}
	return svc, nil
}

// Delete removes the service; its assignments cascade.
func (s *ScheduleService) Delete(ctx context.Context, serviceID, actorID uuid.UUID) error {
	current, err := s.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if err := s.requireLeader(ctx, current.TeamID, actorID); err != nil {
		return err
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, serviceID)
	return err
}

func (s *ScheduleService) CreateServiceType(ctx context.Context, teamID, actorID uuid.UUID, name string, defaultWeekday, displayOrder int) (*models.ServiceType, error) {
	if err := s.requireLeader(ctx, teamID, actorID); err != nil {
		return nil, err
	}
	if defaultWeekday < 0 || defaultWeekday > 6 {
		return nil, apperrors.NewConflict("default weekday must be between 0 and 6")
	}

	var st models.ServiceType
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO service_types (team_id, name, default_weekday, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, team_id, name, default_weekday, display_order, is_active, created_at
	`, teamID, name, defaultWeekday, displayOrder).Scan(&st.ID, &st.TeamID, &st.Name,
		&st.DefaultWeekday, &st.DisplayOrder, &st.IsActive, &st.CreatedAt)
	if isUniqueViolation(err) {
		return nil, apperrors.NewConflict("service type %q already exists", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create service type: %w", err)
	}
	return &st, nil
}

func (s *ScheduleService) ListServiceTypes(ctx context.Context, teamID uuid.UUID) ([]models.ServiceType, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, team_id, name, default_weekday, display_order, is_active, created_at
		FROM service_types
		WHERE team_id = $1 AND is_active
		ORDER BY display_order, name
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ServiceType
	for rows.Next() {
		var st models.ServiceType
		if err := rows.Scan(&st.ID, &st.TeamID, &st.Name, &st.DefaultWeekday,
			&st.DisplayOrder, &st.IsActive, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
