package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/permissions"
	"github.com/schul92/worshipteam-api/internal/schedule"
)

type AvailabilityService struct {
	db *database.DB
}

func NewAvailabilityService(db *database.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// ListMine returns the caller's availability rows in the window.
func (s *AvailabilityService) ListMine(ctx context.Context, teamID, userID uuid.UUID, from, to time.Time) ([]models.Availability, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, team_id, user_id, date, is_available, reason, created_at, updated_at
		FROM availability
		WHERE team_id = $1 AND user_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`, teamID, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Availability
	for rows.Next() {
		var a models.Availability
		if err := rows.Scan(&a.ID, &a.TeamID, &a.UserID, &a.Date, &a.IsAvailable,
			&a.Reason, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetBulk writes all entries in a single upsert statement inside one
// transaction: either every date is written or none is. Rows are keyed by
// the (team, user, date) unique constraint, so a replayed call replaces
// values instead of duplicating rows, which makes retry-after-timeout
// safe.
func (s *AvailabilityService) SetBulk(ctx context.Context, teamID, userID uuid.UUID, entries []models.AvailabilityEntry) error {
	role, err := activeRole(ctx, s.db, teamID, userID)
	if err != nil {
		return err
	}
	if !permissions.For(role).CanSubmitAvailability {
		return apperrors.NewPermission("not a member of this team")
	}
	if len(entries) == 0 {
		return nil
	}

	dates := make([]time.Time, len(entries))
	available := make([]bool, len(entries))
	reasons := make([]*string, len(entries))
	for i, e := range entries {
		dates[i] = e.Date
		available[i] = e.IsAvailable
		reasons[i] = e.Reason
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO availability (team_id, user_id, date, is_available, reason)
		SELECT $1, $2, d, a, r
		FROM unnest($3::date[], $4::boolean[], $5::text[]) AS entries(d, a, r)
		ON CONFLICT (team_id, user_id, date)
		DO UPDATE SET is_available = EXCLUDED.is_available, reason = EXCLUDED.reason, updated_at = NOW()
	`, teamID, userID, dates, available, reasons)
	if err != nil {
		return fmt.Errorf("failed to upsert availability: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PendingRequests derives which draft services in the active window still
// need a response from the caller, and which already have one.
func (s *AvailabilityService) PendingRequests(ctx context.Context, teamID, userID uuid.UUID, now time.Time) (*schedule.MatchResult, error) {
	role, err := activeRole(ctx, s.db, teamID, userID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, apperrors.NewPermission("not a member of this team")
	}

	from, to := schedule.Window(now)

	drafts, err := s.draftsInWindow(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}
	types, err := s.serviceTypes(ctx, teamID)
	if err != nil {
		return nil, err
	}
	avail, err := s.ListMine(ctx, teamID, userID, from, to)
	if err != nil {
		return nil, err
	}

	result := schedule.Match(drafts, types, avail)
	return &result, nil
}

func (s *AvailabilityService) draftsInWindow(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]models.Service, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+serviceColumns+` FROM services
		WHERE team_id = $1 AND status = 'draft' AND date BETWEEN $2 AND $3
		ORDER BY date
	`, teamID, from, to)
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

func (s *AvailabilityService) serviceTypes(ctx context.Context, teamID uuid.UUID) ([]models.ServiceType, error) {
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

// Dashboard summarizes staffing per date across the window for leaders.
// The list query carries the server-aggregated assignment count; callers
// holding a fresher per-service detail fetch may override through the
// resolver on the client.
func (s *AvailabilityService) Dashboard(ctx context.Context, teamID, actorID uuid.UUID, now time.Time) ([]schedule.DaySummary, error) {
	role, err := activeRole(ctx, s.db, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !permissions.For(role).CanManageAssignments {
		return nil, apperrors.NewPermission("only owners and admins may view the staffing dashboard")
	}

	from, to := schedule.Window(now)

	rows, err := s.db.Pool.Query(ctx, `
		SELECT s.id, s.team_id, s.service_type_id, s.name, s.date, s.start_time, s.end_time,
		       s.rehearsal_date, s.rehearsal_time, s.status, s.published_at, s.created_at, s.updated_at,
		       COUNT(a.id)::int AS assignment_count
		FROM services s
		LEFT JOIN assignments a ON a.service_id = s.id
		WHERE s.team_id = $1 AND s.date BETWEEN $2 AND $3 AND s.status <> 'cancelled'
		GROUP BY s.id
		ORDER BY s.date
	`, teamID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDate := make(map[string][]schedule.DatedService)
	var order []string
	for rows.Next() {
		var svc models.Service
		var count int
		if err := rows.Scan(&svc.ID, &svc.TeamID, &svc.ServiceTypeID, &svc.Name, &svc.Date,
			&svc.StartTime, &svc.EndTime, &svc.RehearsalDate, &svc.RehearsalTime,
			&svc.Status, &svc.PublishedAt, &svc.CreatedAt, &svc.UpdatedAt, &count); err != nil {
			return nil, err
		}

		key := svc.Date.Format("2006-01-02")
		if _, seen := byDate[key]; !seen {
			order = append(order, key)
		}
		n := count
		byDate[key] = append(byDate[key], schedule.DatedService{
			Service: svc,
			Counts:  schedule.CountSources{Aggregate: &n},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	types, err := s.serviceTypes(ctx, teamID)
	if err != nil {
		return nil, err
	}

	summaries := make([]schedule.DaySummary, 0, len(order))
	for _, key := range order {
		services := byDate[key]
		summaries = append(summaries, schedule.SummarizeDay(services[0].Service.Date, services, types))
	}
	return summaries, nil
}
