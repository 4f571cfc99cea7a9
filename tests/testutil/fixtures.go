package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/database"
	"github.com/schul92/worshipteam-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		RETURNING id, email, name, avatar_url, language, created_at, updated_at
	`, user.Email, user.Name).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Language, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// AddMember inserts an active membership with the given role and returns it
func (f *Fixtures) AddMember(t *testing.T, teamID, userID uuid.UUID, role string) *models.Membership {
	t.Helper()

	m := &models.Membership{}
	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO memberships (team_id, user_id, role, status)
		VALUES ($1, $2, $3, 'active')
		RETURNING id, team_id, user_id, role, status, created_at, updated_at
	`, teamID, userID, role).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}

	return m
}

// CreateRole inserts a team role
func (f *Fixtures) CreateRole(t *testing.T, teamID uuid.UUID, name string) *models.Role {
	t.Helper()

	r := &models.Role{}
	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO roles (team_id, name)
		VALUES ($1, $2)
		RETURNING id, team_id, name, name_ko, display_order, is_active, created_at, updated_at
	`, teamID, name).Scan(
		&r.ID, &r.TeamID, &r.Name, &r.NameKo, &r.DisplayOrder, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create role: %v", err)
	}

	return r
}

// CountRows returns the number of rows matching the query
func (f *Fixtures) CountRows(t *testing.T, query string, args ...any) int {
	t.Helper()

	var n int
	if err := f.db.Pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

// Backdate shifts a row's expires_at into the past to simulate expiry
func (f *Fixtures) Backdate(t *testing.T, table string, id uuid.UUID, ago time.Duration) {
	t.Helper()

	_, err := f.db.Pool.Exec(context.Background(),
		fmt.Sprintf("UPDATE %s SET expires_at = NOW() - $1::interval WHERE id = $2", table),
		fmt.Sprintf("%d seconds", int(ago.Seconds())), id)
	if err != nil {
		t.Fatalf("failed to backdate %s: %v", table, err)
	}
}
