package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		avatar_url VARCHAR(500),
		language VARCHAR(10) NOT NULL DEFAULT 'en',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		color VARCHAR(20),
		timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
		owner_id UUID NOT NULL REFERENCES users(id),
		invite_code VARCHAR(8) NOT NULL UNIQUE,
		settings JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS memberships (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL DEFAULT 'member',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(team_id, user_id)
	)`,

	// One active owner per team, enforced alongside the service layer.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_one_active_owner
		ON memberships(team_id) WHERE role = 'owner' AND status = 'active'`,

	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		name_ko VARCHAR(100),
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(team_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS member_roles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		membership_id UUID NOT NULL REFERENCES memberships(id) ON DELETE CASCADE,
		role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		proficiency INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(membership_id, role_id)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_member_roles_one_primary
		ON member_roles(membership_id) WHERE is_primary`,

	`CREATE TABLE IF NOT EXISTS service_types (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		default_weekday INTEGER NOT NULL CHECK (default_weekday BETWEEN 0 AND 6),
		display_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(team_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		service_type_id UUID REFERENCES service_types(id) ON DELETE SET NULL,
		name VARCHAR(255) NOT NULL,
		date DATE NOT NULL,
		start_time TIME,
		end_time TIME,
		rehearsal_date DATE,
		rehearsal_time TIME,
		status VARCHAR(20) NOT NULL DEFAULT 'draft',
		published_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		membership_id UUID NOT NULL REFERENCES memberships(id) ON DELETE CASCADE,
		role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		decline_reason TEXT,
		responded_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(service_id, membership_id, role_id)
	)`,

	`CREATE TABLE IF NOT EXISTS availability (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		is_available BOOLEAN NOT NULL,
		reason TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(team_id, user_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS invitations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		inviter_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		email VARCHAR(255) NOT NULL,
		token VARCHAR(64) NOT NULL UNIQUE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS ownership_transfers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		from_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		to_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_memberships_team_id ON memberships(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_memberships_user_id ON memberships(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_roles_team_id ON roles(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_member_roles_membership_id ON member_roles(membership_id)`,
	`CREATE INDEX IF NOT EXISTS idx_service_types_team_id ON service_types(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_services_team_date ON services(team_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_service_id ON assignments(service_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_membership_id ON assignments(membership_id)`,
	`CREATE INDEX IF NOT EXISTS idx_availability_team_user_date ON availability(team_id, user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_team_id ON invitations(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_email ON invitations(email)`,
	`CREATE INDEX IF NOT EXISTS idx_ownership_transfers_team_id ON ownership_transfers(team_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
