package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/schul92/worshipteam-api/internal/database"
)

// activeRole returns the caller's active membership role in a team, or
// the empty string for non-members and inactive memberships. Every
// mutation re-checks the role from the store rather than trusting what
// the client's permission matrix allowed.
func activeRole(ctx context.Context, db *database.DB, teamID, userID uuid.UUID) (string, error) {
	var role string
	err := db.Pool.QueryRow(ctx, `
		SELECT role FROM memberships
		WHERE team_id = $1 AND user_id = $2 AND status = 'active'
	`, teamID, userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up membership role: %w", err)
	}
	return role, nil
}

const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// randomInviteCode returns an 8-character team invite code. Ambiguous
// characters (0/O, 1/I/L) are left out of the alphabet.
func randomInviteCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}

// randomToken returns a 64-character hex token for invitations.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
