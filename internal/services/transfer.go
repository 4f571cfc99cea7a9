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

// TransferService handles owner handoffs. A completed transfer swaps the
// owner role between two active memberships atomically; the prior owner
// always lands on an explicit role, never roleless.
type TransferService struct {
	db     *database.DB
	expiry time.Duration
}

func NewTransferService(db *database.DB, expiry time.Duration) *TransferService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TransferService{db: db, expiry: expiry}
}

const transferColumns = "id, team_id, from_user_id, to_user_id, status, expires_at, created_at, updated_at"

func scanTransfer(row pgx.Row) (*models.OwnershipTransfer, error) {
	var t models.OwnershipTransfer
	err := row.Scan(&t.ID, &t.TeamID, &t.FromUserID, &t.ToUserID, &t.Status,
		&t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TransferService) Initiate(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) (*models.OwnershipTransfer, error) {
	role, err := activeRole(ctx, s.db, teamID, fromUserID)
	if err != nil {
		return nil, err
	}
	if !permissions.For(role).CanTransferOwnership {
		return nil, apperrors.NewPermission("only the owner may transfer ownership")
	}

	targetRole, err := activeRole(ctx, s.db, teamID, toUserID)
	if err != nil {
		return nil, err
	}
	if targetRole == "" {
		return nil, apperrors.NewConflict("transfer target must be an active member of the team")
	}

	transfer, err := scanTransfer(s.db.Pool.QueryRow(ctx, `
		INSERT INTO ownership_transfers (team_id, from_user_id, to_user_id, expires_at)
		VALUES ($1, $2, $3, NOW() + $4::interval)
		RETURNING `+transferColumns,
		teamID, fromUserID, toUserID, fmt.Sprintf("%d seconds", int(s.expiry.Seconds()))))
	if err != nil {
		return nil, fmt.Errorf("failed to initiate transfer: %w", err)
	}
	return transfer, nil
}

func (s *TransferService) Get(ctx context.Context, transferID uuid.UUID) (*models.OwnershipTransfer, error) {
	transfer, err := scanTransfer(s.db.Pool.QueryRow(ctx, `
		SELECT `+transferColumns+` FROM ownership_transfers WHERE id = $1
	`, transferID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("ownership transfer")
	}
	if err != nil {
		return nil, err
	}
	return s.lazyExpire(ctx, transfer)
}

func (s *TransferService) lazyExpire(ctx context.Context, transfer *models.OwnershipTransfer) (*models.OwnershipTransfer, error) {
	if !transfer.ExpiredBy(time.Now()) {
		return transfer, nil
	}

	_, err := s.db.Pool.Exec(ctx, `
		UPDATE ownership_transfers SET status = 'expired', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, transfer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to persist transfer expiry: %w", err)
	}
	transfer.Status = models.TransferExpired
	return transfer, nil
}

// Complete performs the owner swap in one transaction: the new owner's
// membership becomes owner, the prior owner's becomes priorOwnerRole
// (admin or member) and team.owner_id moves. Only the receiving user may
// complete a transfer.
func (s *TransferService) Complete(ctx context.Context, transferID, actorID uuid.UUID, priorOwnerRole string) (*models.OwnershipTransfer, error) {
	if priorOwnerRole != models.RoleAdmin && priorOwnerRole != models.RoleMember {
		return nil, apperrors.NewConflict("prior owner must become admin or member")
	}

	transfer, err := s.Get(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status != models.TransferPending {
		return nil, apperrors.NewConflict("transfer is %s", transfer.Status)
	}
	if transfer.ToUserID != actorID {
		return nil, apperrors.NewPermission("only the receiving member may complete the transfer")
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Demote first so the partial unique index on active owners never
	// sees two owner rows.
	tag, err := tx.Exec(ctx, `
		UPDATE memberships SET role = $1, updated_at = NOW()
		WHERE team_id = $2 AND user_id = $3 AND role = 'owner' AND status = 'active'
	`, priorOwnerRole, transfer.TeamID, transfer.FromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to reassign prior owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewConflict("initiating user no longer owns the team")
	}

	tag, err = tx.Exec(ctx, `
		UPDATE memberships SET role = 'owner', updated_at = NOW()
		WHERE team_id = $1 AND user_id = $2 AND status = 'active'
	`, transfer.TeamID, transfer.ToUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to promote new owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewConflict("receiving member is no longer active")
	}

	_, err = tx.Exec(ctx, `
		UPDATE teams SET owner_id = $1, updated_at = NOW() WHERE id = $2
	`, transfer.ToUserID, transfer.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to update team owner: %w", err)
	}

	completed, err := scanTransfer(tx.QueryRow(ctx, `
		UPDATE ownership_transfers SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+transferColumns, transferID))
	if err != nil {
		return nil, fmt.Errorf("failed to complete transfer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return completed, nil
}

func (s *TransferService) Cancel(ctx context.Context, transferID, actorID uuid.UUID) error {
	transfer, err := s.Get(ctx, transferID)
	if err != nil {
		return err
	}
	if transfer.FromUserID != actorID {
		return apperrors.NewPermission("only the initiating owner may cancel the transfer")
	}
	if !models.CanTransferTransition(transfer.Status, models.TransferCancelled) {
		return apperrors.NewConflict("transfer is %s", transfer.Status)
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE ownership_transfers SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, transferID)
	return err
}
