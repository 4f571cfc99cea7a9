package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanServiceTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{ServiceDraft, ServicePublished, true},
		{ServiceDraft, ServiceCancelled, true},
		{ServicePublished, ServiceCompleted, true},
		{ServicePublished, ServiceCancelled, true},
		{ServiceDraft, ServiceCompleted, false},
		{ServicePublished, ServiceDraft, false},
		{ServiceCompleted, ServiceCancelled, false},
		{ServiceCancelled, ServicePublished, false},
		{ServiceCompleted, ServicePublished, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanServiceTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCanAssignmentTransition(t *testing.T) {
	assert.True(t, CanAssignmentTransition(AssignmentPending, AssignmentConfirmed))
	assert.True(t, CanAssignmentTransition(AssignmentPending, AssignmentDeclined))

	// Declines are terminal: no direct path back to confirmed.
	assert.False(t, CanAssignmentTransition(AssignmentDeclined, AssignmentConfirmed))
	assert.False(t, CanAssignmentTransition(AssignmentConfirmed, AssignmentDeclined))
	assert.False(t, CanAssignmentTransition(AssignmentConfirmed, AssignmentPending))
	assert.False(t, CanAssignmentTransition(AssignmentDeclined, AssignmentPending))
}

func TestCanInvitationTransition(t *testing.T) {
	for _, to := range []string{InvitationAccepted, InvitationExpired, InvitationCancelled} {
		assert.True(t, CanInvitationTransition(InvitationPending, to))
	}
	assert.False(t, CanInvitationTransition(InvitationAccepted, InvitationCancelled))
	assert.False(t, CanInvitationTransition(InvitationExpired, InvitationAccepted))
}

func TestInvitationExpiredBy(t *testing.T) {
	now := time.Now()

	inv := Invitation{Status: InvitationPending, ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, inv.ExpiredBy(now))

	inv.ExpiresAt = now.Add(time.Hour)
	assert.False(t, inv.ExpiredBy(now))

	// Already-terminal invitations are never re-expired.
	inv.Status = InvitationAccepted
	inv.ExpiresAt = now.Add(-time.Hour)
	assert.False(t, inv.ExpiredBy(now))
}

func TestCanTransferTransition(t *testing.T) {
	for _, to := range []string{TransferCompleted, TransferCancelled, TransferExpired} {
		assert.True(t, CanTransferTransition(TransferPending, to))
	}
	assert.False(t, CanTransferTransition(TransferCompleted, TransferCancelled))
	assert.False(t, CanTransferTransition(TransferExpired, TransferCompleted))
}

func TestServiceVisibleToMembers(t *testing.T) {
	svc := Service{Status: ServiceDraft}
	assert.False(t, svc.VisibleToMembers())

	svc.Status = ServicePublished
	assert.True(t, svc.VisibleToMembers())

	svc.Status = ServiceCompleted
	assert.True(t, svc.VisibleToMembers())

	svc.Status = ServiceCancelled
	assert.False(t, svc.VisibleToMembers())
}
