package permissions

import (
	"testing"

	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFor_OwnerOnlyCapabilities(t *testing.T) {
	roles := []string{models.RoleOwner, models.RoleAdmin, models.RoleMember, ""}

	for _, role := range roles {
		caps := For(role)
		assert.Equal(t, role == models.RoleOwner, caps.CanDeleteTeam, "CanDeleteTeam for %q", role)
		assert.Equal(t, role == models.RoleOwner, caps.CanTransferOwnership, "CanTransferOwnership for %q", role)
		assert.Equal(t, role == models.RoleOwner, caps.CanPromoteToAdmin, "CanPromoteToAdmin for %q", role)
		assert.Equal(t, role == models.RoleOwner, caps.CanRemoveAdmins, "CanRemoveAdmins for %q", role)
	}
}

func TestFor_LeaderCapabilities(t *testing.T) {
	for _, role := range []string{models.RoleOwner, models.RoleAdmin} {
		caps := For(role)
		assert.True(t, caps.CanManageRoles, role)
		assert.True(t, caps.CanCreateService, role)
		assert.True(t, caps.CanPublishService, role)
		assert.True(t, caps.CanManageAssignments, role)
		assert.True(t, caps.CanInviteMembers, role)
		assert.True(t, caps.CanViewDrafts, role)
	}

	member := For(models.RoleMember)
	assert.False(t, member.CanManageRoles)
	assert.False(t, member.CanCreateService)
	assert.False(t, member.CanManageAssignments)
	assert.True(t, member.CanRespondAssignments)
	assert.True(t, member.CanSubmitAvailability)
}

func TestFor_NonMemberHasNothing(t *testing.T) {
	assert.Equal(t, CapabilitySet{}, For(""))
	assert.Equal(t, CapabilitySet{}, For("stranger"))
}

func TestCanChangeRole(t *testing.T) {
	tests := []struct {
		name                   string
		actor, target, newRole string
		want                   bool
	}{
		{"owner promotes member to admin", models.RoleOwner, models.RoleMember, models.RoleAdmin, true},
		{"owner demotes admin to member", models.RoleOwner, models.RoleAdmin, models.RoleMember, true},
		{"admin cannot promote to admin", models.RoleAdmin, models.RoleMember, models.RoleAdmin, false},
		{"admin cannot demote another admin", models.RoleAdmin, models.RoleAdmin, models.RoleMember, false},
		{"nobody demotes the owner", models.RoleOwner, models.RoleOwner, models.RoleMember, false},
		{"nobody promotes to owner", models.RoleOwner, models.RoleAdmin, models.RoleOwner, false},
		{"member changes nothing", models.RoleMember, models.RoleMember, models.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanChangeRole(tt.actor, tt.target, tt.newRole))
		})
	}
}

func TestCanRemove(t *testing.T) {
	assert.True(t, CanRemove(models.RoleOwner, models.RoleAdmin))
	assert.True(t, CanRemove(models.RoleOwner, models.RoleMember))
	assert.True(t, CanRemove(models.RoleAdmin, models.RoleMember))

	assert.False(t, CanRemove(models.RoleAdmin, models.RoleAdmin))
	assert.False(t, CanRemove(models.RoleAdmin, models.RoleOwner))
	assert.False(t, CanRemove(models.RoleOwner, models.RoleOwner))
	assert.False(t, CanRemove(models.RoleMember, models.RoleMember))
}
