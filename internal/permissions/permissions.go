// Package permissions maps a membership role to its capability set. The
// matrix is advisory for clients deciding what to render and
// authoritative for the services, which re-check the role they load from
// the store before every mutation.
package permissions

import "github.com/schul92/worshipteam-api/internal/models"

type CapabilitySet struct {
	CanDeleteTeam         bool `json:"can_delete_team"`
	CanUpdateTeam         bool `json:"can_update_team"`
	CanTransferOwnership  bool `json:"can_transfer_ownership"`
	CanManageRoles        bool `json:"can_manage_roles"`
	CanCreateService      bool `json:"can_create_service"`
	CanPublishService     bool `json:"can_publish_service"`
	CanManageAssignments  bool `json:"can_manage_assignments"`
	CanInviteMembers      bool `json:"can_invite_members"`
	CanRemoveMembers      bool `json:"can_remove_members"`
	CanRemoveAdmins       bool `json:"can_remove_admins"`
	CanPromoteToAdmin     bool `json:"can_promote_to_admin"`
	CanRespondAssignments bool `json:"can_respond_assignments"`
	CanSubmitAvailability bool `json:"can_submit_availability"`
	CanViewDrafts         bool `json:"can_view_drafts"`
}

// For returns the capability set for a membership role. An empty or
// unknown role (non-member) holds no capabilities.
func For(role string) CapabilitySet {
	switch role {
	case models.RoleOwner:
		return CapabilitySet{
			CanDeleteTeam:         true,
			CanUpdateTeam:         true,
			CanTransferOwnership:  true,
			CanManageRoles:        true,
			CanCreateService:      true,
			CanPublishService:     true,
			CanManageAssignments:  true,
			CanInviteMembers:      true,
			CanRemoveMembers:      true,
			CanRemoveAdmins:       true,
			CanPromoteToAdmin:     true,
			CanRespondAssignments: true,
			CanSubmitAvailability: true,
			CanViewDrafts:         true,
		}
	case models.RoleAdmin:
		return CapabilitySet{
			CanUpdateTeam:         true,
			CanManageRoles:        true,
			CanCreateService:      true,
			CanPublishService:     true,
			CanManageAssignments:  true,
			CanInviteMembers:      true,
			CanRemoveMembers:      true,
			CanRespondAssignments: true,
			CanSubmitAvailability: true,
			CanViewDrafts:         true,
		}
	case models.RoleMember:
		return CapabilitySet{
			CanRespondAssignments: true,
			CanSubmitAvailability: true,
		}
	default:
		return CapabilitySet{}
	}
}

// CanChangeRole reports whether an actor with actorRole may move a target
// membership from targetRole to newRole. The owner role is never granted
// or revoked here; that path is the ownership transfer flow.
func CanChangeRole(actorRole, targetRole, newRole string) bool {
	if targetRole == models.RoleOwner || newRole == models.RoleOwner {
		return false
	}
	switch newRole {
	case models.RoleAdmin:
		// Only an owner creates admins; admins cannot promote peers or
		// themselves.
		return actorRole == models.RoleOwner
	case models.RoleMember:
		if targetRole == models.RoleAdmin {
			return actorRole == models.RoleOwner
		}
		return actorRole == models.RoleOwner || actorRole == models.RoleAdmin
	default:
		return false
	}
}

// CanRemove reports whether an actor may remove a target member. Admins
// may remove members but not fellow admins, and nobody removes the owner.
func CanRemove(actorRole, targetRole string) bool {
	if targetRole == models.RoleOwner {
		return false
	}
	switch actorRole {
	case models.RoleOwner:
		return true
	case models.RoleAdmin:
		return targetRole == models.RoleMember
	default:
		return false
	}
}
