package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/schedule"
	"github.com/schul92/worshipteam-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindOrCreate(ctx context.Context, email, name string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, language string) (*models.User, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, name, timezone string, ownerID uuid.UUID) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error)
	Update(ctx context.Context, teamID, actorID uuid.UUID, name string, color *string, timezone string, settings json.RawMessage) (*models.Team, error)
	Delete(ctx context.Context, teamID, actorID uuid.UUID) error
	JoinByCode(ctx context.Context, code string, userID uuid.UUID) (*models.Team, error)
	RegenerateInviteCode(ctx context.Context, teamID, actorID uuid.UUID) (string, error)
	ActiveRole(ctx context.Context, teamID, userID uuid.UUID) (string, error)
}

// MembershipServiceInterface defines the methods used by handlers from MembershipService
type MembershipServiceInterface interface {
	List(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error)
	ChangeRole(ctx context.Context, membershipID, actorID uuid.UUID, newRole string) (*models.Membership, error)
	Remove(ctx context.Context, membershipID, actorID uuid.UUID) error
	Leave(ctx context.Context, teamID, userID uuid.UUID) error
}

// RoleServiceInterface defines the methods used by handlers from RoleService
type RoleServiceInterface interface {
	Create(ctx context.Context, teamID, actorID uuid.UUID, name string, nameKo *string, displayOrder int) (*models.Role, error)
	List(ctx context.Context, teamID uuid.UUID) ([]models.Role, error)
	Update(ctx context.Context, roleID, actorID uuid.UUID, name string, nameKo *string, displayOrder int, isActive bool) (*models.Role, error)
	AssignToMember(ctx context.Context, teamID, actorID, membershipID, roleID uuid.UUID, isPrimary bool, proficiency int) (*models.MemberRole, error)
	RemoveFromMember(ctx context.Context, teamID, actorID, membershipID, roleID uuid.UUID) error
	MemberRoles(ctx context.Context, membershipID uuid.UUID) ([]models.MemberRole, error)
}

// ScheduleServiceInterface defines the methods used by handlers from ScheduleService
type ScheduleServiceInterface interface {
	CreateDraft(ctx context.Context, teamID, actorID uuid.UUID, in services.CreateServiceInput) (*models.Service, error)
	GetByID(ctx context.Context, serviceID uuid.UUID) (*models.Service, error)
	ListWindow(ctx context.Context, teamID, actorID uuid.UUID, from, to time.Time) ([]models.Service, error)
	Update(ctx context.Context, serviceID, actorID uuid.UUID, in services.CreateServiceInput) (*models.Service, error)
	Publish(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error)
	Complete(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error)
	Cancel(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error)
	Delete(ctx context.Context, serviceID, actorID uuid.UUID) error
	CreateServiceType(ctx context.Context, teamID, actorID uuid.UUID, name string, defaultWeekday, displayOrder int) (*models.ServiceType, error)
	ListServiceTypes(ctx context.Context, teamID uuid.UUID) ([]models.ServiceType, error)
}

// AssignmentServiceInterface defines the methods used by handlers from AssignmentService
type AssignmentServiceInterface interface {
	Create(ctx context.Context, serviceID, membershipID, roleID, actorID uuid.UUID) (*models.Assignment, error)
	Respond(ctx context.Context, assignmentID, actorID uuid.UUID, confirm bool, declineReason *string) (*models.Assignment, error)
	Delete(ctx context.Context, assignmentID, actorID uuid.UUID) error
	ListForService(ctx context.Context, serviceID uuid.UUID) ([]models.Assignment, error)
	ListMine(ctx context.Context, teamID, userID uuid.UUID) ([]models.Assignment, error)
}

// AvailabilityServiceInterface defines the methods used by handlers from AvailabilityService
type AvailabilityServiceInterface interface {
	ListMine(ctx context.Context, teamID, userID uuid.UUID, from, to time.Time) ([]models.Availability, error)
	SetBulk(ctx context.Context, teamID, userID uuid.UUID, entries []models.AvailabilityEntry) error
	PendingRequests(ctx context.Context, teamID, userID uuid.UUID, now time.Time) (*schedule.MatchResult, error)
	Dashboard(ctx context.Context, teamID, actorID uuid.UUID, now time.Time) ([]schedule.DaySummary, error)
}

// InvitationServiceInterface defines the methods used by handlers from InvitationService
type InvitationServiceInterface interface {
	Create(ctx context.Context, teamID, inviterID uuid.UUID, email string) (*models.Invitation, error)
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	ListForTeam(ctx context.Context, teamID, actorID uuid.UUID) ([]models.Invitation, error)
	ListForEmail(ctx context.Context, email string) ([]models.Invitation, error)
	Accept(ctx context.Context, token string, userID uuid.UUID) (*models.Team, error)
	Cancel(ctx context.Context, invitationID, actorID uuid.UUID) error
}

// TransferServiceInterface defines the methods used by handlers from TransferService
type TransferServiceInterface interface {
	Initiate(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) (*models.OwnershipTransfer, error)
	Get(ctx context.Context, transferID uuid.UUID) (*models.OwnershipTransfer, error)
	Complete(ctx context.Context, transferID, actorID uuid.UUID, priorOwnerRole string) (*models.OwnershipTransfer, error)
	Cancel(ctx context.Context, transferID, actorID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
}
