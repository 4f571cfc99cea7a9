package testutil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/models"
	"github.com/schul92/worshipteam-api/internal/schedule"
	"github.com/schul92/worshipteam-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreate(ctx context.Context, email, name string) (*models.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, name, language string) (*models.User, error) {
	args := m.Called(ctx, id, name, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, name, timezone string, ownerID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, name, timezone, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Team), args.Get(1).([]string), args.Error(2)
}

func (m *MockTeamService) Update(ctx context.Context, teamID, actorID uuid.UUID, name string, color *string, timezone string, settings json.RawMessage) (*models.Team, error) {
	args := m.Called(ctx, teamID, actorID, name, color, timezone, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, teamID, actorID uuid.UUID) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

func (m *MockTeamService) JoinByCode(ctx context.Context, code string, userID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) RegenerateInviteCode(ctx context.Context, teamID, actorID uuid.UUID) (string, error) {
	args := m.Called(ctx, teamID, actorID)
	return args.String(0), args.Error(1)
}

func (m *MockTeamService) ActiveRole(ctx context.Context, teamID, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, teamID, userID)
	return args.String(0), args.Error(1)
}

// MockMembershipService mocks the MembershipService
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) List(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Membership), args.Error(1)
}

func (m *MockMembershipService) ChangeRole(ctx context.Context, membershipID, actorID uuid.UUID, newRole string) (*models.Membership, error) {
	args := m.Called(ctx, membershipID, actorID, newRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

func (m *MockMembershipService) Remove(ctx context.Context, membershipID, actorID uuid.UUID) error {
	args := m.Called(ctx, membershipID, actorID)
	return args.Error(0)
}

func (m *MockMembershipService) Leave(ctx context.Context, teamID, userID uuid.UUID) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

// MockRoleService mocks the RoleService
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) Create(ctx context.Context, teamID, actorID uuid.UUID, name string, nameKo *string, displayOrder int) (*models.Role, error) {
	args := m.Called(ctx, teamID, actorID, name, nameKo, displayOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleService) List(ctx context.Context, teamID uuid.UUID) ([]models.Role, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Role), args.Error(1)
}

func (m *MockRoleService) Update(ctx context.Context, roleID, actorID uuid.UUID, name string, nameKo *string, displayOrder int, isActive bool) (*models.Role, error) {
	args := m.Called(ctx, roleID, actorID, name, nameKo, displayOrder, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleService) AssignToMember(ctx context.Context, teamID, actorID, membershipID, roleID uuid.UUID, isPrimary bool, proficiency int) (*models.MemberRole, error) {
	args := m.Called(ctx, teamID, actorID, membershipID, roleID, isPrimary, proficiency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MemberRole), args.Error(1)
}

func (m *MockRoleService) RemoveFromMember(ctx context.Context, teamID, actorID, membershipID, roleID uuid.UUID) error {
	args := m.Called(ctx, teamID, actorID, membershipID, roleID)
	return args.Error(0)
}

func (m *MockRoleService) MemberRoles(ctx context.Context, membershipID uuid.UUID) ([]models.MemberRole, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MemberRole), args.Error(1)
}

// MockScheduleService mocks the ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) CreateDraft(ctx context.Context, teamID, actorID uuid.UUID, in services.CreateServiceInput) (*models.Service, error) {
	args := m.Called(ctx, teamID, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockScheduleService) GetByID(ctx context.Context, serviceID uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockScheduleService) ListWindow(ctx context.Context, teamID, actorID uuid.UUID, from, to time.Time) ([]models.Service, error) {
	args := m.Called(ctx, teamID, actorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockScheduleService) Update(ctx context.Context, serviceID, actorID uuid.UUID, in services.CreateServiceInput) (*models.Service, error) {
	args := m.Called(ctx, serviceID, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockScheduleService) Publish(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, serviceID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockScheduleService) Complete(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, serviceID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockScheduleService) Cancel(ctx context.Context, serviceID, actorID uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, serviceID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockScheduleService) Delete(ctx context.Context, serviceID, actorID uuid.UUID) error {
	args := m.Called(ctx, serviceID, actorID)
	return args.Error(0)
}

func (m *MockScheduleService) CreateServiceType(ctx context.Context, teamID, actorID uuid.UUID, name string, defaultWeekday, displayOrder int) (*models.ServiceType, error) {
	args := m.Called(ctx, teamID, actorID, name, defaultWeekday, displayOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceType), args.Error(1)
}

func (m *MockScheduleService) ListServiceTypes(ctx context.Context, teamID uuid.UUID) ([]models.ServiceType, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceType), args.Error(1)
}

// MockAssignmentService mocks the AssignmentService
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) Create(ctx context.Context, serviceID, membershipID, roleID, actorID uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, serviceID, membershipID, roleID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentService) Respond(ctx context.Context, assignmentID, actorID uuid.UUID, confirm bool, declineReason *string) (*models.Assignment, error) {
	args := m.Called(ctx, assignmentID, actorID, confirm, declineReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentService) Delete(ctx context.Context, assignmentID, actorID uuid.UUID) error {
	args := m.Called(ctx, assignmentID, actorID)
	return args.Error(0)
}

func (m *MockAssignmentService) ListForService(ctx context.Context, serviceID uuid.UUID) ([]models.Assignment, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

func (m *MockAssignmentService) ListMine(ctx context.Context, teamID, userID uuid.UUID) ([]models.Assignment, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

// MockAvailabilityService mocks the AvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) ListMine(ctx context.Context, teamID, userID uuid.UUID, from, to time.Time) ([]models.Availability, error) {
	args := m.Called(ctx, teamID, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Availability), args.Error(1)
}

func (m *MockAvailabilityService) SetBulk(ctx context.Context, teamID, userID uuid.UUID, entries []models.AvailabilityEntry) error {
	args := m.Called(ctx, teamID, userID, entries)
	return args.Error(0)
}

func (m *MockAvailabilityService) PendingRequests(ctx context.Context, teamID, userID uuid.UUID, now time.Time) (*schedule.MatchResult, error) {
	args := m.Called(ctx, teamID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.MatchResult), args.Error(1)
}

func (m *MockAvailabilityService) Dashboard(ctx context.Context, teamID, actorID uuid.UUID, now time.Time) ([]schedule.DaySummary, error) {
	args := m.Called(ctx, teamID, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.DaySummary), args.Error(1)
}

// MockInvitationService mocks the InvitationService
type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) Create(ctx context.Context, teamID, inviterID uuid.UUID, email string) (*models.Invitation, error) {
	args := m.Called(ctx, teamID, inviterID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationService) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationService) ListForTeam(ctx context.Context, teamID, actorID uuid.UUID) ([]models.Invitation, error) {
	args := m.Called(ctx, teamID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invitation), args.Error(1)
}

func (m *MockInvitationService) ListForEmail(ctx context.Context, email string) ([]models.Invitation, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invitation), args.Error(1)
}

func (m *MockInvitationService) Accept(ctx context.Context, token string, userID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockInvitationService) Cancel(ctx context.Context, invitationID, actorID uuid.UUID) error {
	args := m.Called(ctx, invitationID, actorID)
	return args.Error(0)
}

// MockTransferService mocks the TransferService
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Initiate(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) (*models.OwnershipTransfer, error) {
	args := m.Called(ctx, teamID, fromUserID, toUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OwnershipTransfer), args.Error(1)
}

func (m *MockTransferService) Get(ctx context.Context, transferID uuid.UUID) (*models.OwnershipTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OwnershipTransfer), args.Error(1)
}

func (m *MockTransferService) Complete(ctx context.Context, transferID, actorID uuid.UUID, priorOwnerRole string) (*models.OwnershipTransfer, error) {
	args := m.Called(ctx, transferID, actorID, priorOwnerRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OwnershipTransfer), args.Error(1)
}

func (m *MockTransferService) Cancel(ctx context.Context, transferID, actorID uuid.UUID) error {
	args := m.Called(ctx, transferID, actorID)
	return args.Error(0)
}
