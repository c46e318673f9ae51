package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/events"
	"github.com/spec-kit/roster-service/internal/identity"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

const minPasswordLength = 8

// EmployeeService owns the per-restaurant roster: provisioning, edits, role
// changes, activation state and soft deletion. All operations take the acting
// profile and the restaurant already resolved for it by the transport layer.
type EmployeeService struct {
	profiles    repository.ProfileRepository
	restaurants repository.RestaurantRepository
	leads       repository.AreaLeadRepository
	areaLeads   *AreaLeadService
	identity    identity.Provider
	dispatcher  events.Dispatcher
}

// EmployeeDependencies bundles service collaborators.
type EmployeeDependencies struct {
	ProfileRepo    repository.ProfileRepository
	RestaurantRepo repository.RestaurantRepository
	LeadRepo       repository.AreaLeadRepository
	AreaLeads      *AreaLeadService
	Identity       identity.Provider
	Dispatcher     events.Dispatcher
}

// NewEmployeeService creates the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		profiles:    deps.ProfileRepo,
		restaurants: deps.RestaurantRepo,
		leads:       deps.LeadRepo,
		areaLeads:   deps.AreaLeads,
		identity:    deps.Identity,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateEmployeeParams carries a provisioning request. Zone, when set, asks
// for an immediate area-lead grant and is only valid for the employee role.
type CreateEmployeeParams struct {
	Email    string
	Password string
	FullName string
	Role     string
	Zone     *string
}

// UpdateEmployeeParams carries a partial edit. Nil fields stay untouched.
// RestaurantID transfers the member to another restaurant.
type UpdateEmployeeParams struct {
	FullName     *string
	Role         *string
	RestaurantID *string
	Email        *string
	Password     *string
}

// ListEmployeesParams filters the roster listing. Status is one of
// "active", "inactive" or "all" (empty means active).
type ListEmployeesParams struct {
	Status string
	Limit  int
}

// Create provisions an identity account plus its profile, optionally granting
// an area-lead slot in one go. When the grant fails because the zone is full,
// the freshly created account and profile are rolled back so the operation
// stays all-or-nothing.
func (s *EmployeeService) Create(ctx context.Context, actor *domain.Profile, restaurantID string, params CreateEmployeeParams) (*domain.Profile, error) {
	if !actor.Role.CanCreateEmployees() {
		return nil, apperrors.NewForbidden(apperrors.CodeForbidden, "only global roles may create employees")
	}

	role, zone, err := s.validateCreate(params)
	if err != nil {
		return nil, err
	}
	if err := assertRestaurantUsable(ctx, s.restaurants, restaurantID); err != nil {
		return nil, err
	}
	if err := s.assertRoleSlotAvailable(ctx, restaurantID, role, nil); err != nil {
		return nil, err
	}

	accountID, err := s.identity.CreateAccount(ctx, params.Email, params.Password)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	profile := &domain.Profile{
		ID:                 accountID,
		FullName:           strings.TrimSpace(params.FullName),
		Role:               role,
		RestaurantID:       &restaurantID,
		IsActive:           true,
		MustChangePassword: true,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		_ = s.identity.DeleteAccount(ctx, accountID, true)
		return nil, apperrors.MapError(err)
	}

	if zone != nil {
		if _, err := s.areaLeads.Assign(ctx, restaurantID, *zone, accountID, actor.ID); err != nil {
			if compErr := s.rollbackCreate(ctx, accountID); compErr != nil {
				return nil, apperrors.NewDomainError(
					apperrors.Code(err),
					fmt.Sprintf("area lead grant failed and rollback of the new account did not complete: %v", compErr),
					http.StatusInternalServerError,
					map[string]any{"user_id": accountID},
				)
			}
			return nil, err
		}
		profile.IsAreaLead = true
	}

	s.publishLifecycleEvent(ctx, events.EventEmployeeCreated, actor.ID, restaurantID, profile)
	return profile, nil
}

// Update edits name, role and credentials of a roster member.
func (s *EmployeeService) Update(ctx context.Context, actor *domain.Profile, restaurantID, userID string, params UpdateEmployeeParams) (*domain.Profile, error) {
	target, err := s.assertCanManageTarget(ctx, actor, restaurantID, userID)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		name := strings.TrimSpace(*params.FullName)
		if name == "" {
			return nil, apperrors.NewValidationError(apperrors.CodeMissing, "full name is required")
		}
		target.FullName = name
	}

	destination := restaurantID
	moved := false
	if params.RestaurantID != nil && (target.RestaurantID == nil || *params.RestaurantID != *target.RestaurantID) {
		if !actor.Role.IsGlobal() {
			// Restaurant-scoped managers edit people inside their own site only.
			return nil, apperrors.NewForbidden(apperrors.CodeRestaurantMismatch, "restaurant transfers require a global role")
		}
		if err := assertRestaurantUsable(ctx, s.restaurants, *params.RestaurantID); err != nil {
			return nil, err
		}
		destination = *params.RestaurantID
		moved = true
	}

	roleChanged := false
	if params.Role != nil && domain.Role(*params.Role) != target.Role {
		if !actor.Role.IsGlobal() {
			// Restaurant-scoped managers edit people, never roles.
			return nil, apperrors.NewForbidden(apperrors.CodeInvalidRole, "role changes require a global role")
		}
		newRole, ok := domain.ParseEditableRole(*params.Role)
		if !ok {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidRole, "role must be employee, manager or sub_manager")
		}
		target.Role = newRole
		roleChanged = true
	}

	if moved || (roleChanged && target.Role != domain.RoleEmployee) {
		// Lead rows are scoped to a restaurant and only employees hold them, so
		// both a transfer and a promotion require the leads to be revoked first.
		holdsLead, err := s.leads.HasActiveForUser(ctx, userID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if holdsLead {
			return nil, apperrors.NewConflict(apperrors.CodeAreaLeadOnlyEmployee, "active area leads must be revoked first", map[string]any{"user_id": userID})
		}
	}
	if moved || roleChanged {
		// The destination's slot must be free whether the role changed, the
		// restaurant changed, or both.
		if err := s.assertRoleSlotAvailable(ctx, destination, target.Role, &userID); err != nil {
			return nil, err
		}
	}
	if moved {
		target.RestaurantID = &destination
	}

	if params.Email != nil {
		if _, err := mail.ParseAddress(*params.Email); err != nil {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidEmail, "email address is not valid")
		}
	}
	if params.Password != nil && len(*params.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError(apperrors.CodeWeakPassword, "password must be at least 8 characters")
	}

	if err := s.profiles.Update(ctx, target); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	if params.Email != nil || params.Password != nil {
		update := identity.UpdateParams{Email: params.Email, Password: params.Password}
		if err := s.identity.UpdateAccount(ctx, userID, update); err != nil {
			return nil, apperrors.MapError(err)
		}
		if params.Password != nil {
			if err := s.profiles.SetMustChangePassword(ctx, userID, true); err != nil {
				return nil, apperrors.MapError(err)
			}
		}
	}

	return target, nil
}

// SetActive toggles a member's active state. Deactivation bans the identity
// account and marks the profile deleted; reactivation lifts both.
func (s *EmployeeService) SetActive(ctx context.Context, actor *domain.Profile, restaurantID, userID string, active bool) error {
	target, err := s.assertCanManageTarget(ctx, actor, restaurantID, userID)
	if err != nil {
		return err
	}
	if target.IsActive == active {
		return nil
	}

	var deletedAt *time.Time
	ban := identity.BanNone
	eventType := events.EventEmployeeReactivated
	if !active {
		now := time.Now()
		deletedAt = &now
		ban = identity.BanPermanent
		eventType = events.EventEmployeeDeactivated
	}

	if err := s.profiles.SetActiveState(ctx, userID, active, deletedAt); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.identity.UpdateAccount(ctx, userID, identity.UpdateParams{BanDuration: &ban}); err != nil {
		return apperrors.MapError(err)
	}

	target.IsActive = active
	target.DeletedAt = deletedAt
	s.publishLifecycleEvent(ctx, eventType, actor.ID, restaurantID, target)
	return nil
}

// SoftDelete removes a member from the roster while keeping the rows for
// history. The identity account is soft-deleted so the email can be audited.
func (s *EmployeeService) SoftDelete(ctx context.Context, actor *domain.Profile, restaurantID, userID string) error {
	target, err := s.assertCanManageTarget(ctx, actor, restaurantID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.profiles.SetActiveState(ctx, userID, false, &now); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.identity.DeleteAccount(ctx, userID, true); err != nil {
		return apperrors.MapError(err)
	}

	// Deactivated rows no longer count as leads; keep the flag truthful.
	leads, err := s.leads.ListActiveByUser(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	for _, lead := range leads {
		if err := s.areaLeads.Revoke(ctx, lead.ID); err != nil {
			return err
		}
	}

	s.publishLifecycleEvent(ctx, events.EventEmployeeDeleted, actor.ID, restaurantID, target)
	return nil
}

// Get loads one roster member, scoped to the restaurant.
func (s *EmployeeService) Get(ctx context.Context, actor *domain.Profile, restaurantID, userID string) (*domain.Profile, error) {
	return s.assertCanManageTarget(ctx, actor, restaurantID, userID)
}

// GetDetail loads one roster member together with their active area leads.
func (s *EmployeeService) GetDetail(ctx context.Context, actor *domain.Profile, restaurantID, userID string) (*domain.Profile, []domain.AreaLead, error) {
	target, err := s.assertCanManageTarget(ctx, actor, restaurantID, userID)
	if err != nil {
		return nil, nil, err
	}
	leads, err := s.leads.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if leads == nil {
		leads = []domain.AreaLead{}
	}
	return target, leads, nil
}

// List returns the restaurant's roster members.
func (s *EmployeeService) List(ctx context.Context, restaurantID string, params ListEmployeesParams) ([]domain.Profile, error) {
	filter := repository.ProfileFilter{
		RestaurantID: &restaurantID,
		Roles:        []domain.Role{domain.RoleEmployee, domain.RoleManager, domain.RoleSubManager},
		Limit:        params.Limit,
	}
	switch params.Status {
	case "", "active":
		active := true
		filter.Active = &active
	case "inactive":
		active := false
		filter.Active = &active
	case "all":
	default:
		return nil, apperrors.NewValidationError(apperrors.CodeMissing, "status must be active, inactive or all")
	}

	profiles, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

func (s *EmployeeService) validateCreate(params CreateEmployeeParams) (domain.Role, *domain.Zone, error) {
	if strings.TrimSpace(params.Email) == "" || params.Password == "" || strings.TrimSpace(params.FullName) == "" || params.Role == "" {
		return "", nil, apperrors.NewValidationError(apperrors.CodeMissing, "email, password, full name and role are required")
	}
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return "", nil, apperrors.NewValidationError(apperrors.CodeInvalidEmail, "email address is not valid")
	}
	if len(params.Password) < minPasswordLength {
		return "", nil, apperrors.NewValidationError(apperrors.CodeWeakPassword, "password must be at least 8 characters")
	}
	role, ok := domain.ParseEditableRole(params.Role)
	if !ok {
		return "", nil, apperrors.NewValidationError(apperrors.CodeInvalidRole, "role must be employee, manager or sub_manager")
	}

	var zone *domain.Zone
	if params.Zone != nil && *params.Zone != "" {
		if role != domain.RoleEmployee {
			return "", nil, apperrors.NewValidationError(apperrors.CodeAreaLeadOnlyEmployee, "area leads can only hold the employee role")
		}
		parsed, ok := domain.ParseZone(*params.Zone)
		if !ok {
			return "", nil, apperrors.NewValidationError(apperrors.CodeMissing, "zone must be kitchen, floor or bar")
		}
		zone = &parsed
	}
	return role, zone, nil
}

// assertCanManageTarget loads the target and runs the management guards in
// order: existence, global-role protection, manager protection, restaurant
// scope. The order is part of the contract; callers rely on the codes.
func (s *EmployeeService) assertCanManageTarget(ctx context.Context, actor *domain.Profile, restaurantID, userID string) (*domain.Profile, error) {
	target, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	if target.Role.IsGlobal() {
		return nil, apperrors.NewForbidden(apperrors.CodeGlobalUser, "global accounts are not managed through the roster")
	}
	if target.Role == domain.RoleManager && !actor.Role.IsGlobal() {
		return nil, apperrors.NewForbidden(apperrors.CodeManagerProtected, "managers can only be edited by global roles")
	}
	if !actor.Role.IsGlobal() {
		if actor.RestaurantID == nil || target.RestaurantID == nil || *actor.RestaurantID != *target.RestaurantID {
			return nil, apperrors.NewForbidden(apperrors.CodeRestaurantMismatch, "employee belongs to a different restaurant")
		}
	}
	if target.RestaurantID == nil || *target.RestaurantID != restaurantID {
		return nil, apperrors.NewForbidden(apperrors.CodeRestaurantMismatch, "employee belongs to a different restaurant")
	}
	return target, nil
}

// assertRoleSlotAvailable enforces the single active manager / sub_manager per
// restaurant rule ahead of the partial unique indexes.
func (s *EmployeeService) assertRoleSlotAvailable(ctx context.Context, restaurantID string, role domain.Role, excludingUserID *string) error {
	if role != domain.RoleManager && role != domain.RoleSubManager {
		return nil
	}
	count, err := s.profiles.CountRoleHolders(ctx, restaurantID, role, excludingUserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count == 0 {
		return nil
	}
	code := apperrors.CodeManagerExists
	message := "restaurant already has an active manager"
	if role == domain.RoleSubManager {
		code = apperrors.CodeSubManagerExists
		message = "restaurant already has an active sub manager"
	}
	return apperrors.NewConflict(code, message, map[string]any{"restaurant_id": restaurantID})
}

// rollbackCreate undoes a freshly provisioned account after a later step in
// the create flow failed.
func (s *EmployeeService) rollbackCreate(ctx context.Context, userID string) error {
	now := time.Now()
	if err := s.profiles.SetActiveState(ctx, userID, false, &now); err != nil {
		return err
	}
	return s.identity.DeleteAccount(ctx, userID, true)
}

func (s *EmployeeService) publishLifecycleEvent(ctx context.Context, eventType events.EventType, actorID, restaurantID string, profile *domain.Profile) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		RestaurantID: restaurantID,
		ActorID:      actorID,
		Timestamp:    time.Now(),
		Payload: events.EmployeeLifecyclePayload{
			UserID: profile.ID,
			Role:   string(profile.Role),
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
