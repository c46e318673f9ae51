package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/events"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// AreaLeadService grants and revokes zone lead slots and keeps the
// denormalized profiles.is_area_lead flag in sync with the assignment rows.
type AreaLeadService struct {
	leads       repository.AreaLeadRepository
	profiles    repository.ProfileRepository
	restaurants repository.RestaurantRepository
	dispatcher  events.Dispatcher
}

// AreaLeadDependencies bundles repositories.
type AreaLeadDependencies struct {
	LeadRepo       repository.AreaLeadRepository
	ProfileRepo    repository.ProfileRepository
	RestaurantRepo repository.RestaurantRepository
	Dispatcher     events.Dispatcher
}

// NewAreaLeadService creates the service.
func NewAreaLeadService(deps AreaLeadDependencies) *AreaLeadService {
	return &AreaLeadService{
		leads:       deps.LeadRepo,
		profiles:    deps.ProfileRepo,
		restaurants: deps.RestaurantRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Assign grants the first free slot of the zone to userID. Both slots occupied
// fails with area_lead_zone_full and inserts nothing. Preconditions (target is
// an employee, caller may manage the restaurant) are enforced by the caller.
func (s *AreaLeadService) Assign(ctx context.Context, restaurantID string, zone domain.Zone, userID, assignedBy string) (*domain.AreaLead, error) {
	if err := assertRestaurantUsable(ctx, s.restaurants, restaurantID); err != nil {
		return nil, err
	}

	active, err := s.leads.ListActiveByZone(ctx, restaurantID, zone)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	occupied := map[int16]bool{}
	for _, lead := range active {
		occupied[lead.Slot] = true
	}

	var slot int16
	switch {
	case !occupied[domain.LeadSlotFirst]:
		slot = domain.LeadSlotFirst
	case !occupied[domain.LeadSlotSecond]:
		slot = domain.LeadSlotSecond
	default:
		return nil, apperrors.NewConflict(apperrors.CodeAreaLeadZoneFull, "zone already has two active leads", map[string]any{
			"restaurant_id": restaurantID,
			"zone":          zone,
		})
	}

	lead := &domain.AreaLead{
		RestaurantID: restaurantID,
		Zone:         zone,
		Slot:         slot,
		UserID:       userID,
		AssignedBy:   assignedBy,
	}
	// The unique index over active (restaurant, zone, slot) rows backstops the
	// check above; a loser of that race gets the same domain code.
	if err := s.leads.Insert(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.syncIsAreaLead(ctx, userID); err != nil {
		return nil, err
	}

	s.publishLeadEvent(ctx, events.EventAreaLeadAssigned, assignedBy, lead)
	return lead, nil
}

// Replace grants a specific slot, revoking the current occupant first. This is
// the explicit-replacement variant; callers that want "fail when full" use
// Assign instead.
func (s *AreaLeadService) Replace(ctx context.Context, restaurantID string, zone domain.Zone, slot int16, userID, assignedBy string) (*domain.AreaLead, error) {
	if slot != domain.LeadSlotFirst && slot != domain.LeadSlotSecond {
		return nil, apperrors.NewValidationError(apperrors.CodeMissing, "invalid lead slot")
	}
	if err := assertRestaurantUsable(ctx, s.restaurants, restaurantID); err != nil {
		return nil, err
	}

	active, err := s.leads.ListActiveByZone(ctx, restaurantID, zone)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var replacedUserID string
	for _, current := range active {
		if current.Slot != slot {
			continue
		}
		if err := s.leads.Revoke(ctx, current.ID, time.Now()); err != nil {
			return nil, apperrors.MapError(err)
		}
		replacedUserID = current.UserID
	}

	lead := &domain.AreaLead{
		RestaurantID: restaurantID,
		Zone:         zone,
		Slot:         slot,
		UserID:       userID,
		AssignedBy:   assignedBy,
	}
	if err := s.leads.Insert(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.syncIsAreaLead(ctx, userID); err != nil {
		return nil, err
	}
	if replacedUserID != "" && replacedUserID != userID {
		if err := s.syncIsAreaLead(ctx, replacedUserID); err != nil {
			return nil, err
		}
	}

	s.publishLeadEvent(ctx, events.EventAreaLeadAssigned, assignedBy, lead)
	return lead, nil
}

// Revoke deactivates a lead assignment and re-syncs its holder's flag. A
// second call for an already revoked id succeeds vacuously; the sync is
// idempotent.
func (s *AreaLeadService) Revoke(ctx context.Context, leadID string) error {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("area lead", map[string]any{"lead_id": leadID})
		}
		return apperrors.MapError(err)
	}

	if err := s.leads.Revoke(ctx, lead.ID, time.Now()); err != nil {
		return apperrors.MapError(err)
	}

	if err := s.syncIsAreaLead(ctx, lead.UserID); err != nil {
		return err
	}

	s.publishLeadEvent(ctx, events.EventAreaLeadRevoked, lead.AssignedBy, lead)
	return nil
}

// RevokeForUser revokes a lead only when it belongs to the given user and
// restaurant and is still active; anything else is reported as not found so
// stale ids cannot touch other rows.
func (s *AreaLeadService) RevokeForUser(ctx context.Context, leadID, userID, restaurantID string) error {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("area lead", map[string]any{"lead_id": leadID})
		}
		return apperrors.MapError(err)
	}
	if lead.UserID != userID || lead.RestaurantID != restaurantID || !lead.IsActive || lead.RevokedAt != nil {
		return apperrors.NewNotFound("area lead", map[string]any{"lead_id": leadID})
	}
	return s.Revoke(ctx, leadID)
}

// ListActive returns the restaurant's active leads with holder names.
func (s *AreaLeadService) ListActive(ctx context.Context, restaurantID string) ([]domain.AreaLeadListItem, error) {
	leads, err := s.leads.ListActiveByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(leads) == 0 {
		return []domain.AreaLeadListItem{}, nil
	}

	seen := map[string]bool{}
	ids := make([]string, 0, len(leads))
	for _, lead := range leads {
		if !seen[lead.UserID] {
			seen[lead.UserID] = true
			ids = append(ids, lead.UserID)
		}
	}

	profiles, err := s.profiles.List(ctx, repository.ProfileFilter{IDs: ids})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	names := make(map[string]string, len(profiles))
	for _, profile := range profiles {
		names[profile.ID] = profile.FullName
	}

	items := make([]domain.AreaLeadListItem, 0, len(leads))
	for _, lead := range leads {
		items = append(items, domain.AreaLeadListItem{
			ID:       lead.ID,
			Zone:     lead.Zone,
			Slot:     lead.Slot,
			UserID:   lead.UserID,
			FullName: names[lead.UserID],
		})
	}
	return items, nil
}

// ListActiveForUser returns the user's active leads.
func (s *AreaLeadService) ListActiveForUser(ctx context.Context, userID string) ([]domain.AreaLead, error) {
	leads, err := s.leads.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leads, nil
}

// syncIsAreaLead is the single writer of profiles.is_area_lead. It recomputes
// the flag from the active rows and persists it unconditionally; it must run
// after every mutation of the area_leads table.
func (s *AreaLeadService) syncIsAreaLead(ctx context.Context, userID string) error {
	hasActive, err := s.leads.HasActiveForUser(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.profiles.SetAreaLeadFlag(ctx, userID, hasActive); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *AreaLeadService) publishLeadEvent(ctx context.Context, eventType events.EventType, actorID string, lead *domain.AreaLead) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		RestaurantID: lead.RestaurantID,
		ActorID:      actorID,
		Timestamp:    time.Now(),
		Payload: events.AreaLeadPayload{
			LeadID: lead.ID,
			UserID: lead.UserID,
			Zone:   string(lead.Zone),
			Slot:   lead.Slot,
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
