package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/identity"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

var (
	errBadCredentials  = apperrors.NewUnauthorized(apperrors.CodeBadCredentials, "invalid credentials")
	errDisabledAccount = apperrors.NewUnauthorized(apperrors.CodeDisabled, "account disabled")
)

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
	nextCode int64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}, nextCode: 100}
}

func (r *fakeProfileRepo) add(profile *domain.Profile) *domain.Profile {
	if profile.EmployeeCode == 0 {
		r.nextCode++
		profile.EmployeeCode = r.nextCode
	}
	r.profiles[profile.ID] = profile
	return profile
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.nextCode++
	profile.EmployeeCode = r.nextCode
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	clone := *profile
	r.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	stored, ok := r.profiles[profile.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.FullName = profile.FullName
	stored.Role = profile.Role
	stored.RestaurantID = profile.RestaurantID
	stored.IsActive = profile.IsActive
	stored.DeletedAt = profile.DeletedAt
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	stored, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeProfileRepo) List(_ context.Context, filter repository.ProfileFilter) ([]domain.Profile, error) {
	var result []domain.Profile
	for _, profile := range r.profiles {
		if filter.RestaurantID != nil {
			if profile.RestaurantID == nil || *profile.RestaurantID != *filter.RestaurantID {
				continue
			}
		}
		if len(filter.Roles) > 0 {
			match := false
			for _, role := range filter.Roles {
				if profile.Role == role {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		if len(filter.IDs) > 0 {
			match := false
			for _, id := range filter.IDs {
				if profile.ID == id {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		if filter.Active != nil && profile.IsActive != *filter.Active {
			continue
		}
		result = append(result, *profile)
	}
	return result, nil
}

func (r *fakeProfileRepo) CountRoleHolders(_ context.Context, restaurantID string, role domain.Role, excludingUserID *string) (int, error) {
	count := 0
	for _, profile := range r.profiles {
		if profile.RestaurantID == nil || *profile.RestaurantID != restaurantID {
			continue
		}
		if profile.Role != role || !profile.IsActive || profile.DeletedAt != nil {
			continue
		}
		if excludingUserID != nil && profile.ID == *excludingUserID {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeProfileRepo) SetAreaLeadFlag(_ context.Context, userID string, isAreaLead bool) error {
	stored, ok := r.profiles[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.IsAreaLead = isAreaLead
	return nil
}

func (r *fakeProfileRepo) SetActiveState(_ context.Context, userID string, isActive bool, deletedAt *time.Time) error {
	stored, ok := r.profiles[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.IsActive = isActive
	stored.DeletedAt = deletedAt
	return nil
}

func (r *fakeProfileRepo) SetMustChangePassword(_ context.Context, userID string, must bool) error {
	stored, ok := r.profiles[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.MustChangePassword = must
	return nil
}

func (r *fakeProfileRepo) SetAvatarPath(_ context.Context, userID, path string) error {
	stored, ok := r.profiles[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.AvatarPath = &path
	return nil
}

type fakeAreaLeadRepo struct {
	leads  []*domain.AreaLead
	nextID int
}

func newFakeAreaLeadRepo() *fakeAreaLeadRepo {
	return &fakeAreaLeadRepo{}
}

func (r *fakeAreaLeadRepo) Insert(_ context.Context, lead *domain.AreaLead) error {
	r.nextID++
	lead.ID = fmt.Sprintf("lead-%d", r.nextID)
	lead.IsActive = true
	lead.RevokedAt = nil
	lead.CreatedAt = time.Now()
	clone := *lead
	r.leads = append(r.leads, &clone)
	return nil
}

func (r *fakeAreaLeadRepo) GetByID(_ context.Context, id string) (*domain.AreaLead, error) {
	for _, lead := range r.leads {
		if lead.ID == id {
			clone := *lead
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAreaLeadRepo) ListActiveByZone(_ context.Context, restaurantID string, zone domain.Zone) ([]domain.AreaLead, error) {
	var result []domain.AreaLead
	for _, lead := range r.leads {
		if lead.RestaurantID == restaurantID && lead.Zone == zone && lead.IsActive {
			result = append(result, *lead)
		}
	}
	return result, nil
}

func (r *fakeAreaLeadRepo) ListActiveByRestaurant(_ context.Context, restaurantID string) ([]domain.AreaLead, error) {
	var result []domain.AreaLead
	for _, lead := range r.leads {
		if lead.RestaurantID == restaurantID && lead.IsActive {
			result = append(result, *lead)
		}
	}
	return result, nil
}

func (r *fakeAreaLeadRepo) ListActiveByUser(_ context.Context, userID string) ([]domain.AreaLead, error) {
	var result []domain.AreaLead
	for _, lead := range r.leads {
		if lead.UserID == userID && lead.IsActive {
			result = append(result, *lead)
		}
	}
	return result, nil
}

func (r *fakeAreaLeadRepo) HasActiveForUser(_ context.Context, userID string) (bool, error) {
	for _, lead := range r.leads {
		if lead.UserID == userID && lead.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAreaLeadRepo) Revoke(_ context.Context, id string, at time.Time) error {
	for _, lead := range r.leads {
		if lead.ID == id && lead.IsActive {
			lead.IsActive = false
			revokedAt := at
			lead.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (r *fakeAreaLeadRepo) activeCount() int {
	count := 0
	for _, lead := range r.leads {
		if lead.IsActive {
			count++
		}
	}
	return count
}

type fakeRestaurantRepo struct {
	restaurants map[string]*domain.Restaurant
}

func newFakeRestaurantRepo(restaurants ...*domain.Restaurant) *fakeRestaurantRepo {
	repo := &fakeRestaurantRepo{restaurants: map[string]*domain.Restaurant{}}
	for _, restaurant := range restaurants {
		repo.restaurants[restaurant.ID] = restaurant
	}
	return repo
}

func (r *fakeRestaurantRepo) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return restaurant, nil
}

func (r *fakeRestaurantRepo) List(_ context.Context) ([]domain.Restaurant, error) {
	var result []domain.Restaurant
	for _, restaurant := range r.restaurants {
		result = append(result, *restaurant)
	}
	return result, nil
}

type fakeAccount struct {
	email       string
	password    string
	bannedUntil *time.Time
	deletedAt   *time.Time
}

type fakeIdentityProvider struct {
	accounts map[string]*fakeAccount
	nextID   int
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{accounts: map[string]*fakeAccount{}}
}

func (p *fakeIdentityProvider) addAccount(id, email, password string) {
	p.accounts[id] = &fakeAccount{email: email, password: password}
}

func (p *fakeIdentityProvider) CreateAccount(_ context.Context, email, password string) (string, error) {
	p.nextID++
	id := fmt.Sprintf("acct-%d", p.nextID)
	p.accounts[id] = &fakeAccount{email: email, password: password}
	return id, nil
}

func (p *fakeIdentityProvider) GetAccount(_ context.Context, id string) (*identity.Account, error) {
	account, ok := p.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &identity.Account{ID: id, Email: account.email, BannedUntil: account.bannedUntil, DeletedAt: account.deletedAt}, nil
}

func (p *fakeIdentityProvider) UpdateAccount(_ context.Context, id string, params identity.UpdateParams) error {
	account, ok := p.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if params.Email != nil {
		account.email = *params.Email
	}
	if params.Password != nil {
		account.password = *params.Password
	}
	if params.BanDuration != nil {
		if *params.BanDuration == identity.BanNone {
			account.bannedUntil = nil
		} else {
			duration, err := time.ParseDuration(*params.BanDuration)
			if err != nil {
				return err
			}
			until := time.Now().Add(duration)
			account.bannedUntil = &until
		}
	}
	return nil
}

func (p *fakeIdentityProvider) DeleteAccount(_ context.Context, id string, soft bool) error {
	account, ok := p.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if soft {
		now := time.Now()
		account.deletedAt = &now
		return nil
	}
	delete(p.accounts, id)
	return nil
}

func (p *fakeIdentityProvider) Authenticate(_ context.Context, email, password string) (string, error) {
	for id, account := range p.accounts {
		if account.email != email {
			continue
		}
		if account.deletedAt != nil || (account.bannedUntil != nil && account.bannedUntil.After(time.Now())) {
			return "", errDisabledAccount
		}
		if account.password != password {
			return "", errBadCredentials
		}
		return id, nil
	}
	return "", errBadCredentials
}
