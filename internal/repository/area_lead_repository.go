package repository

import (
	"context"
	"time"

	"github.com/spec-kit/roster-service/internal/domain"
)

// AreaLeadRepository handles persistence for zone lead assignments. Rows are
// append-mostly: grants insert, revocations flip is_active and set revoked_at,
// nothing is ever hard-deleted.
type AreaLeadRepository interface {
	Insert(ctx context.Context, lead *domain.AreaLead) error
	GetByID(ctx context.Context, id string) (*domain.AreaLead, error)
	ListActiveByZone(ctx context.Context, restaurantID string, zone domain.Zone) ([]domain.AreaLead, error)
	ListActiveByRestaurant(ctx context.Context, restaurantID string) ([]domain.AreaLead, error)
	ListActiveByUser(ctx context.Context, userID string) ([]domain.AreaLead, error)
	HasActiveForUser(ctx context.Context, userID string) (bool, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

type areaLeadRepository struct {
	db Querier
}

// NewAreaLeadRepository instantiates the repository.
func NewAreaLeadRepository(db Querier) AreaLeadRepository {
	return &areaLeadRepository{db: db}
}

const areaLeadColumns = `id, restaurant_id, zone, lead_slot, user_id, assigned_by, is_active, revoked_at, created_at`

func (r *areaLeadRepository) Insert(ctx context.Context, lead *domain.AreaLead) error {
	const query = `
        INSERT INTO area_leads (restaurant_id, zone, lead_slot, user_id, assigned_by, is_active)
        VALUES ($1,$2,$3,$4,$5,TRUE)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		lead.RestaurantID,
		lead.Zone,
		lead.Slot,
		lead.UserID,
		lead.AssignedBy,
	).Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	lead.IsActive = true
	lead.RevokedAt = nil
	return nil
}

func (r *areaLeadRepository) GetByID(ctx context.Context, id string) (*domain.AreaLead, error) {
	query := `SELECT ` + areaLeadColumns + ` FROM area_leads WHERE id=$1`

	var lead domain.AreaLead
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.RestaurantID,
		&lead.Zone,
		&lead.Slot,
		&lead.UserID,
		&lead.AssignedBy,
		&lead.IsActive,
		&lead.RevokedAt,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *areaLeadRepository) ListActiveByZone(ctx context.Context, restaurantID string, zone domain.Zone) ([]domain.AreaLead, error) {
	query := `SELECT ` + areaLeadColumns + `
        FROM area_leads
        WHERE restaurant_id=$1 AND zone=$2 AND is_active=TRUE AND revoked_at IS NULL
        ORDER BY lead_slot ASC`

	return r.queryLeads(ctx, query, restaurantID, zone)
}

func (r *areaLeadRepository) ListActiveByRestaurant(ctx context.Context, restaurantID string) ([]domain.AreaLead, error) {
	query := `SELECT ` + areaLeadColumns + `
        FROM area_leads
        WHERE restaurant_id=$1 AND is_active=TRUE AND revoked_at IS NULL
        ORDER BY zone ASC, lead_slot ASC`

	return r.queryLeads(ctx, query, restaurantID)
}

func (r *areaLeadRepository) ListActiveByUser(ctx context.Context, userID string) ([]domain.AreaLead, error) {
	query := `SELECT ` + areaLeadColumns + `
        FROM area_leads
        WHERE user_id=$1 AND is_active=TRUE AND revoked_at IS NULL
        ORDER BY created_at ASC`

	return r.queryLeads(ctx, query, userID)
}

func (r *areaLeadRepository) HasActiveForUser(ctx context.Context, userID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM area_leads
            WHERE user_id=$1 AND is_active=TRUE AND revoked_at IS NULL
        )`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *areaLeadRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	const query = `
        UPDATE area_leads SET is_active=FALSE, revoked_at=$1
        WHERE id=$2 AND is_active=TRUE AND revoked_at IS NULL`

	// Zero rows affected means the row was already revoked; callers treat the
	// second revocation as a vacuous success.
	_, err := r.db.Exec(ctx, query, at, id)
	return err
}

func (r *areaLeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]domain.AreaLead, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AreaLead
	for rows.Next() {
		var lead domain.AreaLead
		if err := rows.Scan(
			&lead.ID,
			&lead.RestaurantID,
			&lead.Zone,
			&lead.Slot,
			&lead.UserID,
			&lead.AssignedBy,
			&lead.IsActive,
			&lead.RevokedAt,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
