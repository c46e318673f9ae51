package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/domain"
)

// ProfileRepository handles persistence for staff profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]domain.Profile, error)
	CountRoleHolders(ctx context.Context, restaurantID string, role domain.Role, excludingUserID *string) (int, error)
	SetAreaLeadFlag(ctx context.Context, userID string, isAreaLead bool) error
	SetActiveState(ctx context.Context, userID string, isActive bool, deletedAt *time.Time) error
	SetMustChangePassword(ctx context.Context, userID string, must bool) error
	SetAvatarPath(ctx context.Context, userID, path string) error
}

// ProfileFilter defines query params for profile listing.
type ProfileFilter struct {
	RestaurantID *string
	Roles        []domain.Role
	IDs          []string
	Active       *bool
	Limit        int
}

type profileRepository struct {
	db Querier
}

// NewProfileRepository instantiates the repository.
func NewProfileRepository(db Querier) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, employee_code, full_name, role, restaurant_id, is_active, deleted_at, is_area_lead, avatar_path, must_change_password, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (id, full_name, role, restaurant_id, is_active, is_area_lead, must_change_password)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING employee_code, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.FullName,
		profile.Role,
		profile.RestaurantID,
		profile.IsActive,
		profile.IsAreaLead,
		profile.MustChangePassword,
	).Scan(&profile.EmployeeCode, &profile.CreatedAt, &profile.UpdatedAt)
	return translateConstraint(err)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles
        SET full_name=$1, role=$2, restaurant_id=$3, is_active=$4, deleted_at=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.db.Exec(ctx, query,
		profile.FullName,
		profile.Role,
		profile.RestaurantID,
		profile.IsActive,
		profile.DeletedAt,
		profile.ID,
	)
	if err != nil {
		return translateConstraint(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id=$1`

	var profile domain.Profile
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.EmployeeCode,
		&profile.FullName,
		&profile.Role,
		&profile.RestaurantID,
		&profile.IsActive,
		&profile.DeletedAt,
		&profile.IsAreaLead,
		&profile.AvatarPath,
		&profile.MustChangePassword,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, filter ProfileFilter) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	args := []any{}
	clauses := []string{}

	if filter.RestaurantID != nil {
		args = append(args, *filter.RestaurantID)
		clauses = append(clauses, fmt.Sprintf("restaurant_id=$%d", len(args)))
	}
	if len(filter.Roles) > 0 {
		roles := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			roles = append(roles, string(role))
		}
		args = append(args, roles)
		clauses = append(clauses, fmt.Sprintf("role=ANY($%d)", len(args)))
	}
	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		clauses = append(clauses, fmt.Sprintf("id=ANY($%d)", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("is_active=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY employee_code ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.EmployeeCode,
			&profile.FullName,
			&profile.Role,
			&profile.RestaurantID,
			&profile.IsActive,
			&profile.DeletedAt,
			&profile.IsAreaLead,
			&profile.AvatarPath,
			&profile.MustChangePassword,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}

func (r *profileRepository) CountRoleHolders(ctx context.Context, restaurantID string, role domain.Role, excludingUserID *string) (int, error) {
	query := `
        SELECT COUNT(*) FROM profiles
        WHERE restaurant_id=$1 AND role=$2 AND is_active=TRUE AND deleted_at IS NULL`
	args := []any{restaurantID, role}

	if excludingUserID != nil {
		args = append(args, *excludingUserID)
		query += fmt.Sprintf(" AND id<>$%d", len(args))
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *profileRepository) SetAreaLeadFlag(ctx context.Context, userID string, isAreaLead bool) error {
	const query = `UPDATE profiles SET is_area_lead=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, isAreaLead, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) SetActiveState(ctx context.Context, userID string, isActive bool, deletedAt *time.Time) error {
	const query = `UPDATE profiles SET is_active=$1, deleted_at=$2, updated_at=NOW() WHERE id=$3`

	cmd, err := r.db.Exec(ctx, query, isActive, deletedAt, userID)
	if err != nil {
		return translateConstraint(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) SetMustChangePassword(ctx context.Context, userID string, must bool) error {
	const query = `UPDATE profiles SET must_change_password=$1, updated_at=NOW() WHERE id=$2`

	_, err := r.db.Exec(ctx, query, must, userID)
	return err
}

func (r *profileRepository) SetAvatarPath(ctx context.Context, userID, path string) error {
	const query = `UPDATE profiles SET avatar_path=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, path, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
