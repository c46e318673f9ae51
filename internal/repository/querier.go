package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// Querier is the query surface shared by pgxpool.Pool, pgx.Tx and pgxmock,
// letting repositories run against any of them.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const uniqueViolationCode = "23505"

// Named constraints backing the slot ceilings. A 23505 on one of these is the
// storage layer winning a check-then-act race; it must surface as the same
// domain code the pre-check produces.
const (
	constraintOneManager    = "ux_profiles_one_manager_per_restaurant"
	constraintOneSubManager = "ux_profiles_one_sub_manager_per_restaurant"
	constraintOneLeadSlot   = "ux_area_leads_one_active_per_slot"
)

func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch pgErr.ConstraintName {
	case constraintOneManager:
		return apperrors.NewConflict(apperrors.CodeManagerExists, "active manager already exists in restaurant", nil)
	case constraintOneSubManager:
		return apperrors.NewConflict(apperrors.CodeSubManagerExists, "active sub manager already exists in restaurant", nil)
	case constraintOneLeadSlot:
		return apperrors.NewConflict(apperrors.CodeAreaLeadZoneFull, "area lead slot already taken", nil)
	}
	return err
}
