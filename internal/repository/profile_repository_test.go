package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"

	"github.com/spec-kit/roster-service/internal/domain"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

func TestTranslateConstraint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		constraint string
		wantCode   string
	}{
		{constraintOneManager, apperrors.CodeManagerExists},
		{constraintOneSubManager, apperrors.CodeSubManagerExists},
		{constraintOneLeadSlot, apperrors.CodeAreaLeadZoneFull},
	}
	for _, tc := range cases {
		pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: tc.constraint}
		if got := apperrors.Code(translateConstraint(pgErr)); got != tc.wantCode {
			t.Fatalf("constraint %s: want %s, got %s", tc.constraint, tc.wantCode, got)
		}
	}

	other := errors.New("random")
	if translateConstraint(other) != other {
		t.Fatal("unexpected translation for generic error")
	}
	unrelated := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "accounts_email_key"}
	if translateConstraint(unrelated) != unrelated {
		t.Fatal("unknown constraints must pass through")
	}
}

func TestProfileRepository_Create_TranslatesManagerConflict(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewProfileRepository(mock)

	restaurant := "rest-1"
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs("user-1", "Ana", domain.RoleManager, &restaurant, true, false, true).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraintOneManager})

	err = repo.Create(context.Background(), &domain.Profile{
		ID:                 "user-1",
		FullName:           "Ana",
		Role:               domain.RoleManager,
		RestaurantID:       &restaurant,
		IsActive:           true,
		MustChangePassword: true,
	})
	if apperrors.Code(err) != apperrors.CodeManagerExists {
		t.Fatalf("expected manager_exists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileRepository_CountRoleHolders(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewProfileRepository(mock)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("rest-1", domain.RoleManager).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountRoleHolders(context.Background(), "rest-1", domain.RoleManager, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1, got %d", count)
	}
}

func TestProfileRepository_CountRoleHolders_Excluding(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewProfileRepository(mock)

	exclude := "user-1"
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles\s+WHERE restaurant_id=\$1 AND role=\$2 AND is_active=TRUE AND deleted_at IS NULL AND id<>\$3`).
		WithArgs("rest-1", domain.RoleSubManager, exclude).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountRoleHolders(context.Background(), "rest-1", domain.RoleSubManager, &exclude)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileRepository_Update_NoRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewProfileRepository(mock)

	mock.ExpectExec("UPDATE profiles").
		WithArgs("Ana", domain.RoleEmployee, (*string)(nil), true, (*time.Time)(nil), "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), &domain.Profile{
		ID:       "ghost",
		FullName: "Ana",
		Role:     domain.RoleEmployee,
		IsActive: true,
	})
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}
