package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// PostgresProvider implements Provider against the accounts table with bcrypt
// password hashes.
type PostgresProvider struct {
	db         repository.Querier
	bcryptCost int
}

// NewPostgresProvider builds the provider.
func NewPostgresProvider(db repository.Querier, bcryptCost int) *PostgresProvider {
	return &PostgresProvider{db: db, bcryptCost: bcryptCost}
}

func (p *PostgresProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	hash, err := auth.HashPassword(password, p.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	const query = `
        INSERT INTO accounts (email, password_hash)
        VALUES ($1,$2)
        RETURNING id`

	var id string
	if err := p.db.QueryRow(ctx, query, email, hash).Scan(&id); err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

func (p *PostgresProvider) GetAccount(ctx context.Context, id string) (*Account, error) {
	const query = `SELECT id, email, banned_until, deleted_at FROM accounts WHERE id=$1`

	var account Account
	if err := p.db.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.BannedUntil,
		&account.DeletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"account_id": id})
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	return &account, nil
}

func (p *PostgresProvider) UpdateAccount(ctx context.Context, id string, params UpdateParams) error {
	if params.Email != nil {
		if _, err := p.db.Exec(ctx,
			`UPDATE accounts SET email=$1, updated_at=NOW() WHERE id=$2`, *params.Email, id); err != nil {
			return fmt.Errorf("update account email: %w", err)
		}
	}
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password, p.bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if _, err := p.db.Exec(ctx,
			`UPDATE accounts SET password_hash=$1, updated_at=NOW() WHERE id=$2`, hash, id); err != nil {
			return fmt.Errorf("update account password: %w", err)
		}
	}
	if params.BanDuration != nil {
		var bannedUntil *time.Time
		if *params.BanDuration != BanNone {
			duration, err := time.ParseDuration(*params.BanDuration)
			if err != nil {
				return fmt.Errorf("parse ban duration: %w", err)
			}
			until := time.Now().Add(duration)
			bannedUntil = &until
		}
		if _, err := p.db.Exec(ctx,
			`UPDATE accounts SET banned_until=$1, updated_at=NOW() WHERE id=$2`, bannedUntil, id); err != nil {
			return fmt.Errorf("update account ban: %w", err)
		}
	}
	return nil
}

func (p *PostgresProvider) DeleteAccount(ctx context.Context, id string, soft bool) error {
	if soft {
		if _, err := p.db.Exec(ctx,
			`UPDATE accounts SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1`, id); err != nil {
			return fmt.Errorf("soft delete account: %w", err)
		}
		return nil
	}
	if _, err := p.db.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (p *PostgresProvider) Authenticate(ctx context.Context, email, password string) (string, error) {
	const query = `SELECT id, password_hash, banned_until, deleted_at FROM accounts WHERE email=$1`

	var (
		id          string
		hash        string
		bannedUntil *time.Time
		deletedAt   *time.Time
	)
	if err := p.db.QueryRow(ctx, query, email).Scan(&id, &hash, &bannedUntil, &deletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewUnauthorized(apperrors.CodeBadCredentials, "invalid credentials")
		}
		return "", fmt.Errorf("load account: %w", err)
	}
	if deletedAt != nil || (bannedUntil != nil && bannedUntil.After(time.Now())) {
		return "", apperrors.NewUnauthorized(apperrors.CodeDisabled, "account disabled")
	}
	if err := auth.ComparePassword(hash, password); err != nil {
		return "", apperrors.NewUnauthorized(apperrors.CodeBadCredentials, "invalid credentials")
	}
	return id, nil
}
