package identity

import (
	"context"
	"time"
)

// BanDuration values accepted by UpdateAccount. The permanent value mirrors
// how deactivation is expressed to the identity layer: a 100-year ban.
const (
	BanNone      = "none"
	BanPermanent = "876600h"
)

// Account is the identity-provider view of a staff member.
type Account struct {
	ID          string
	Email       string
	BannedUntil *time.Time
	DeletedAt   *time.Time
}

// UpdateParams carries the partial account fields to change. Nil means leave
// untouched. BanDuration is either BanNone or a Go duration string.
type UpdateParams struct {
	Email       *string
	Password    *string
	BanDuration *string
}

// Provider is the managed authentication collaborator. A created account's id
// becomes the Profile id; the roster never stores credentials itself.
type Provider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	GetAccount(ctx context.Context, id string) (*Account, error)
	UpdateAccount(ctx context.Context, id string, params UpdateParams) error
	// DeleteAccount soft-deletes by default; soft=false removes credentials.
	DeleteAccount(ctx context.Context, id string, soft bool) error
	// Authenticate verifies credentials and returns the account id.
	Authenticate(ctx context.Context, email, password string) (string, error)
}
