// Package user provides the core business API for wallet-keyed user
// profiles. Profiles are created lazily the first time an address is looked
// up, mirroring how wallets just appear on chain.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecochain/ecochain/foundation/validate"
)

// ErrNotFound is returned when a user record is not in the store.
var ErrNotFound = errors.New("user not found")

// User represents a wallet-keyed profile record.
type User struct {
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storer interface declares the behavior this package needs to persist and
// retrieve user records.
type Storer interface {
	Create(ctx context.Context, usr User) error
	QueryByAddress(ctx context.Context, address string) (User, error)
}

// Core manages the set of APIs for user access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for user api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// QueryByAddress retrieves the user record for the specified wallet address,
// creating one on first sight.
func (c *Core) QueryByAddress(ctx context.Context, address string) (User, error) {
	if err := validate.CheckAddress(address); err != nil {
		return User{}, err
	}

	address = strings.ToLower(address)

	usr, err := c.storer.QueryByAddress(ctx, address)
	if err == nil {
		return usr, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("query: address[%s]: %w", address, err)
	}

	now := time.Now().UTC()
	usr = User{
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, usr); err != nil {
		return User{}, fmt.Errorf("create: address[%s]: %w", address, err)
	}

	return usr, nil
}
