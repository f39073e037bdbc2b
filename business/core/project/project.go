// Package project provides the core business API for sustainability project
// records. The authoritative funding state lives on the ledger; this package
// reconciles the off-chain records against it and drives the one-way
// verification transition.
package project

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ecochain/ecochain/foundation/ledger"
	"github.com/ecochain/ecochain/foundation/validate"
	"github.com/google/uuid"
)

// EventHandler defines a function that is called when events occur in the
// processing of syncing and verifying projects.
type EventHandler func(v string, args ...any)

// Storer interface declares the behavior this package needs to persist and
// retrieve project records.
type Storer interface {
	Create(ctx context.Context, prj Project) error
	Update(ctx context.Context, prj Project) error
	UpdateFunding(ctx context.Context, id uuid.UUID, totalFunds *string, contributors *int, updatedAt time.Time) error
	QueryByID(ctx context.Context, id uuid.UUID) (Project, error)
	QueryByChainID(ctx context.Context, chainID uint64) (Project, error)
	Query(ctx context.Context, filter QueryFilter) ([]Project, error)
}

// Ledger interface declares the on-chain read and write behavior this
// package depends on.
type Ledger interface {
	Project(ctx context.Context, chainID uint64) (ledger.Project, error)
	ProjectFundings(ctx context.Context, chainID uint64) ([]ledger.Funding, error)
	TotalContributions(ctx context.Context, chainID uint64) (string, error)
	UserContribution(ctx context.Context, address string, chainID uint64) (string, error)
	UserProjects(ctx context.Context, address string) ([]uint64, error)
	VerifyProject(ctx context.Context, chainID uint64) (string, error)
}

// Config represents the configuration required to construct the core.
type Config struct {
	Storer    Storer
	Ledger    Ledger
	EvHandler EventHandler
}

// Core manages the set of APIs for project access and reconciliation.
type Core struct {
	storer    Storer
	ledger    Ledger
	evHandler EventHandler
	wg        sync.WaitGroup
}

// NewCore constructs a core for project api access.
func NewCore(cfg Config) *Core {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	return &Core{
		storer:    cfg.Storer,
		ledger:    cfg.Ledger,
		evHandler: ev,
	}
}

// Shutdown waits for any detached background syncs to drain.
func (c *Core) Shutdown() {
	c.wg.Wait()
}

// Create adds a new project record to the system.
func (c *Core) Create(ctx context.Context, np NewProject) (Project, error) {
	if err := validate.Check(np); err != nil {
		return Project{}, err
	}

	now := time.Now().UTC()

	prj := Project{
		ID:          uuid.New(),
		ChainID:     np.ChainID,
		Name:        strings.TrimSpace(np.Name),
		Description: strings.TrimSpace(np.Description),
		Owner:       strings.ToLower(np.Owner),
		FundingGoal: np.FundingGoal,
		TotalFunds:  "0",
		Verified:    false,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, prj); err != nil {
		return Project{}, fmt.Errorf("create: %w", err)
	}

	return prj, nil
}

// Update modifies the off-chain administrative fields of a project record.
func (c *Core) Update(ctx context.Context, id uuid.UUID, up UpdateProject) (Project, error) {
	if err := validate.Check(up); err != nil {
		return Project{}, err
	}

	prj, err := c.storer.QueryByID(ctx, id)
	if err != nil {
		return Project{}, fmt.Errorf("query: id[%s]: %w", id, err)
	}

	if up.Name != nil {
		prj.Name = strings.TrimSpace(*up.Name)
	}
	if up.Description != nil {
		prj.Description = strings.TrimSpace(*up.Description)
	}
	if up.Active != nil {
		prj.Active = *up.Active
	}
	prj.UpdatedAt = time.Now().UTC()

	if err := c.storer.Update(ctx, prj); err != nil {
		return Project{}, fmt.Errorf("update: id[%s]: %w", id, err)
	}

	return prj, nil
}

// Query retrieves the filtered set of project records from the store. The
// response is served from the cached funding values while a detached bulk
// sync refreshes every on-chain record for subsequent reads.
func (c *Core) Query(ctx context.Context, filter QueryFilter) ([]Project, error) {
	prjs, err := c.storer.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	c.syncAll(prjs)

	return prjs, nil
}

// QueryByID retrieves a single project record and refreshes its funding
// fields from the ledger before returning. The funding list from the sync
// pass is returned alongside the record when that read succeeded.
func (c *Core) QueryByID(ctx context.Context, id uuid.UUID) (Project, []Funding, error) {
	prj, err := c.storer.QueryByID(ctx, id)
	if err != nil {
		return Project{}, nil, fmt.Errorf("query: id[%s]: %w", id, err)
	}

	prj, fundings := c.Sync(ctx, prj)

	return prj, fundings, nil
}

// QueryByOwner retrieves the set of project records owned by the specified
// wallet address.
func (c *Core) QueryByOwner(ctx context.Context, owner string) ([]Project, error) {
	if err := validate.CheckAddress(owner); err != nil {
		return nil, err
	}

	owner = strings.ToLower(owner)

	prjs, err := c.storer.Query(ctx, QueryFilter{Owner: &owner})
	if err != nil {
		return nil, fmt.Errorf("query: owner[%s]: %w", owner, err)
	}

	return prjs, nil
}

// Contribution returns the amount the specified address has contributed to
// the specified project, read directly from the ledger.
func (c *Core) Contribution(ctx context.Context, id uuid.UUID, address string) (string, error) {
	if err := validate.CheckAddress(address); err != nil {
		return "", err
	}

	prj, err := c.storer.QueryByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("query: id[%s]: %w", id, err)
	}

	if prj.ChainID == nil {
		return "", ErrNotOnChain
	}

	amount, err := c.ledger.UserContribution(ctx, address, *prj.ChainID)
	if err != nil {
		return "", fmt.Errorf("ledger read: chainID[%d]: %w", *prj.ChainID, err)
	}

	return amount, nil
}
