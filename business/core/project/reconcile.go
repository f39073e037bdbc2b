package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ecochain/ecochain/foundation/ledger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentSyncs bounds the fan-out of a detached bulk sync so a large
// listing doesn't flood the RPC endpoint.
const maxConcurrentSyncs = 8

// Sync refreshes the cached funding fields on the specified project from the
// ledger and returns the merged record. The two ledger reads run
// concurrently and each is allowed to fail on its own: a field is only
// overwritten by a successful read, and when both reads fail the record is
// returned exactly as it came in. The merged record is persisted when at
// least one read succeeded; a persist failure is logged and swallowed so the
// read path still serves the fresh values.
func (c *Core) Sync(ctx context.Context, prj Project) (Project, []Funding) {
	if prj.ChainID == nil {
		return prj, nil
	}
	chainID := *prj.ChainID

	var (
		total    string
		totalErr error
		funds    []ledger.Funding
		fundsErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		total, totalErr = c.ledger.TotalContributions(ctx, chainID)
	}()

	go func() {
		defer wg.Done()
		funds, fundsErr = c.ledger.ProjectFundings(ctx, chainID)
	}()

	wg.Wait()

	var dirty bool

	if totalErr != nil {
		c.evHandler("project: sync: chainID[%d]: total contributions read failed: %s", chainID, totalErr)
	} else {
		prj.TotalFunds = total
		dirty = true
	}

	var fundings []Funding
	if fundsErr != nil {
		c.evHandler("project: sync: chainID[%d]: funding list read failed: %s", chainID, fundsErr)
	} else {
		prj.Contributors = distinctFunders(funds)
		fundings = toFundings(funds)
		dirty = true
	}

	// Degraded but valid: both reads failed, keep the cached values.
	if !dirty {
		return prj, nil
	}

	prj.UpdatedAt = time.Now().UTC()

	// Persist only the fields this sync owns. The record may have been
	// verified or administratively updated while the ledger reads were in
	// flight, and this snapshot must not write those fields back stale.
	var totalFunds *string
	if totalErr == nil {
		totalFunds = &prj.TotalFunds
	}
	var contributors *int
	if fundsErr == nil {
		contributors = &prj.Contributors
	}

	if err := c.storer.UpdateFunding(ctx, prj.ID, totalFunds, contributors, prj.UpdatedAt); err != nil {
		c.evHandler("project: sync: chainID[%d]: persist failed: %s", chainID, err)
	}

	return prj, fundings
}

// syncAll refreshes every specified project that has a chain id. The work is
// detached from the calling request so the response is served immediately
// from the cached values; a client polling right after a funding transaction
// may see stale data for one request cycle.
func (c *Core) syncAll(prjs []Project) {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		// The originating request may be long gone by the time these ledger
		// reads complete, so they run on their own context.
		ctx := context.Background()

		var g errgroup.Group
		g.SetLimit(maxConcurrentSyncs)

		for _, prj := range prjs {
			if prj.ChainID == nil {
				continue
			}
			g.Go(func() error {
				c.Sync(ctx, prj)
				return nil
			})
		}

		g.Wait()
	}()
}

// QueryByChainID retrieves the project record holding the specified chain
// id. When no off-chain record exists the ledger record is used to
// materialize one, seeded with the on-chain fields.
func (c *Core) QueryByChainID(ctx context.Context, chainID uint64) (Project, error) {
	prj, err := c.storer.QueryByChainID(ctx, chainID)
	if err == nil {
		prj, _ = c.Sync(ctx, prj)
		return prj, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return Project{}, fmt.Errorf("query: chainID[%d]: %w", chainID, err)
	}

	// No cache to fall back on here, so unlike a sync pass a failed ledger
	// read does surface to the caller.
	lgrPrj, err := c.ledger.Project(ctx, chainID)
	if err != nil {
		if ledger.IsRejected(err) {
			return Project{}, ErrNotFound
		}
		return Project{}, fmt.Errorf("ledger read: chainID[%d]: %w", chainID, err)
	}

	now := time.Now().UTC()
	id := lgrPrj.ID

	prj = Project{
		ID:          uuid.New(),
		ChainID:     &id,
		Name:        lgrPrj.Name,
		Description: lgrPrj.Description,
		Owner:       strings.ToLower(lgrPrj.Owner),
		FundingGoal: lgrPrj.FundingGoal,
		TotalFunds:  lgrPrj.TotalFunds,
		Verified:    lgrPrj.IsVerified,
		Active:      lgrPrj.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, prj); err != nil {
		return Project{}, fmt.Errorf("materialize: chainID[%d]: %w", chainID, err)
	}

	c.evHandler("project: materialize: chainID[%d]: id[%s]", chainID, prj.ID)

	return prj, nil
}
