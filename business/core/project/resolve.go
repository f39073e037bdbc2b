package project

import (
	"context"
	"strings"
)

// ResolveChainID scans the owner's on-chain projects for one matching the
// specified name. The registry keeps no reverse index, so this is a linear
// scan over every project the owner has created: fine at typical per-owner
// counts, a ceiling if an owner ever holds thousands.
//
// Name comparison is exact, owner comparison is case-insensitive. A ledger
// read failure on an individual candidate is skipped so one unavailable
// record can't abort the whole discovery. Not finding a match is a normal
// outcome, not an error.
func (c *Core) ResolveChainID(ctx context.Context, name string, owner string) (uint64, bool) {
	chainIDs, err := c.ledger.UserProjects(ctx, owner)
	if err != nil {
		c.evHandler("project: resolve: owner[%s]: project list read failed: %s", owner, err)
		return 0, false
	}

	for _, chainID := range chainIDs {
		lgrPrj, err := c.ledger.Project(ctx, chainID)
		if err != nil {
			c.evHandler("project: resolve: chainID[%d]: skipping candidate: %s", chainID, err)
			continue
		}

		if lgrPrj.Name == name && strings.EqualFold(lgrPrj.Owner, owner) {
			return chainID, true
		}
	}

	return 0, false
}
