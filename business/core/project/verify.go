package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Verify drives a project through the one-way unverified to verified
// transition: resolve the chain id if the record lacks one, submit the
// verification transaction, then persist the flag. The ledger error from the
// transaction is propagated unmodified and is never retried here, since a
// blind retry risks a duplicate transaction.
//
// Two concurrent calls for the same unverified project can both pass the
// precondition and both submit a transaction. Callers that allow concurrent
// verification requests must serialize them per project.
func (c *Core) Verify(ctx context.Context, id uuid.UUID) (Project, string, error) {
	prj, err := c.storer.QueryByID(ctx, id)
	if err != nil {
		return Project{}, "", fmt.Errorf("query: id[%s]: %w", id, err)
	}

	if prj.Verified {
		return Project{}, "", ErrAlreadyVerified
	}

	if prj.ChainID == nil {
		chainID, found := c.ResolveChainID(ctx, prj.Name, prj.Owner)
		if !found {
			return Project{}, "", ErrNotOnChain
		}

		// Persist the discovered chain id before touching the ledger so a
		// failed verification doesn't force the next attempt to repeat the
		// scan.
		prj.ChainID = &chainID
		prj.UpdatedAt = time.Now().UTC()
		if err := c.storer.Update(ctx, prj); err != nil {
			return Project{}, "", fmt.Errorf("persisting resolved chain id: id[%s]: %w", id, err)
		}

		c.evHandler("project: verify: id[%s]: resolved chainID[%d]", id, chainID)
	}

	txHash, err := c.ledger.VerifyProject(ctx, *prj.ChainID)
	if err != nil {
		return Project{}, "", err
	}

	prj.Verified = true
	prj.UpdatedAt = time.Now().UTC()
	if err := c.storer.Update(ctx, prj); err != nil {
		return Project{}, "", fmt.Errorf("persisting verified flag: id[%s]: %w", id, err)
	}

	c.evHandler("project: verify: id[%s]: chainID[%d]: tx[%s]", id, *prj.ChainID, txHash)

	return prj, txHash, nil
}
