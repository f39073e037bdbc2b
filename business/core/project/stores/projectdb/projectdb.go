// Package projectdb contains project record storage on BadgerDB.
package projectdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ecochain/ecochain/business/core/project"
	"github.com/google/uuid"
)

// keyPrefix namespaces project records inside the shared database.
const keyPrefix = "project:"

// Store manages the set of APIs for project record persistence.
type Store struct {
	db *badger.DB
}

// NewStore constructs a store for api access.
func NewStore(db *badger.DB) *Store {
	return &Store{
		db: db,
	}
}

// Create adds a new project record to the database. A chain id can only be
// held by one record.
func (s *Store) Create(ctx context.Context, prj project.Project) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if prj.ChainID != nil {
			if err := checkChainID(txn, prj.ID, *prj.ChainID); err != nil {
				return err
			}
		}

		if _, err := txn.Get(key(prj.ID)); err == nil {
			return fmt.Errorf("id %s already exists", prj.ID)
		}

		return write(txn, prj)
	})
}

// Update replaces an existing project record in the database. The write is
// last-writer-wins at the record level and is meant for administrative and
// verification writes; syncs go through UpdateFunding so they can't write a
// stale snapshot of those fields.
func (s *Store) Update(ctx context.Context, prj project.Project) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if prj.ChainID != nil {
			if err := checkChainID(txn, prj.ID, *prj.ChainID); err != nil {
				return err
			}
		}

		return write(txn, prj)
	})
}

// UpdateFunding refreshes only the cached funding fields on a record. The
// stored record is re-read inside the write transaction so the verified flag,
// chain id, and administrative fields keep whatever value landed last.
func (s *Store) UpdateFunding(ctx context.Context, id uuid.UUID, totalFunds *string, contributors *int, updatedAt time.Time) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return project.ErrNotFound
			}
			return err
		}

		var prj project.Project
		if err := item.Value(func(val []byte) error {
			return decode(val, &prj)
		}); err != nil {
			return err
		}

		if totalFunds != nil {
			prj.TotalFunds = *totalFunds
		}
		if contributors != nil {
			prj.Contributors = *contributors
		}
		prj.UpdatedAt = updatedAt

		return write(txn, prj)
	})
}

// QueryByID retrieves the project record with the specified id.
func (s *Store) QueryByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	var prj project.Project

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return project.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			return decode(val, &prj)
		})
	})
	if err != nil {
		return project.Project{}, err
	}

	return prj, nil
}

// QueryByChainID retrieves the project record holding the specified chain
// id. There is no secondary index, this walks the project keyspace.
func (s *Store) QueryByChainID(ctx context.Context, chainID uint64) (project.Project, error) {
	var found bool
	var prj project.Project

	err := s.db.View(func(txn *badger.Txn) error {
		return iterate(txn, func(p project.Project) {
			if !found && p.ChainID != nil && *p.ChainID == chainID {
				prj = p
				found = true
			}
		})
	})
	if err != nil {
		return project.Project{}, err
	}

	if !found {
		return project.Project{}, project.ErrNotFound
	}

	return prj, nil
}

// Query retrieves the set of project records matching the specified filter,
// newest first.
func (s *Store) Query(ctx context.Context, filter project.QueryFilter) ([]project.Project, error) {
	var prjs []project.Project

	err := s.db.View(func(txn *badger.Txn) error {
		return iterate(txn, func(p project.Project) {
			if matches(p, filter) {
				prjs = append(prjs, p)
			}
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(prjs, func(i, j int) bool {
		return prjs[i].CreatedAt.After(prjs[j].CreatedAt)
	})

	return prjs, nil
}

// =============================================================================

func key(id uuid.UUID) []byte {
	return []byte(keyPrefix + id.String())
}

func write(txn *badger.Txn, prj project.Project) error {
	data, err := json.Marshal(toDBProject(prj))
	if err != nil {
		return fmt.Errorf("marshalling record: %w", err)
	}

	return txn.Set(key(prj.ID), data)
}

func decode(val []byte, prj *project.Project) error {
	var db dbProject
	if err := json.Unmarshal(val, &db); err != nil {
		return fmt.Errorf("unmarshalling record: %w", err)
	}

	core, err := toCoreProject(db)
	if err != nil {
		return err
	}

	*prj = core
	return nil
}

// iterate walks every project record in the keyspace.
func iterate(txn *badger.Txn, fn func(prj project.Project)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(keyPrefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		var prj project.Project
		err := it.Item().Value(func(val []byte) error {
			return decode(val, &prj)
		})
		if err != nil {
			return err
		}
		fn(prj)
	}

	return nil
}

// checkChainID enforces the chain id uniqueness invariant inside a write
// transaction.
func checkChainID(txn *badger.Txn, id uuid.UUID, chainID uint64) error {
	var conflict bool

	err := iterate(txn, func(p project.Project) {
		if p.ID != id && p.ChainID != nil && *p.ChainID == chainID {
			conflict = true
		}
	})
	if err != nil {
		return err
	}

	if conflict {
		return project.ErrChainIDExists
	}

	return nil
}

func matches(prj project.Project, filter project.QueryFilter) bool {
	if filter.Verified != nil && prj.Verified != *filter.Verified {
		return false
	}
	if filter.Active != nil && prj.Active != *filter.Active {
		return false
	}
	if filter.Owner != nil && prj.Owner != *filter.Owner {
		return false
	}
	return true
}
