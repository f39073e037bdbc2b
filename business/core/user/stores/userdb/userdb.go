// Package userdb contains user record storage on BadgerDB.
package userdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ecochain/ecochain/business/core/user"
)

const keyPrefix = "user:"

// Store manages the set of APIs for user record persistence.
type Store struct {
	db *badger.DB
}

// NewStore constructs a store for api access.
func NewStore(db *badger.DB) *Store {
	return &Store{
		db: db,
	}
}

// dbUser is the stored form of a user record.
type dbUser struct {
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create adds a new user record to the database.
func (s *Store) Create(ctx context.Context, usr user.User) error {
	data, err := json.Marshal(dbUser(usr))
	if err != nil {
		return fmt.Errorf("marshalling record: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+usr.Address), data)
	})
}

// QueryByAddress retrieves the user record for the specified address.
func (s *Store) QueryByAddress(ctx context.Context, address string) (user.User, error) {
	var usr user.User

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + address))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return user.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var db dbUser
			if err := json.Unmarshal(val, &db); err != nil {
				return fmt.Errorf("unmarshalling record: %w", err)
			}
			usr = user.User(db)
			return nil
		})
	})
	if err != nil {
		return user.User{}, err
	}

	return usr, nil
}
