package userdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ecochain/ecochain/business/core/user"
	"github.com/ecochain/ecochain/business/core/user/stores/userdb"
	"github.com/stretchr/testify/require"
)

func TestCreateQuery(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	store := userdb.NewStore(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	usr := user.User{
		Address:   "0x8e113078adf6888b7ba84967f299f29aece24c55",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Create(ctx, usr))

	got, err := store.QueryByAddress(ctx, usr.Address)
	require.NoError(t, err)
	require.Equal(t, usr.Address, got.Address)
	require.True(t, got.CreatedAt.Equal(now))

	_, err = store.QueryByAddress(ctx, "0xaaaa00000000000000000000000000000000aaaa")
	require.ErrorIs(t, err, user.ErrNotFound)
}
