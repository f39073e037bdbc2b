package projectdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ecochain/ecochain/business/core/project"
	"github.com/ecochain/ecochain/business/core/project/stores/projectdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedProject(chainID *uint64) project.Project {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return project.Project{
		ID:          uuid.New(),
		ChainID:     chainID,
		Name:        "Reef Cleanup",
		Description: "Removing debris from coastal reefs.",
		Owner:       "0x8e113078adf6888b7ba84967f299f29aece24c55",
		FundingGoal: "1000000",
		TotalFunds:  "0",
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func TestCreateQuery(t *testing.T) {
	store := projectdb.NewStore(testDB(t))
	ctx := context.Background()

	prj := seedProject(uint64Ptr(7))
	require.NoError(t, store.Create(ctx, prj))

	got, err := store.QueryByID(ctx, prj.ID)
	require.NoError(t, err)
	require.Equal(t, prj.ID, got.ID)
	require.Equal(t, prj.Name, got.Name)
	require.Equal(t, prj.TotalFunds, got.TotalFunds)
	require.NotNil(t, got.ChainID)
	require.Equal(t, uint64(7), *got.ChainID)
	require.True(t, got.CreatedAt.Equal(prj.CreatedAt))

	got, err = store.QueryByChainID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, prj.ID, got.ID)
}

func TestNotFound(t *testing.T) {
	store := projectdb.NewStore(testDB(t))
	ctx := context.Background()

	_, err := store.QueryByID(ctx, uuid.New())
	require.ErrorIs(t, err, project.ErrNotFound)

	_, err = store.QueryByChainID(ctx, 99)
	require.ErrorIs(t, err, project.ErrNotFound)
}

func TestChainIDUniqueness(t *testing.T) {
	store := projectdb.NewStore(testDB(t))
	ctx := context.Background()

	first := seedProject(uint64Ptr(7))
	require.NoError(t, store.Create(ctx, first))

	second := seedProject(uint64Ptr(7))
	err := store.Create(ctx, second)
	require.ErrorIs(t, err, project.ErrChainIDExists)

	second.ChainID = nil
	require.NoError(t, store.Create(ctx, second))

	// Updating a record onto a taken chain id must also be refused.
	second.ChainID = uint64Ptr(7)
	err = store.Update(ctx, second)
	require.ErrorIs(t, err, project.ErrChainIDExists)

	// A record updating itself keeps its own chain id.
	first.Name = "Reef Cleanup Phase 2"
	require.NoError(t, store.Update(ctx, first))
}

func TestUpdate(t *testing.T) {
	store := projectdb.NewStore(testDB(t))
	ctx := context.Background()

	prj := seedProject(nil)
	require.NoError(t, store.Create(ctx, prj))

	prj.TotalFunds = "1500"
	prj.Contributors = 2
	prj.ChainID = uint64Ptr(42)
	require.NoError(t, store.Update(ctx, prj))

	got, err := store.QueryByID(ctx, prj.ID)
	require.NoError(t, err)
	require.Equal(t, "1500", got.TotalFunds)
	require.Equal(t, 2, got.Contributors)
	require.NotNil(t, got.ChainID)
	require.Equal(t, uint64(42), *got.ChainID)
}

func TestUpdateFunding(t *testing.T) {
	store := projectdb.NewStore(testDB(t))
	ctx := context.Background()

	prj := seedProject(uint64Ptr(7))
	require.NoError(t, store.Create(ctx, prj))

	// The record is verified after the funding snapshot above was taken.
	prj.Verified = true
	require.NoError(t, store.Update(ctx, prj))

	total := "1500"
	contributors := 2
	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.UpdateFunding(ctx, prj.ID, &total, &contributors, now))

	got, err := store.QueryByID(ctx, prj.ID)
	require.NoError(t, err)
	require.Equal(t, "1500", got.TotalFunds)
	require.Equal(t, 2, got.Contributors)
	require.True(t, got.UpdatedAt.Equal(now))

	// Fields the sync does not own stay as stored.
	require.True(t, got.Verified)
	require.Equal(t, prj.Name, got.Name)
	require.NotNil(t, got.ChainID)
	require.Equal(t, uint64(7), *got.ChainID)

	// A nil field means that read failed and the cached value stands.
	require.NoError(t, store.UpdateFunding(ctx, prj.ID, nil, nil, now))
	got, err = store.QueryByID(ctx, prj.ID)
	require.NoError(t, err)
	require.Equal(t, "1500", got.TotalFunds)
	require.Equal(t, 2, got.Contributors)

	err = store.UpdateFunding(ctx, uuid.New(), &total, &contributors, now)
	require.ErrorIs(t, err, project.ErrNotFound)
}

func TestQueryFilters(t *testing.T) {
	store := projectdb.NewStore(testDB(t))
	ctx := context.Background()

	active := seedProject(nil)
	require.NoError(t, store.Create(ctx, active))

	inactive := seedProject(nil)
	inactive.Owner = "0xaaaa00000000000000000000000000000000aaaa"
	inactive.Active = false
	inactive.Verified = true
	inactive.CreatedAt = active.CreatedAt.Add(time.Hour)
	require.NoError(t, store.Create(ctx, inactive))

	prjs, err := store.Query(ctx, project.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, prjs, 2)

	// Newest first.
	require.Equal(t, inactive.ID, prjs[0].ID)

	tru := true
	prjs, err = store.Query(ctx, project.QueryFilter{Verified: &tru})
	require.NoError(t, err)
	require.Len(t, prjs, 1)
	require.Equal(t, inactive.ID, prjs[0].ID)

	prjs, err = store.Query(ctx, project.QueryFilter{Active: &tru})
	require.NoError(t, err)
	require.Len(t, prjs, 1)
	require.Equal(t, active.ID, prjs[0].ID)

	owner := inactive.Owner
	prjs, err = store.Query(ctx, project.QueryFilter{Owner: &owner})
	require.NoError(t, err)
	require.Len(t, prjs, 1)
	require.Equal(t, inactive.ID, prjs[0].ID)
}
