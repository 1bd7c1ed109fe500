package snapshot

import (
	"encoding/json"
	"testing"

	"nftpool/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var poolAddress = common.HexToAddress("0x0000000000000000000000000000000000000900")

func openDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = gdb.Close() })

	// every connection to :memory: is a new database
	gdb.DB().SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(PoolSnapshot{}).Error)
	require.NoError(t, gdb.Model(PoolSnapshot{}).AddUniqueIndex("idx_pool_snapshots_pool", "pool").Error)
	return gdb
}

func newRow(t *testing.T, version int64) *PoolSnapshot {
	data, err := json.Marshal(&core.PoolSnapshot{
		Pool:         poolAddress,
		Version:      version,
		Initialized:  true,
		InterestRate: decimal.New(5, -2),
	})
	require.NoError(t, err)

	return &PoolSnapshot{
		Pool:    poolAddress.Hex(),
		Version: version,
		Data:    data,
	}
}

func TestFindMissing(t *testing.T) {
	gdb := openDB(t)

	snapshot, err := find(gdb, poolAddress)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestSaveVersions(t *testing.T) {
	gdb := openDB(t)

	// first write creates the row
	require.NoError(t, save(gdb, newRow(t, 1)))

	snapshot, err := find(gdb, poolAddress)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, int64(1), snapshot.Version)

	// the next version updates it in place
	require.NoError(t, save(gdb, newRow(t, 2)))

	// a stale or skipped version is rejected and leaves the row untouched
	assert.ErrorIs(t, save(gdb, newRow(t, 2)), db.ErrOptimisticLock)
	assert.ErrorIs(t, save(gdb, newRow(t, 4)), db.ErrOptimisticLock)

	snapshot, err = find(gdb, poolAddress)
	require.NoError(t, err)
	assert.Equal(t, int64(2), snapshot.Version)
	assert.Equal(t, "0.05", snapshot.InterestRate.String())

	var count int
	require.NoError(t, gdb.Model(PoolSnapshot{}).Count(&count).Error)
	assert.Equal(t, 1, count)
}
