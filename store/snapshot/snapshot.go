package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nftpool/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/jmoiron/sqlx/types"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(PoolSnapshot{})

		if err := tx.AutoMigrate(PoolSnapshot{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_pool_snapshots_pool", "pool").Error; err != nil {
			return err
		}

		return nil
	})
}

// PoolSnapshot latest settled state of a pool
type PoolSnapshot struct {
	ID        int64          `sql:"PRIMARY_KEY" json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Pool      string         `sql:"size:42" json:"pool"`
	Version   int64          `sql:"not null" json:"version"`
	Data      types.JSONText `sql:"type:TEXT" json:"data"`
}

type snapshotStore struct {
	db *db.DB
}

// New new snapshot store
func New(db *db.DB) core.SnapshotStore {
	return &snapshotStore{db: db}
}

// Save stores the snapshot, it must be exactly one version ahead of the
// stored one
func (s *snapshotStore) Save(ctx context.Context, tx *db.DB, snapshot *core.PoolSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return save(tx.Update(), &PoolSnapshot{
		Pool:    snapshot.Pool.Hex(),
		Version: snapshot.Version,
		Data:    data,
	})
}

func save(tx *gorm.DB, row *PoolSnapshot) error {
	update := tx.Model(row).
		Where("pool = ? AND version = ?", row.Pool, row.Version-1).
		Updates(map[string]interface{}{
			"data":    row.Data,
			"version": row.Version,
		})

	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected > 0 {
		return nil
	}

	var count int
	if err := tx.Model(PoolSnapshot{}).Where("pool = ?", row.Pool).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return db.ErrOptimisticLock
	}

	return tx.Create(row).Error
}

func (s *snapshotStore) Find(ctx context.Context, pool common.Address) (*core.PoolSnapshot, error) {
	return find(s.db.View(), pool)
}

func find(tx *gorm.DB, pool common.Address) (*core.PoolSnapshot, error) {
	var row PoolSnapshot
	if err := tx.Where("pool = ?", pool.Hex()).First(&row).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	var snapshot core.PoolSnapshot
	if err := json.Unmarshal(row.Data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal PoolSnapshot failed: %w", err)
	}

	return &snapshot, nil
}
