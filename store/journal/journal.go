package journal

import (
	"context"
	"fmt"

	"nftpool/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
)

type journal struct {
	db         *db.DB
	snapshots  core.SnapshotStore
	events     core.EventStore
	properties property.Store
}

// New journal writing the snapshot and its events in one db transaction
func New(
	db *db.DB,
	snapshots core.SnapshotStore,
	events core.EventStore,
	properties property.Store,
) core.Journal {
	return &journal{
		db:         db,
		snapshots:  snapshots,
		events:     events,
		properties: properties,
	}
}

// CheckpointKey property key of the last committed version of pool
func CheckpointKey(pool common.Address) string {
	return fmt.Sprintf("journal_checkpoint_%s", pool.Hex())
}

func (j *journal) Commit(ctx context.Context, snapshot *core.PoolSnapshot, events []*core.Event) error {
	log := logger.FromContext(ctx).WithField("version", snapshot.Version)

	if err := j.db.Tx(func(tx *db.DB) error {
		if err := j.snapshots.Save(ctx, tx, snapshot); err != nil {
			return err
		}

		return j.events.Create(ctx, tx, events...)
	}); err != nil {
		log.WithError(err).Errorln("db.Tx")
		return err
	}

	if err := j.properties.Save(ctx, CheckpointKey(snapshot.Pool), snapshot.Version); err != nil {
		log.WithError(err).Errorln("property.Save")
	}

	return nil
}

// Checkpoint last committed version of pool, zero when none
func Checkpoint(ctx context.Context, properties property.Store, pool common.Address) (int64, error) {
	v, err := properties.Get(ctx, CheckpointKey(pool))
	if err != nil {
		return 0, err
	}

	return v.Int64(), nil
}
