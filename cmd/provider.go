package cmd

import (
	"time"

	"nftpool/core"
	"nftpool/service/pool"
	"nftpool/service/session"
	"nftpool/store/event"
	"nftpool/store/journal"
	"nftpool/store/snapshot"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/prometheus/client_golang/prometheus"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideSnapshotStore(db *db.DB) core.SnapshotStore {
	return snapshot.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return event.Cache(event.New(db), time.Hour)
}

func provideJournal(db *db.DB, snapshots core.SnapshotStore, events core.EventStore, properties property.Store) core.Journal {
	return journal.New(db, snapshots, events, properties)
}

// ------------------service------------------------------------

func providePool(journal core.Journal) (*pool.Pool, error) {
	return pool.New(cfg.Pool,
		pool.WithJournal(journal),
		pool.WithRegisterer(prometheus.DefaultRegisterer),
	)
}

func provideSession() core.Session {
	if cfg.Auth.Secret == "" {
		return nil
	}

	return session.New(cfg.Auth)
}
