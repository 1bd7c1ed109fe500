package event

import (
	"context"
	"time"

	"nftpool/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache events are immutable once committed, lookups by trace are cached
func Cache(store core.EventStore, exp time.Duration) core.EventStore {
	builder := gcache.New(2048).LRU()
	if exp > 0 {
		builder = builder.Expiration(exp)
	}

	return &cacheEventStore{
		EventStore: store,
		cache:      builder.Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheEventStore struct {
	core.EventStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheEventStore) Create(ctx context.Context, tx *db.DB, events ...*core.Event) error {
	return s.EventStore.Create(ctx, tx, events...)
}

func (s *cacheEventStore) FindByTrace(ctx context.Context, traceID string) (*core.Event, error) {
	if v, err := s.cache.Get(traceID); err == nil {
		if event, ok := v.(*core.Event); ok {
			return event, nil
		}
	}

	v, err, _ := s.sf.Do(traceID, func() (interface{}, error) {
		event, err := s.EventStore.FindByTrace(ctx, traceID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(traceID, event)
		return event, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*core.Event), nil
}
