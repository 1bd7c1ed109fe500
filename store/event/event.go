package event

import (
	"context"

	"nftpool/core"

	"github.com/fox-one/pkg/store/db"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &eventStore{db: db}
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, events ...*core.Event) error {
	for _, event := range events {
		if err := tx.Update().Where("trace_id = ?", event.TraceID).FirstOrCreate(event).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *eventStore) FindByTrace(ctx context.Context, traceID string) (*core.Event, error) {
	var event core.Event
	if err := s.db.View().Where("trace_id = ?", traceID).First(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (s *eventStore) List(ctx context.Context, pool string, fromID int64, limit int) ([]*core.Event, error) {
	if limit <= 0 {
		limit = 500
	}

	var events []*core.Event
	query := s.db.View().Where("id > ?", fromID)
	if pool != "" {
		query = query.Where("pool = ?", pool)
	}

	if err := query.Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
