package journal

import (
	"context"
	"sync"

	"nftpool/core"

	"github.com/fox-one/pkg/store/db"
)

// Memory journal kept in memory, used by simulations
type Memory struct {
	mu       sync.Mutex
	snapshot *core.PoolSnapshot
	events   []*core.Event
}

// NewMemory empty memory journal
func NewMemory() *Memory {
	return &Memory{}
}

// Commit implements core.Journal
func (m *Memory) Commit(ctx context.Context, snapshot *core.PoolSnapshot, events []*core.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshot != nil && snapshot.Version != m.snapshot.Version+1 {
		return db.ErrOptimisticLock
	}

	m.snapshot = snapshot
	m.events = append(m.events, events...)
	return nil
}

// Snapshot last committed snapshot
func (m *Memory) Snapshot() *core.PoolSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshot
}

// Events committed events in order
func (m *Memory) Events() []*core.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]*core.Event, len(m.events))
	copy(events, m.events)
	return events
}
