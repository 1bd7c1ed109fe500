package journal

import (
	"context"
	"testing"

	"nftpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Commit(ctx, &core.PoolSnapshot{Version: 1}, []*core.Event{{TraceID: "a"}}))
	require.NoError(t, m.Commit(ctx, &core.PoolSnapshot{Version: 2}, []*core.Event{{TraceID: "b"}}))
	assert.ErrorIs(t, m.Commit(ctx, &core.PoolSnapshot{Version: 2}, nil), db.ErrOptimisticLock)

	assert.Equal(t, int64(2), m.Snapshot().Version)
	require.Len(t, m.Events(), 2)
	assert.Equal(t, "b", m.Events()[1].TraceID)
}
