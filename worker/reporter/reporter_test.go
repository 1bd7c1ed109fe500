package reporter

import (
	"context"
	"errors"
	"testing"

	"nftpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePool struct {
	info   core.PoolInfo
	err    error
	called int
}

func (p *fakePool) Report() *core.PoolInfo {
	p.called++
	return &p.info
}

func (p *fakePool) CheckInvariants() error {
	return p.err
}

func TestReporter(t *testing.T) {
	pool := &fakePool{info: core.PoolInfo{Version: 3}}

	w, err := New(pool, nil, "@every 1m")
	require.NoError(t, err)

	w.Run()
	assert.Equal(t, 1, pool.called)
	assert.False(t, w.Running())

	pool.err = errors.New("broken")
	assert.Error(t, w.onWork(context.Background()))
}

func TestInvalidSchedule(t *testing.T) {
	_, err := New(&fakePool{}, nil, "every minute")
	assert.Error(t, err)
}
