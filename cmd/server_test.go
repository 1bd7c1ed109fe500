package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorker struct {
	startErr error
	started  bool
	stopped  bool
}

func (w *fakeWorker) Start() error {
	w.started = true
	return w.startErr
}

func (w *fakeWorker) Stop() error {
	w.stopped = true
	return nil
}

// blockingServe returns a serve func that blocks until shutdown is called
func blockingServe() (func() error, func()) {
	done := make(chan struct{})
	serve := func() error {
		<-done
		return nil
	}

	return serve, func() { close(done) }
}

func TestRunServicesWorkerStartError(t *testing.T) {
	errStart := errors.New("bad schedule")
	w := &fakeWorker{startErr: errStart}
	serve, shutdown := blockingServe()

	result := make(chan error, 1)
	go func() { result <- runServices(context.Background(), w, serve, shutdown) }()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, errStart)
	case <-time.After(5 * time.Second):
		t.Fatal("runServices did not return after the worker failed to start")
	}

	assert.False(t, w.stopped)
}

func TestRunServicesStopsOnCancel(t *testing.T) {
	w := &fakeWorker{}
	serve, shutdown := blockingServe()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- runServices(ctx, w, serve, shutdown) }()

	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServices did not return after cancel")
	}

	assert.True(t, w.started)
	assert.True(t, w.stopped)
}
