package worker

import (
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Worker cron driven job
type Worker interface {
	Start() error
	Stop() error
}

type OnWork func() error

// BaseJob runs OnWork on the cron schedule, skipping ticks while a previous
// run is still going
type BaseJob struct {
	Name    string
	Cron    *cron.Cron
	OnWork  OnWork
	running atomic.Bool
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

// Stop stops the schedule and waits for a running job
func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

// Running reports whether OnWork is in progress
func (job *BaseJob) Running() bool {
	return job.running.Load()
}

func (job *BaseJob) Run() {
	if !job.running.CompareAndSwap(false, true) {
		return
	}

	defer job.running.Store(false)

	if err := job.OnWork(); err != nil {
		logrus.WithField("worker", job.Name).WithError(err).Warnln("OnWork")
	}
}
