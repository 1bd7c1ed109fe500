package reporter

import (
	"context"

	"nftpool/core"
	"nftpool/store/journal"
	"nftpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
	"github.com/yiplee/structs"
)

// Pool the pool surface the reporter reads
type Pool interface {
	Report() *core.PoolInfo
	CheckInvariants() error
}

// Worker refreshes pool gauges, audits the ledgers and compares the
// committed checkpoint with the in-memory version
type Worker struct {
	worker.BaseJob
	pool       Pool
	properties property.Store
}

// New new reporter worker, schedule is a cron expression such as "@every 30s"
func New(pool Pool, properties property.Store, schedule string) (*Worker, error) {
	job := Worker{
		pool:       pool,
		properties: properties,
	}

	job.Name = "reporter"
	job.Cron = cron.New()
	if _, err := job.Cron.AddFunc(schedule, job.Run); err != nil {
		return nil, err
	}

	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", w.Name)

	info := w.pool.Report()
	log = log.WithField("version", info.Version)

	if err := w.pool.CheckInvariants(); err != nil {
		log.WithError(err).Errorln("CheckInvariants")
		return err
	}

	if w.properties != nil {
		checkpoint, err := journal.Checkpoint(ctx, w.properties, info.Pool)
		if err != nil {
			log.WithError(err).Errorln("journal.Checkpoint")
			return err
		}

		if checkpoint != info.Version {
			log.Warnf("checkpoint %d behind pool version %d", checkpoint, info.Version)
		}
	}

	log.WithFields(structs.Map(newReport(info))).Debugln("pool report")
	return nil
}

type report struct {
	Inflator    string `json:"inflator"`
	Pending     string `json:"pending_inflator"`
	Deposit     string `json:"total_deposit"`
	Debt        string `json:"total_debt"`
	Utilization string `json:"utilization"`
	LUP         string `json:"lup"`
	Pledged     int    `json:"pledged_collateral"`
	Buckets     int    `json:"buckets"`
}

func newReport(info *core.PoolInfo) report {
	return report{
		Inflator:    info.Inflator.String(),
		Pending:     info.PendingInflator.String(),
		Deposit:     info.TotalDeposit.String(),
		Debt:        info.TotalDebt.String(),
		Utilization: info.Utilization.String(),
		LUP:         info.LUP.String(),
		Pledged:     info.PledgedCollateral,
		Buckets:     info.Buckets,
	}
}
