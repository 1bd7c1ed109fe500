package pool

import (
	"errors"

	"nftpool/core"
	"nftpool/internal/interest"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	operations  *prometheus.CounterVec
	inflator    prometheus.Gauge
	pending     prometheus.Gauge
	deposit     prometheus.Gauge
	debt        prometheus.Gauge
	pledged     prometheus.Gauge
	claimable   prometheus.Gauge
	liveBuckets prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) *metrics {
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nftpool_operations_total",
			Help: "Pool operations by outcome.",
		}, []string{"op", "result"}),
		inflator: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nftpool_inflator",
			Help: "Pool debt inflator.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nftpool_pending_inflator",
			Help: "Pool debt inflator including interest not yet accrued.",
		}),
		deposit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nftpool_deposit",
			Help: "Quote token deposited and not lent out.",
		}),
		debt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nftpool_debt",
			Help: "Quote token lent out, as seen by the buckets.",
		}),
		pledged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nftpool_pledged_collateral",
			Help: "Collateral tokens deposited by borrowers.",
		}),
		claimable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nftpool_claimable_collateral",
			Help: "Collateral tokens claimable at buckets.",
		}),
		liveBuckets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nftpool_buckets",
			Help: "Live price buckets.",
		}),
	}

	if r != nil {
		for _, c := range []prometheus.Collector{
			m.operations, m.inflator, m.pending, m.deposit, m.debt, m.pledged, m.claimable, m.liveBuckets,
		} {
			if err := r.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					panic(err)
				}
			}
		}
	}

	return m
}

func (m *metrics) observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		var code core.ErrorCode
		if errors.As(err, &code) {
			result = code.Error()
		}
	}

	m.operations.WithLabelValues(op, result).Inc()
}

func (m *metrics) update(p *Pool) {
	deposit, debt := p.buckets.Totals()
	pledged := p.collateral.Pledged()

	m.inflator.Set(p.accrual.Inflator().InexactFloat64())
	m.pending.Set(p.accrual.Pending(p.clock(), interest.Utilization(debt, deposit)).InexactFloat64())
	m.deposit.Set(deposit.InexactFloat64())
	m.debt.Set(debt.InexactFloat64())
	m.pledged.Set(float64(pledged))
	m.claimable.Set(float64(p.collateral.Count() - pledged))
	m.liveBuckets.Set(float64(p.buckets.Len()))
}
