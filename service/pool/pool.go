package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nftpool/core"
	"nftpool/internal/bucket"
	"nftpool/internal/collateral"
	"nftpool/internal/interest"
	"nftpool/service/borrower"
	"nftpool/service/purchase"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

// Option pool option
type Option func(p *Pool)

// WithClock time source, time.Now by default
func WithClock(clock func() time.Time) Option {
	return func(p *Pool) {
		p.clock = clock
	}
}

// WithJournal journal every settled operation is committed to
func WithJournal(journal core.Journal) Option {
	return func(p *Pool) {
		p.journal = journal
	}
}

// WithNFTService collateral token transfers
func WithNFTService(nfts core.NFTService) Option {
	return func(p *Pool) {
		p.nfts = nfts
	}
}

// WithQuoteService quote token transfers
func WithQuoteService(quote core.QuoteService) Option {
	return func(p *Pool) {
		p.quote = quote
	}
}

// WithRegisterer registers the pool metrics
func WithRegisterer(r prometheus.Registerer) Option {
	return func(p *Pool) {
		p.registerer = r
	}
}

// Pool the pool facade
//
// Calls are serialized. Each one accrues interest, validates, mutates the
// ledgers, moves tokens and commits to the journal; any failure restores the
// state taken before the call.
type Pool struct {
	mu sync.Mutex

	address    common.Address
	cfg        core.PoolConfig
	ladder     *bucket.Ladder
	clock      func() time.Time
	journal    core.Journal
	nfts       core.NFTService
	quote      core.QuoteService
	registerer prometheus.Registerer
	metrics    *metrics

	version      int64
	initialized  bool
	subset       *collateral.TokenSet
	accrual      *interest.Accrual
	collateral   *collateral.Ledger
	buckets      *bucket.Ledger
	borrowers    *borrower.Engine
	purchases    *purchase.Engine
	interestRate decimal.Decimal
}

// New new pool
func New(cfg core.PoolConfig, opts ...Option) (*Pool, error) {
	ladder, err := bucket.NewLadder(cfg)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		address: common.HexToAddress(cfg.Address),
		cfg:     cfg,
		ladder:  ladder,
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.journal == nil {
		p.journal = nopJournal{}
	}

	p.metrics = newMetrics(p.registerer)
	p.reset(decimal.Zero)
	return p, nil
}

// Address pool custody account
func (p *Pool) Address() common.Address {
	return p.address
}

func (p *Pool) reset(rate decimal.Decimal) {
	p.interestRate = rate
	p.accrual = interest.New(interest.NewModel(rate, p.cfg.RateModel), p.cfg.SecondsPerYear)
	p.collateral = collateral.New()
	p.buckets = bucket.New(p.ladder, p.collateral)
	p.borrowers = borrower.New(p.accrual, p.collateral, p.buckets, p.cfg.MinCollateralization)
	p.purchases = purchase.New(p.collateral, p.buckets, p.borrowers)
}

type nopJournal struct{}

func (nopJournal) Commit(ctx context.Context, snapshot *core.PoolSnapshot, events []*core.Event) error {
	return nil
}

// call the effects of one operation, applied in order after the ledgers are
// mutated
type call struct {
	now       time.Time
	transfers []transfer
	events    []*core.Event
}

func (c *call) emit(e *core.Event) {
	c.events = append(c.events, e)
}

// apply runs fn as one atomic operation
func (p *Pool) apply(ctx context.Context, op string, fn func(c *call) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	log := logger.FromContext(ctx).WithField("op", op)

	backup := p.snapshot()
	now := p.clock()
	if p.initialized {
		p.borrowers.Accrue(now)
	}

	c := &call{now: now}
	done, err := p.execute(ctx, c, fn)
	if err != nil {
		for i := done - 1; i >= 0; i-- {
			if err := c.transfers[i].undo(ctx); err != nil {
				log.WithError(err).Errorln("transfer.Undo")
			}
		}

		if restoreErr := p.restore(backup); restoreErr != nil {
			log.WithError(restoreErr).Panicln("restore")
		}

		p.metrics.observe(op, err)
		log.WithError(err).Infoln("rejected")
		return err
	}

	p.metrics.observe(op, nil)
	p.metrics.update(p)

	for _, e := range c.events {
		log.WithFields(logrus.Fields(structs.Map(newEventView(e)))).Debugln("event")
	}

	return nil
}

func (p *Pool) execute(ctx context.Context, c *call, fn func(c *call) error) (int, error) {
	if err := fn(c); err != nil {
		return 0, err
	}

	for idx, t := range c.transfers {
		if err := t.do(ctx); err != nil {
			return idx, err
		}
	}

	p.version++
	trace := uuid.New()
	for idx, e := range c.events {
		e.TraceID = uuid.Modify(trace, fmt.Sprintf("%s:%d", e.Type, idx))
		e.Pool = p.address.Hex()
		e.Version = p.version
		e.CreatedAt = c.now
	}

	if err := p.journal.Commit(ctx, p.snapshot(), c.events); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("journal.Commit")
		return len(c.transfers), err
	}

	return len(c.transfers), nil
}

func (p *Pool) requireInitialized() error {
	return core.Require(p.initialized, core.ErrNotInitialized)
}

func (p *Pool) requireSubset(ids []core.TokenID) error {
	if p.subset == nil {
		return nil
	}

	for _, id := range ids {
		if !p.subset.Has(id) {
			return core.ErrTokenNotInSubset
		}
	}

	return nil
}

// Snapshot the settled state
func (p *Pool) Snapshot() *core.PoolSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshot()
}

func (p *Pool) snapshot() *core.PoolSnapshot {
	s := &core.PoolSnapshot{
		Pool:         p.address,
		Version:      p.version,
		Initialized:  p.initialized,
		InterestRate: p.interestRate,
		Inflator:     p.accrual.Inflator(),
		AccruedAt:    p.accrual.AccruedAt(),
		Borrowers:    p.borrowers.Snapshot(),
		Buckets:      p.buckets.Snapshot(),
	}

	if p.subset != nil {
		s.Subset = p.subset.Values()
	}

	for _, b := range s.Buckets {
		b.Claimable = p.collateral.Claimable(b.Price)
	}

	return s
}

// Restore replace the pool state with a snapshot
func (p *Pool) Restore(s *core.PoolSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	backup := p.snapshot()
	if err := p.restore(s); err != nil {
		_ = p.restore(backup)
		return err
	}

	p.metrics.update(p)
	return nil
}

func (p *Pool) restore(s *core.PoolSnapshot) error {
	p.reset(s.InterestRate)
	p.version = s.Version
	p.initialized = s.Initialized
	p.subset = nil
	if s.Initialized && len(s.Subset) > 0 {
		p.subset = collateral.NewTokenSet(s.Subset...)
	}

	p.accrual.Restore(s.Inflator, s.AccruedAt)

	if err := p.buckets.Restore(p.accrual.Inflator(), s.Buckets); err != nil {
		return err
	}

	for _, b := range s.Buckets {
		if err := p.collateral.RestoreClaimable(b.Price, b.Claimable); err != nil {
			return err
		}
	}

	return p.borrowers.Restore(s.Borrowers)
}

// CheckInvariants audits token ownership, lp conservation and borrower debt
func (p *Pool) CheckInvariants() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.collateral.CheckInvariants(); err != nil {
		return err
	}

	if err := p.buckets.CheckInvariants(); err != nil {
		return err
	}

	return p.borrowers.CheckInvariants()
}

// eventView flat log fields of an event
type eventView struct {
	TraceID string   `json:"trace_id"`
	Version int64    `json:"version"`
	Type    string   `json:"type"`
	Account string   `json:"account"`
	Price   string   `json:"price"`
	Amount  string   `json:"amount"`
	LP      string   `json:"lp"`
	Tokens  []string `json:"token_ids"`
}

func newEventView(e *core.Event) eventView {
	return eventView{
		TraceID: e.TraceID,
		Version: e.Version,
		Type:    string(e.Type),
		Account: e.Account,
		Price:   e.Price.String(),
		Amount:  e.Amount.String(),
		LP:      e.LP.String(),
		Tokens:  e.TokenIDs,
	}
}
