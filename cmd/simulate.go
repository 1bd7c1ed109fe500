package cmd

import (
	"context"
	"encoding/json"
	"time"

	"nftpool/core"
	"nftpool/handler/views"
	"nftpool/service/pool"
	"nftpool/service/vault"
	"nftpool/store/journal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [interest rate] [days]",
	Short: "run a lending round against an in-memory pool",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		rate, days := decimal.New(5, -2), 30
		if len(args) > 0 {
			rate = decimal.NewFromFloat(cast.ToFloat64(args[0]))
		}

		if len(args) > 1 {
			days = cast.ToInt(args[1])
		}

		borrowers, _ := cmd.Flags().GetInt("borrowers")

		now := time.Now().Truncate(time.Second)
		v := vault.New()
		mem := journal.NewMemory()
		p, err := pool.New(cfg.Pool,
			pool.WithClock(func() time.Time { return now }),
			pool.WithJournal(mem),
			pool.WithNFTService(v),
			pool.WithQuoteService(v),
		)
		if err != nil {
			log.WithError(err).Fatalln("pool.New")
		}

		prices := p.Prices()
		if len(prices) == 0 {
			log.Fatalln("empty price ladder")
		}

		top := prices[len(prices)-1]
		lender := simulatedAccount(0)
		bidder := simulatedAccount(1)

		sim := simulation{ctx: ctx}
		sim.run("initialize", func() error {
			return p.InitializeSubset(ctx, lender, nil, rate)
		})

		deposit := top.Mul(decimal.NewFromInt(int64(borrowers*4 + 4)))
		v.Credit(lender, deposit)
		sim.run("add quote token", func() error {
			_, err := p.AddQuoteToken(ctx, lender, deposit, top)
			return err
		})

		next := uint64(1)
		for i := 0; i < borrowers; i++ {
			borrower := simulatedAccount(i + 2)
			ids := core.NewTokenIDs(next, next+1, next+2, next+3)
			next += 4

			v.Mint(borrower, ids...)
			sim.run("add collateral", func() error {
				return p.AddCollateral(ctx, borrower, ids)
			})

			sim.run("borrow", func() error {
				return p.Borrow(ctx, borrower, top.Mul(decimal.NewFromInt(2)), decimal.Zero)
			})
		}

		now = now.Add(time.Duration(days) * 24 * time.Hour)

		for i := 0; i < borrowers; i++ {
			borrower := simulatedAccount(i + 2)
			v.Credit(borrower, top)
			sim.run("repay", func() error {
				_, err := p.Repay(ctx, borrower, top)
				return err
			})
		}

		bid := core.NewTokenIDs(next, next+1)
		v.Mint(bidder, bid...)
		sim.run("add collateral", func() error {
			return p.AddCollateral(ctx, bidder, bid)
		})

		sim.run("purchase bid", func() error {
			_, err := p.PurchaseBid(ctx, bidder, top, top, bid)
			return err
		})

		sim.run("claim collateral", func() error {
			_, err := p.ClaimCollateral(ctx, lender, lender, bid[:1], top)
			return err
		})

		if err := p.CheckInvariants(); err != nil {
			log.WithError(err).Fatalln("CheckInvariants")
		}

		borrowerViews := make([]views.Borrower, 0, borrowers)
		for i := 0; i < borrowers; i++ {
			addr := simulatedAccount(i + 2)
			borrowerViews = append(borrowerViews, views.BorrowerView(addr.Hex(), p.BorrowerInfo(addr)))
		}

		data, _ := json.MarshalIndent(map[string]interface{}{
			"pool":      p.Info(),
			"borrowers": borrowerViews,
			"events":    len(mem.Events()),
		}, "", "  ")
		cmd.Println(string(data))
	},
}

type simulation struct {
	ctx context.Context
}

func (s simulation) run(step string, fn func() error) {
	log := logger.FromContext(s.ctx).WithField("step", step)
	if err := fn(); err != nil {
		log.WithError(err).Warnln("step failed")
		return
	}

	log.Debugln("done")
}

func simulatedAccount(i int) common.Address {
	return common.BigToAddress(decimal.NewFromInt(int64(0xa000 + i)).BigInt())
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Int("borrowers", 3, "number of borrowers")
}
