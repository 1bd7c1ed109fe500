package core

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config nftpool config
type Config struct {
	DB   db.Config  `json:"db"`
	Pool PoolConfig `json:"pool"`
	Log  Log        `json:"log"`
	Auth Auth       `json:"auth"`
}

// PoolConfig pool parameters
type PoolConfig struct {
	// Address pool custody account
	Address string `json:"address"`
	// Prices explicit price ladder, takes precedence over Ladder
	Prices []decimal.Decimal `json:"prices"`
	Ladder Ladder            `json:"ladder"`
	// MinCollateralization minimum collateral value / debt, 1.0 when empty
	MinCollateralization decimal.Decimal `json:"min_collateralization"`
	RateModel            RateModel       `json:"rate_model"`
	// SecondsPerYear compounding period of the annual rate, 365 days when zero
	SecondsPerYear int64 `json:"seconds_per_year"`
}

// Ladder geometric price ladder, price_i = min * factor^i
type Ladder struct {
	Min    decimal.Decimal `json:"min"`
	Factor decimal.Decimal `json:"factor"`
	Count  int             `json:"count"`
}

// RateModel utilization slope on top of the pool interest rate, all per year
type RateModel struct {
	Multiplier     decimal.Decimal `json:"multiplier"`
	JumpMultiplier decimal.Decimal `json:"jump_multiplier"`
	Kink           decimal.Decimal `json:"kink"`
}

// Log log output
type Log struct {
	File       string `json:"file"`
	MaxSize    int    `json:"max_size"`
	MaxBackups int    `json:"max_backups"`
}
