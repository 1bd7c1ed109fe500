package config

import (
	"nftpool/core"

	configUtil "github.com/fox-one/pkg/config"
	"github.com/shopspring/decimal"
)

// Load load config file, NFTPOOL_ prefixed env vars override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("NFTPOOL")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaultPool(config)
	defaultLog(config)
	return nil
}

func defaultPool(cfg *core.Config) {
	if cfg.Pool.MinCollateralization.IsZero() {
		cfg.Pool.MinCollateralization = decimal.NewFromInt(1)
	}

	if len(cfg.Pool.Prices) > 0 {
		return
	}

	if cfg.Pool.Ladder.Min.IsZero() {
		cfg.Pool.Ladder.Min = decimal.NewFromInt(1)
	}

	if cfg.Pool.Ladder.Factor.IsZero() {
		cfg.Pool.Ladder.Factor = decimal.New(1005, -3)
	}

	if cfg.Pool.Ladder.Count == 0 {
		cfg.Pool.Ladder.Count = 1000
	}
}

func defaultLog(cfg *core.Config) {
	if cfg.Log.MaxSize == 0 {
		cfg.Log.MaxSize = 100
	}

	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 7
	}
}
