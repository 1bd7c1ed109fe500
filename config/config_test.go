package config

import (
	"testing"

	"nftpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg core.Config
	require.NoError(t, Load("", &cfg))

	assert.Equal(t, "1", cfg.Pool.MinCollateralization.String())
	assert.Equal(t, "1.005", cfg.Pool.Ladder.Factor.String())
	assert.Equal(t, 1000, cfg.Pool.Ladder.Count)
	assert.Equal(t, 100, cfg.Log.MaxSize)
}
