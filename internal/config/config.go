package config

import (
	"github.com/gridstats/player-engine/internal/logger"
)

type Config struct {
	Logger logger.Config `mapstructure:"logger"`
	Engine EngineConfig  `mapstructure:"engine"`
}

// EngineConfig carries tunables for the resolution/aggregation engine.
type EngineConfig struct {
	// LatestSeason is the newest season treated as available. Zero means
	// use the compiled-in default.
	LatestSeason int `mapstructure:"latest_season"`
	// Provider selects the data provider implementation to wire.
	Provider string `mapstructure:"provider"`
}
