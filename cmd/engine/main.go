package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gridstats/player-engine/internal/config"
	"github.com/gridstats/player-engine/internal/logger"
	"github.com/gridstats/player-engine/internal/model"
	"github.com/gridstats/player-engine/internal/provider"
	"github.com/gridstats/player-engine/internal/provider/fixture"
	"github.com/gridstats/player-engine/internal/resolver"
	"github.com/gridstats/player-engine/internal/roster"
	"github.com/gridstats/player-engine/internal/stats"
	"github.com/gridstats/player-engine/internal/teams"
	"github.com/gridstats/player-engine/pkg/tabular"
)

func main() {
	// .env is optional; viper still reads APP_* from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	var prov provider.DataProvider
	switch cfg.Engine.Provider {
	case "", "fixture":
		prov = fixture.New()
	default:
		appLogger.Fatal().Str("provider", cfg.Engine.Provider).Msg("unknown provider")
	}
	cache := roster.New(prov, appLogger)
	directory := teams.NewDirectory()
	res := resolver.New(cache, directory, appLogger)

	appLogger.Info().Str("provider", cfg.Engine.Provider).Msg("engine ready")

	if len(os.Args) < 2 {
		return
	}

	ctx := context.Background()
	name := strings.Join(os.Args[1:], " ")
	profile, err := res.Resolve(ctx, model.SearchCriteria{Name: name})
	if err != nil {
		appLogger.Fatal().Err(err).Str("query", name).Msg("resolution failed")
	}
	for _, kv := range tabular.ProfileRows(profile) {
		fmt.Printf("%-20s %s\n", kv[0], kv[1])
	}

	var opts []stats.Option
	if cfg.Engine.LatestSeason != 0 {
		opts = append(opts, stats.WithLatestSeason(cfg.Engine.LatestSeason))
	}
	agg := stats.NewAggregator(profile, prov, appLogger, opts...)
	table, err := agg.MasterTable(ctx, stats.MasterTableOptions{
		Seasons:           []int{2022, 2023},
		IncludeTracking:   true,
		IncludeAdvanced:   true,
		IncludePostseason: true,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("master table failed")
	}
	fmt.Println(strings.Join(tabular.MasterHeader(table), "\t"))
	for _, row := range tabular.MasterRows(table) {
		fmt.Println(strings.Join(row, "\t"))
	}
}
