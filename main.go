package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"monaco/agent"
	"monaco/config"
	"monaco/engine"
	"monaco/game"
	"monaco/metrics"
	"monaco/store"
)

func main() {
	configPath := flag.String("config", "", "YAML race config (defaults when empty)")
	races := flag.Int("races", 1, "Number of races to simulate")
	driver := flag.String("driver", "greedy", "Car driver: greedy, random or mixed")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for random drivers")
	persist := flag.Bool("persist", false, "Store races in the configured database instead of memory")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = *loaded
	}
	config.FromEnv(&cfg)

	level, err := cfg.Log.ZerologLevel()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	raceConfig, err := cfg.Game()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid race config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var s store.Store = store.NewMemoryStore()
	if *persist {
		db, err := store.Open(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open store")
		}
		defer db.Close()
		s = db
	}

	var writer *metrics.Writer
	if cfg.Metrics.Dir != "" {
		writer, err = metrics.NewWriter(cfg.Metrics.Dir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create metrics writer")
		}
	}

	var events []metrics.EventRecord
	var cars []metrics.CarRecord
	for i := 0; i < *races; i++ {
		ids := make([]game.CarID, raceConfig.PlayersRequired)
		for j := range ids {
			ids[j] = game.CarID(uuid.NewString())
		}

		drivers := newDrivers(*driver, *seed+uint64(i), ids)
		e := engine.New(s, engine.WithRequester(drivers), engine.WithMetrics())

		state, err := e.RunLocal(ctx, "cli", raceConfig, ids)
		if err != nil {
			log.Fatal().Err(err).Int("race", i+1).Msg("race failed")
		}

		m := e.Metrics(state.ID)
		log.Info().
			Str("race", state.ID).
			Str("winner", m.Winner).
			Uint64("turns", m.Turns).
			Int("purchases", m.Purchases).
			Int("shellings", m.Shellings).
			Int("hazards_consumed", m.HazardsConsumed).
			Int("skipped_turns", m.SkippedTurns).
			Dur("duration", m.Duration).
			Msgf("race %d of %d over", i+1, *races)

		events = append(events, e.Events(state.ID)...)
		for _, car := range state.CarData() {
			cars = append(cars, metrics.CarRecord{Race: state.ID, Car: car})
		}
	}

	if writer != nil {
		if err := writer.WriteCars(cars); err != nil {
			log.Error().Err(err).Msg("failed to write cars")
		}
		if err := writer.WriteEvents(events); err != nil {
			log.Error().Err(err).Msg("failed to write events")
		}
		log.Info().Str("dir", writer.Dir()).Int("cars", len(cars)).Msg("metrics written")
	}
}

func newDrivers(kind string, seed uint64, ids []game.CarID) agent.Table {
	drivers := agent.Table{}
	for i, id := range ids {
		switch {
		case kind == "random", kind == "mixed" && i%2 == 1:
			drivers[id] = agent.NewRandom(seed+uint64(i), 1.0)
		case kind == "greedy", kind == "mixed":
			drivers[id] = agent.Greedy{}
		default:
			log.Fatal().Str("driver", kind).Msg("unknown driver")
		}
	}
	return drivers
}
