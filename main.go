package main

import (
	"context"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"pokergym/appconfig"
	"pokergym/common/bench"
	"pokergym/poker"
	"pokergym/store"
	"pokergym/trajectory"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

type CLI struct {
	Ruleset     string `kong:"help='Builtin game to play: kuhn, limit_holdem'"`
	RulesetFile string `kong:"help='HCL ruleset file, takes precedence over the builtin name'"`
	Hands       int64  `kong:"default='0',help='Number of hands to play (0 uses env config)'"`
	Workers     int    `kong:"default='0',help='Parallel game workers (0 uses env config)'"`
	Seed        int64  `kong:"default='0',help='Base RNG seed (0 uses env config)'"`
	Postgres    string `kong:"help='Postgres DSN for hand persistence'"`
	BufferOut   string `kong:"help='Write the collected episode buffer to this JSON file'"`
	Debug       bool   `kong:"default='false',help='Show debug logs'"`
}

type SelfPlayStats struct {
	HandsPlayed   atomic.Int64
	DecisionsMade atomic.Int64
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("pokergym"),
		kong.Description("Multi-street poker self-play environment"),
		kong.UsageOnError(),
	)

	cfg, err := appconfig.LoadAppConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	if cli.Ruleset != "" {
		cfg.Ruleset = cli.Ruleset
	}
	if cli.RulesetFile != "" {
		cfg.RulesetFile = cli.RulesetFile
	}
	if cli.Hands > 0 {
		cfg.Hands = cli.Hands
	}
	if cli.Workers > 0 {
		cfg.Workers = cli.Workers
	}
	if cli.Seed != 0 {
		cfg.Seed = cli.Seed
	}
	if cli.Postgres != "" {
		cfg.PostgresDSN = cli.Postgres
	}

	level := zerolog.InfoLevel
	if cfg.Debug || cli.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	set, err := resolveRuleset(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve ruleset")
	}
	if err := set.Validate(); err != nil {
		logger.Fatal().Err(err).Str("ruleset", set.Name).Msg("invalid ruleset")
	}
	logger.Info().
		Str("ruleset", set.Name).
		Int64("hands", cfg.Hands).
		Int("workers", cfg.Workers).
		Int64("seed", cfg.Seed).
		Msg("starting self-play")

	ctx := context.Background()
	var db *store.DB
	if cfg.PostgresDSN != "" {
		db, err = store.Open(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open postgres")
		}
		defer db.Close(ctx)
		if err := store.Migrate(ctx, db); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate schema")
		}
	}

	collector := trajectory.NewCollector(cfg.BufferHands, cfg.PruneRatio)
	stats := &SelfPlayStats{}
	bar := progressbar.Default(cfg.Hands, "self-play")

	stopTicker := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopTicker:
				return
			case <-ticker.C:
				logger.Info().
					Int64("hands", stats.HandsPlayed.Load()).
					Int64("decisions", stats.DecisionsMade.Load()).
					Msg("self-play progress")
			}
		}
	}()

	remaining := atomic.Int64{}
	remaining.Store(cfg.Hands)

	elapsed := bench.MeasureExec(func() {
		var wg sync.WaitGroup
		for workerID := 0; workerID < cfg.Workers; workerID++ {
			wg.Add(1)
			go func(workerID int) {
				defer wg.Done()
				workerLog := logger.With().Int("worker", workerID).Logger()

				game, err := poker.NewGame(set, poker.EvaluatorForRuleset(set), cfg.Seed+int64(workerID))
				if err != nil {
					workerLog.Fatal().Err(err).Msg("failed to create game")
				}
				actor := poker.NewRandomActor(rand.New(rand.NewSource(cfg.Seed + int64(workerID))))

				for remaining.Add(-1) >= 0 {
					playHand(game, actor, workerLog)

					handID := game.HandID()
					inputs := game.Inputs()
					decisions := 0
					for position, ep := range inputs {
						collector.Add(position, handID, ep)
						decisions += ep.Len()
					}
					stats.HandsPlayed.Add(1)
					stats.DecisionsMade.Add(int64(decisions))
					bar.Add(1)

					if db != nil {
						err := db.SaveHand(ctx, handID, set.Name, game.HandNumber(), game.HandLog(), inputs)
						if err != nil {
							workerLog.Error().Err(err).Str("hand", handID.String()).Msg("failed to persist hand")
						}
					}
				}
			}(workerID)
		}
		wg.Wait()
	})
	close(stopTicker)

	handsPerSec := float64(stats.HandsPlayed.Load()) / elapsed.Seconds()
	logger.Info().
		Int64("hands", stats.HandsPlayed.Load()).
		Int64("decisions", stats.DecisionsMade.Load()).
		Dur("elapsed", elapsed).
		Float64("hands_per_sec", handsPerSec).
		Msg("self-play finished")

	if cli.BufferOut != "" {
		if err := collector.Save(cli.BufferOut); err != nil {
			logger.Error().Err(err).Str("path", cli.BufferOut).Msg("failed to save episode buffer")
		} else {
			logger.Info().Str("path", cli.BufferOut).Msg("episode buffer saved")
		}
	}
}

// playHand drives one hand from shuffle to terminal state.
func playHand(game *poker.Game, actor poker.Actor, logger zerolog.Logger) {
	res := game.Reset()
	for !res.Done {
		out, err := actor.Act(res.State, res.ActionMask, res.BetsizeMask)
		if err != nil {
			logger.Fatal().Err(err).Msg("actor failed to decide")
		}
		res = game.Step(out)
	}
	logger.Debug().
		Int64("hand", game.HandNumber()).
		Floats32("rewards", game.Rewards()).
		Msg("hand finished")
}

func resolveRuleset(cfg *appconfig.AppConfig) (*poker.Ruleset, error) {
	if cfg.RulesetFile != "" {
		return poker.LoadRuleset(cfg.RulesetFile)
	}
	return poker.RulesetByName(cfg.Ruleset)
}
