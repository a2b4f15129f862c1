// predict plays the configured opening on a new game, prints the board,
// and then searches it at every depth from min-depth to max-depth.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tumbledrop/config"
	"github.com/domino14/tumbledrop/game"
	"github.com/domino14/tumbledrop/negamax"
)

func main() {
	cfg := config.New()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	g := game.NewGame(cfg.GetBool(config.ConfigLastRoundHalved))
	for _, slot := range cfg.Opening() {
		if _, err := g.DropToken(slot); err != nil {
			log.Fatal().Err(err).Int("slot", slot).Msg("bad-opening")
		}
	}
	fmt.Print(g.ToDisplayText())

	var ttable *negamax.Table
	var err error
	if buckets := cfg.GetInt(config.ConfigTableBuckets); buckets > 0 {
		ttable, err = negamax.NewTable(buckets)
	} else {
		ttable, err = negamax.NewTableForMemory(cfg.GetFloat64(config.ConfigTableMemoryFraction))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("table-allocation")
	}

	solver := negamax.NewSolver(ttable)
	_, err = solver.Solve(context.Background(), g, cfg.GetInt(config.ConfigMinDepth),
		cfg.GetInt(config.ConfigMaxDepth), func(r negamax.DepthResult) {
			fmt.Printf("%d: Suggests: %s\n", r.Depth, r.Moves.String())
			fmt.Printf("  entries: %d\n", r.Entries)
		})
	if err != nil {
		log.Fatal().Err(err).Msg("solve")
	}
}
