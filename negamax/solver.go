package negamax

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/domino14/tumbledrop/game"
)

var ErrBadDepthRange = errors.New("bad depth range")

// DepthResult is the outcome of one iteration of the deepening loop.
type DepthResult struct {
	Depth   int
	Moves   MoveList
	Entries uint64
	Nodes   uint64
	Elapsed time.Duration
}

// Solver runs Predict at increasing depths over one shared table.
type Solver struct {
	ttable *Table
	nodes  atomic.Uint64

	// progressInterval is how often node throughput is logged at debug
	// level while a search runs.
	progressInterval time.Duration
}

func NewSolver(t *Table) *Solver {
	return &Solver{ttable: t, progressInterval: time.Second}
}

func (s *Solver) Table() *Table {
	return s.ttable
}

// Nodes is the number of positions visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve searches st at every depth from minDepth to maxDepth inclusive.
// The table is kept between depths, so shallow results order the moves
// of deeper ones. report, if not nil, is called after each depth. The
// context is only checked between depths.
func (s *Solver) Solve(ctx context.Context, st *game.State, minDepth, maxDepth int,
	report func(DepthResult)) ([]DepthResult, error) {

	if minDepth < 0 || maxDepth < minDepth {
		return nil, ErrBadDepthRange
	}
	s.nodes.Store(0)
	tstart := time.Now()
	sr := &searcher{table: s.ttable, nodes: &s.nodes}
	st = st.Copy()

	var results []DepthResult
	g := &errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(s.progressInterval)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		for d := minDepth; d <= maxDepth; d++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Debug().Int("depth", d).Msg("deepening-iteratively")
			start := time.Now()
			var ml MoveList
			sr.predict(st, d, negInf, posInf, &ml)
			res := DepthResult{
				Depth:   d,
				Moves:   ml,
				Entries: s.ttable.EntryCount(),
				Nodes:   s.nodes.Load(),
				Elapsed: time.Since(start),
			}
			log.Debug().Int("depth", d).
				Int("best-slot", ml.PrincipalSlot()+1).
				Float64("best-val", ml.PrincipalValue()).
				Uint64("entries", res.Entries).
				Msg("best-val")
			results = append(results, res)
			if report != nil {
				report(res)
			}
		}
		return nil
	})

	err := g.Wait()

	stats := s.ttable.Stats()
	p := message.NewPrinter(language.English)
	log.Info().
		Str("ttable-entries", p.Sprintf("%d", stats.Entries)).
		Str("ttable-lookups", p.Sprintf("%d", stats.Lookups)).
		Str("ttable-hits", p.Sprintf("%d", stats.Hits)).
		Str("nodes", p.Sprintf("%d", s.nodes.Load())).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")

	return results, err
}
