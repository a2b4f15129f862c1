package automatic

// Data collection for automatic games.

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/tumbledrop/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Options controls a batch of automatic games.
type Options struct {
	Games           int
	Threads         int
	Depth           int
	RandomOpenings  int
	TableBuckets    int
	LastRoundHalved bool
	// LogFile receives one CSV line per drop. Empty means no log.
	LogFile string
	// Seed makes the random openings reproducible. Nil means random.
	Seed *[SeedSize]byte
}

// Summary aggregates the results of a batch.
type Summary struct {
	Games  int
	Wins   [2]int
	Draws  int
	Spread stats.Values
	Drops  stats.Statistic
}

func (s *Summary) add(res GameResult) {
	s.Games++
	switch sp := res.Spread(); {
	case sp > 0:
		s.Wins[0]++
	case sp < 0:
		s.Wins[1]++
	default:
		s.Draws++
	}
	s.Spread.Push(float64(res.Spread()))
	s.Drops.Push(float64(res.Drops))
}

// String summarizes the batch, with a histogram of player 1's spread.
func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	if s.Games == 0 {
		return sb.String()
	}
	for p := 0; p < 2; p++ {
		fmt.Fprintf(&sb, "Player %d wins: %d (%.3f%%)\n", p+1, s.Wins[p],
			100.0*float64(s.Wins[p])/float64(s.Games))
	}
	fmt.Fprintf(&sb, "Draws: %d\n", s.Draws)
	rate, hw := stats.WinRateInterval(s.Wins[0], s.Draws, s.Games, 95)
	fmt.Fprintf(&sb, "Player 1 win rate: %.3f ± %.3f (95%% confidence)\n", rate, hw)
	fmt.Fprintf(&sb, "Player 1 spread: mean %.3f  stdev %.3f  min %.0f  max %.0f\n",
		s.Spread.Mean(), s.Spread.Stdev(), s.Spread.Min(), s.Spread.Max())
	fmt.Fprintf(&sb, "Drops per game: mean %.2f\n", s.Drops.Mean())
	if err := s.Spread.FprintHistogram(&sb, 40); err != nil {
		log.Err(err).Msg("histogram")
	}
	return sb.String()
}

// PlayCompVComp plays opts.Games games on opts.Threads workers and
// returns once they are done or ctx is cancelled. Each worker has its own
// runner and search table.
func PlayCompVComp(ctx context.Context, opts Options) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	log.Info().Int("games", opts.Games).Int("threads", opts.Threads).
		Int("depth", opts.Depth).Msg("starting-autoplay")

	var logChan chan string
	loggerDone := make(chan error, 1)
	if opts.LogFile != "" {
		logfile, err := os.Create(opts.LogFile)
		if err != nil {
			return nil, err
		}
		logChan = make(chan string, 100)
		go func() {
			w := bufio.NewWriter(logfile)
			w.WriteString(CSVHeader)
			for msg := range logChan {
				w.WriteString(msg)
			}
			err := w.Flush()
			if cerr := logfile.Close(); err == nil {
				err = cerr
			}
			log.Debug().Msg("exiting-turn-logger")
			loggerDone <- err
		}()
	} else {
		loggerDone <- nil
	}

	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	var mu sync.Mutex
	summary := &Summary{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
		}
		return nil
	})

	for t := 0; t < opts.Threads; t++ {
		g.Go(func() error {
			r, err := NewGameRunner(logChan, opts)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for n := range jobs {
				if gctx.Err() != nil {
					return nil
				}
				var rng *frand.RNG
				if opts.Seed != nil {
					rng = gameRNG(*opts.Seed, n)
				}
				res, err := r.PlayGame(rng)
				if err != nil {
					return err
				}
				mu.Lock()
				summary.add(res)
				mu.Unlock()
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	if logChan != nil {
		close(logChan)
	}
	if lerr := <-loggerDone; err == nil {
		err = lerr
	}
	if err == nil {
		err = ctx.Err()
	}
	log.Info().Int("games", summary.Games).Msg("all-games-finished")
	return summary, err
}
