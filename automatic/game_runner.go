// Package automatic plays computer-vs-computer games and collects
// statistics about them.
package automatic

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/tumbledrop/game"
	"github.com/domino14/tumbledrop/negamax"
)

// CSVHeader is the first line of the drop log.
const CSVHeader = "gameID,turn,player,slot,score,totalscore,oppscore,round\n"

// GameResult is the outcome of one automatic game.
type GameResult struct {
	ID     string
	Scores [game.NumPlayers]uint
	Drops  int
}

// Spread is player 0's margin.
func (g GameResult) Spread() int {
	return int(g.Scores[0]) - int(g.Scores[1])
}

// GameRunner plays games where both seats drop at the best slot found
// by a fixed-depth search, after a few random opening drops.
type GameRunner struct {
	game    *game.Game
	ttable  *negamax.Table
	logchan chan string

	depth           int
	randomOpenings  int
	lastRoundHalved bool
}

// NewGameRunner creates a runner with its own search table. Drop lines
// are sent to logchan if it is not nil.
func NewGameRunner(logchan chan string, opts Options) (*GameRunner, error) {
	tt, err := negamax.NewTable(opts.TableBuckets)
	if err != nil {
		return nil, err
	}
	return &GameRunner{
		ttable:          tt,
		logchan:         logchan,
		depth:           opts.Depth,
		randomOpenings:  opts.RandomOpenings,
		lastRoundHalved: opts.LastRoundHalved,
	}, nil
}

// StartGame sets up a fresh game and clears the search table.
func (r *GameRunner) StartGame() {
	r.game = game.NewLiveGame(r.lastRoundHalved)
	r.ttable.Reset()
}

func (r *GameRunner) bestSlot() int {
	ml := negamax.Predict(&r.game.State, r.ttable, r.depth, math.Inf(-1), math.Inf(1))
	return ml.PrincipalSlot()
}

// PlayGame plays one game to the end. If rng is nil the global frand
// generator picks the random openings.
func (r *GameRunner) PlayGame(rng *frand.RNG) (GameResult, error) {
	r.StartGame()
	intn := frand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for !r.game.IsGameOver() {
		var slot int
		if r.game.Turn() < r.randomOpenings {
			legal := r.game.LegalSlots()
			slot = legal[intn(len(legal))]
		} else {
			slot = r.bestSlot()
		}
		if _, err := r.game.DropToken(slot); err != nil {
			return GameResult{}, err
		}
	}
	res := GameResult{
		ID:     gameID(r.game.Drops()),
		Scores: [game.NumPlayers]uint{r.game.PointsFor(0), r.game.PointsFor(1)},
		Drops:  r.game.Turn(),
	}
	log.Debug().Str("game-id", res.ID).
		Uint("p1", res.Scores[0]).Uint("p2", res.Scores[1]).
		Int("drops", res.Drops).Msg("game-over")
	r.logDrops(res.ID)
	return res, nil
}

// logDrops sends all lines of the finished game as one message, so games
// played on different workers do not interleave in the log.
func (r *GameRunner) logDrops(id string) {
	if r.logchan == nil {
		return
	}
	var sb strings.Builder
	var totals [game.NumPlayers]uint
	for i, d := range r.game.Drops() {
		totals[d.Player] += d.Score
		fmt.Fprintf(&sb, "%v,%v,%v,%v,%v,%v,%v,%v\n",
			id,
			i+1,
			d.Player+1,
			d.Slot+1,
			d.Score,
			totals[d.Player],
			totals[1-d.Player],
			d.Round)
	}
	r.logchan <- sb.String()
}

// gameID hashes the drop sequence; identical games get identical ids.
func gameID(drops []game.Drop) string {
	buf := make([]byte, len(drops))
	for i, d := range drops {
		buf[i] = byte(d.Slot)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(buf))
}
