package shell

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/tumbledrop/automatic"
	"github.com/domino14/tumbledrop/board"
	"github.com/domino14/tumbledrop/config"
	"github.com/domino14/tumbledrop/game"
	"github.com/domino14/tumbledrop/negamax"
	"github.com/domino14/tumbledrop/transcript"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if sc.autoplaying() {
		return nil, errBusy
	}
	halved := sc.config.GetBool(config.ConfigLastRoundHalved)
	if _, ok := cmd.options["halved"]; ok {
		halved = cmd.options.Bool("halved")
	}
	sc.game = game.NewLiveGame(halved)
	sc.resetTable()
	return msg(sc.game.ToDisplayText()), nil
}

// parseSlot reads a 1-based slot number.
func parseSlot(s string) (int, error) {
	slot, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad slot %q", s)
	}
	if slot < 1 || slot > board.NumSlots {
		return 0, fmt.Errorf("slot must be between 1 and %d", board.NumSlots)
	}
	return slot - 1, nil
}

func (sc *ShellController) drop(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: drop <slot> [<slot> ...]")
	}
	slots := make([]int, len(cmd.args))
	for i, a := range cmd.args {
		slot, err := parseSlot(a)
		if err != nil {
			return nil, err
		}
		slots[i] = slot
	}
	var sb strings.Builder
	for _, slot := range slots {
		player := sc.game.PlayerOnTurn()
		score, err := sc.game.DropToken(slot)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "Player %d drops at %d and scores %d\n", player+1, slot+1, score)
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if !sc.game.UnplayLastMove() {
		return nil, errors.New("nothing to undo")
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) opening(cmd *shellcmd) (*Response, error) {
	for _, slot := range sc.config.Opening() {
		if _, err := sc.game.DropToken(slot); err != nil {
			return nil, fmt.Errorf("opening stopped: %w", err)
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) bins(cmd *shellcmd) (*Response, error) {
	if sc.game.IsGameOver() {
		return nil, game.ErrGameOver
	}
	vals := sc.game.BinValues()
	header := lo.Map(lo.Range(board.NumBins), func(b int, _ int) string {
		return fmt.Sprintf("%3d", b+1)
	})
	values := lo.Map(vals[:], func(v uint, _ int) string {
		return fmt.Sprintf("%3d", v)
	})
	return msg(fmt.Sprintf("Round %d, target %d\nbin:  %s\nvalue:%s",
		sc.game.Round(), game.RoundTarget(sc.game.Round()),
		strings.Join(header, ""), strings.Join(values, ""))), nil
}

func (sc *ShellController) predict(cmd *shellcmd) (*Response, error) {
	if sc.autoplaying() {
		return nil, errBusy
	}
	if sc.game.IsGameOver() {
		return nil, game.ErrGameOver
	}
	minDepth, err := cmd.options.IntDefault("depth", sc.config.GetInt(config.ConfigMinDepth))
	if err != nil {
		return nil, err
	}
	maxDepth, err := cmd.options.IntDefault("maxdepth", sc.config.GetInt(config.ConfigMaxDepth))
	if err != nil {
		return nil, err
	}
	if _, ok := cmd.options["depth"]; ok {
		if _, ok := cmd.options["maxdepth"]; !ok {
			maxDepth = minDepth
		}
	}
	if _, err := sc.table(); err != nil {
		return nil, err
	}
	var sb strings.Builder
	_, err = sc.solver.Solve(context.Background(), &sc.game.State, minDepth, maxDepth,
		func(r negamax.DepthResult) {
			sb.WriteString(formatDepthResult(r))
		})
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimSuffix(sb.String(), "\n")), nil
}

// bestMoves searches the current position at one depth with a full window.
func (sc *ShellController) bestMoves(depth int) negamax.MoveList {
	return negamax.Predict(&sc.game.State, sc.ttable, depth, math.Inf(-1), math.Inf(1))
}

func formatDepthResult(r negamax.DepthResult) string {
	return fmt.Sprintf("%d: Suggests: %s\n  entries: %d\n", r.Depth, r.Moves.String(), r.Entries)
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			if !sc.autoplaying() {
				return nil, errors.New("no automatic games running")
			}
			sc.autoplayCancel()
			<-sc.autoplayDone
			return msg("stopped"), nil
		case "analyze":
			fn := sc.config.GetString(config.ConfigAutoplayLogfile)
			if len(cmd.args) > 1 {
				fn = cmd.args[1]
			}
			summary, err := automatic.AnalyzeLogFile(fn)
			if err != nil {
				return nil, err
			}
			return msg(summary.String()), nil
		default:
			return nil, fmt.Errorf("unknown autoplay argument %q", cmd.args[0])
		}
	}
	if sc.autoplaying() {
		return nil, errBusy
	}

	opts := automatic.Options{
		RandomOpenings:  sc.config.GetInt(config.ConfigAutoplayRandomOpenings),
		TableBuckets:    sc.config.GetInt(config.ConfigAutoplayTableBuckets),
		LastRoundHalved: sc.game.LastRoundHalved(),
		LogFile:         cmd.options.String("logfile"),
	}
	if opts.LogFile == "" {
		opts.LogFile = sc.config.GetString(config.ConfigAutoplayLogfile)
	}
	var err error
	if opts.Games, err = cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigAutoplayGames)); err != nil {
		return nil, err
	}
	if opts.Threads, err = cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads)); err != nil {
		return nil, err
	}
	if opts.Depth, err = cmd.options.IntDefault("depth", sc.config.GetInt(config.ConfigAutoplayDepth)); err != nil {
		return nil, err
	}
	if opts.RandomOpenings, err = cmd.options.IntDefault("openings", opts.RandomOpenings); err != nil {
		return nil, err
	}
	var seed [automatic.SeedSize]byte
	if s := cmd.options.String("seed"); s != "" {
		if seed, err = automatic.ParseSeed(s); err != nil {
			return nil, err
		}
	} else {
		seed = automatic.GenerateSeed()
	}
	opts.Seed = &seed

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan struct{})
	go func() {
		defer close(sc.autoplayDone)
		defer cancel()
		summary, err := automatic.PlayCompVComp(ctx, opts)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Err(err).Msg("autoplay-error")
			return
		}
		sc.showMessage(summary.String())
	}()
	return msg(fmt.Sprintf("Playing %d games on %d threads at depth %d (seed %s). Drops are logged to %s.",
		opts.Games, opts.Threads, opts.Depth, automatic.FormatSeed(seed), opts.LogFile)), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: save <file>")
	}
	if err := transcript.Record(sc.game).Save(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("saved %d drops to %s", sc.game.Turn(), cmd.args[0])), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <file>")
	}
	if sc.autoplaying() {
		return nil, errBusy
	}
	t, err := transcript.Load(cmd.args[0])
	if err != nil {
		return nil, err
	}
	g, err := t.Replay()
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.resetTable()
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}
