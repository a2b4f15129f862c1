package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tumbledrop/config"
	"github.com/domino14/tumbledrop/game"
	"github.com/domino14/tumbledrop/negamax"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errBusy              = errors.New("still working; wait or do `autoplay stop` first")
)

type ShellController struct {
	l          *readline.Instance
	out        io.Writer
	config     *config.Config
	execPath   string
	gitVersion string

	game   *game.Game
	ttable *negamax.Table
	solver *negamax.Solver

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, os.Stderr)
	sc.execPath = execPath
	sc.gitVersion = gitVersion

	prompt := "tumbledrop"
	if gitVersion != "" {
		prompt += "-" + gitVersion
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m" + prompt + ">\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	return &ShellController{
		config: cfg,
		out:    out,
		game:   game.NewLiveGame(cfg.GetBool(config.ConfigLastRoundHalved)),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments
// and its -key value options. Options come after the arguments.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}

	i := 1
	for ; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") && !isNumber(fields[i]) {
			break
		}
		args = append(args, fields[i])
	}
	for ; i < len(fields); i += 2 {
		if !strings.HasPrefix(fields[i], "-") || i+1 >= len(fields) {
			return nil, errWrongOptionSyntax
		}
		key := fields[i][1:]
		options[key] = append(options[key], fields[i+1])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// table returns the search table, creating it on first use.
func (sc *ShellController) table() (*negamax.Table, error) {
	if sc.ttable != nil {
		return sc.ttable, nil
	}
	var err error
	if buckets := sc.config.GetInt(config.ConfigTableBuckets); buckets > 0 {
		sc.ttable, err = negamax.NewTable(buckets)
	} else {
		sc.ttable, err = negamax.NewTableForMemory(sc.config.GetFloat64(config.ConfigTableMemoryFraction))
	}
	if err != nil {
		return nil, err
	}
	sc.solver = negamax.NewSolver(sc.ttable)
	return sc.ttable, nil
}

func (sc *ShellController) resetTable() {
	if sc.ttable != nil {
		sc.ttable.Reset()
	}
}

func (sc *ShellController) autoplaying() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errors.New("sending quit signal")
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "drop", "d":
		return sc.drop(cmd)
	case "undo":
		return sc.undo(cmd)
	case "opening":
		return sc.opening(cmd)
	case "predict":
		return sc.predict(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "bins":
		return sc.bins(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "save":
		return sc.save(cmd)
	case "load":
		return sc.load(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
	}
}

// Execute runs a single command line and prints its result.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if err != nil {
			if line == "exit" || line == "bye" {
				break
			}
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any background games.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
		<-sc.autoplayDone
	}
}

// Wait blocks until background games are done.
func (sc *ShellController) Wait() {
	if sc.autoplayDone != nil {
		<-sc.autoplayDone
	}
}
