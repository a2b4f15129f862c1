package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/tumbledrop/config"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -logfile /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"logfile": {"/path/to/log.txt"}}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"drop 5 2 4",
			&shellcmd{"drop", []string{"5", "2", "4"}, CmdOptions{}},
			nil},
		{"predict -depth 0 -maxdepth 4 ",
			&shellcmd{"predict", nil, CmdOptions{"depth": {"0"}, "maxdepth": {"4"}}},
			nil},
		{"drop -1", &shellcmd{"drop", []string{"-1"}, CmdOptions{}}, nil},
		{"autoplay analyze -games", nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController(t *testing.T) (*ShellController, *bytes.Buffer) {
	cfg := config.New()
	cfg.Set(config.ConfigTableBuckets, 1024)
	var buf bytes.Buffer
	return newController(cfg, &buf), &buf
}

func run(t *testing.T, sc *ShellController, line string) string {
	cmd, err := extractFields(line)
	require.NoError(t, err)
	resp, err := sc.standardModeSwitch(line, nil)
	require.NoError(t, err, "running %q", cmd.cmd)
	return resp.message
}

func TestDropAndUndo(t *testing.T) {
	sc, _ := newTestController(t)
	out := run(t, sc, "drop 5 2")
	assert.Contains(t, out, "Player 1 drops at 5 and scores 0\n")
	assert.Contains(t, out, "Player 2 drops at 2 and scores 0\n")
	assert.Equal(t, 2, sc.game.Turn())

	run(t, sc, "undo")
	assert.Equal(t, 1, sc.game.Turn())
	run(t, sc, "undo")
	_, err := sc.standardModeSwitch("undo", nil)
	assert.Error(t, err)
}

func TestDropErrors(t *testing.T) {
	sc, _ := newTestController(t)
	for _, line := range []string{"drop", "drop 9", "drop 0", "drop x"} {
		_, err := sc.standardModeSwitch(line, nil)
		assert.Error(t, err, line)
	}
	// A bad slot later in the list plays nothing.
	_, err := sc.standardModeSwitch("drop 1 12", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, sc.game.Turn())
}

func TestOpeningAndPredict(t *testing.T) {
	sc, _ := newTestController(t)
	run(t, sc, "opening")
	assert.Equal(t, "lllR RlLLL lrLLll lrLLlll lllLllll", sc.game.Board().String())
	assert.Equal(t, uint(4), sc.game.PointsFor(0))

	out := run(t, sc, "predict -depth 0 -maxdepth 1")
	assert.Equal(t, "0: Suggests: 4: 14.0, 7: 12.0, 6: 8.0, 1: 4.0, 2: 4.0, 3: 4.0, 5: 4.0\n"+
		"  entries: 1\n"+
		"1: Suggests: 7: 10.0, 4: 8.0, 6: 8.0, 3: 4.0, 5: 4.0, 1: 2.0, 2: 2.0\n"+
		"  entries: 8", out)

	// A new game starts with an empty table.
	run(t, sc, "new")
	assert.Equal(t, uint64(0), sc.ttable.EntryCount())
}

func TestNewHalved(t *testing.T) {
	sc, _ := newTestController(t)
	run(t, sc, "new -halved true")
	assert.True(t, sc.game.LastRoundHalved())
	run(t, sc, "new")
	assert.False(t, sc.game.LastRoundHalved())
}

func TestBins(t *testing.T) {
	sc, _ := newTestController(t)
	out := run(t, sc, "bins")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Round 0, target 10", lines[0])
	assert.Len(t, strings.Fields(lines[2]), 17)
}

func TestSaveLoad(t *testing.T) {
	sc, _ := newTestController(t)
	run(t, sc, "opening")
	fn := filepath.Join(t.TempDir(), "game.yaml")
	run(t, sc, "save "+fn)

	other, _ := newTestController(t)
	run(t, other, "load "+fn)
	assert.Equal(t, sc.game.State, other.game.State)
	assert.Equal(t, sc.game.Drops(), other.game.Drops())
}

func TestScript(t *testing.T) {
	sc, _ := newTestController(t)
	fn := filepath.Join(t.TempDir(), "play.lua")
	script := `
tumbledrop_new("")
tumbledrop_opening()
local slot, value = tumbledrop_best(0)
assert(slot == 4, "best slot " .. tostring(slot))
assert(value == 14, "best value " .. tostring(value))
tumbledrop_drop(tostring(slot))
local me, opp = tumbledrop_score()
assert(me - opp == 14, "spread " .. tostring(me - opp))
local res = tumbledrop_drop("9")
assert(string.sub(res, 1, 5) == "ERROR")
`
	require.NoError(t, os.WriteFile(fn, []byte(script), 0o644))
	run(t, sc, "script "+fn)
	assert.Equal(t, 13, sc.game.Turn())
}

func TestHelp(t *testing.T) {
	sc, _ := newTestController(t)
	assert.Contains(t, run(t, sc, "help"), "predict [-depth n]")
	assert.Contains(t, run(t, sc, "help drop"), "Slots are numbered 1 to 8")
	_, err := sc.standardModeSwitch("help nothing", nil)
	assert.Error(t, err)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController(t)
	c := NewShellCompleter(sc)

	line := []rune("pre")
	matches, n := c.Do(line, len(line))
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("dict")})

	line = []rune("predict -max")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("depth")})

	line = []rune("drop ")
	matches, _ = c.Do(line, len(line))
	is.Equal(len(matches), 8)
}
