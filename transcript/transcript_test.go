package transcript

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/tumbledrop/board"
	"github.com/domino14/tumbledrop/game"
)

var openingSlots = []int{4, 1, 3, 0, 2, 7, 4, 1, 3, 0, 2, 7}

func playOpening(t *testing.T) *game.Game {
	g := game.NewLiveGame(false)
	for _, slot := range openingSlots {
		_, err := g.DropToken(slot)
		require.NoError(t, err)
	}
	return g
}

func TestRecord(t *testing.T) {
	g := playOpening(t)
	tr := Record(g)
	assert.False(t, tr.LastRoundHalved)
	assert.Len(t, tr.Drops, len(openingSlots))
	assert.Equal(t, Drop{Player: 1, Slot: 5, Score: 0, Round: 0}, tr.Drops[0])
	assert.Equal(t, Drop{Player: 1, Slot: 5, Score: 4, Round: 0}, tr.Drops[6])
	require.NotNil(t, tr.Position)
	assert.Equal(t, g.Board().String(), tr.Position.Board)
}

func TestWriteRead(t *testing.T) {
	g := playOpening(t)
	var buf bytes.Buffer
	require.NoError(t, Record(g).Write(&buf))
	assert.Contains(t, buf.String(), "last_round_halved: false")
	assert.Contains(t, buf.String(), "  - player: 1\n    slot: 5\n    score: 4\n")

	tr, err := Read(&buf)
	require.NoError(t, err)
	replayed, err := tr.Replay()
	require.NoError(t, err)
	assert.Equal(t, g.State, replayed.State)
	assert.Equal(t, g.Drops(), replayed.Drops())
}

func TestSaveLoad(t *testing.T) {
	g := playOpening(t)
	fn := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, Record(g).Save(fn))
	tr, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, Record(g), tr)
}

func TestReplayMismatch(t *testing.T) {
	tr := Record(playOpening(t))
	tr.Drops[6].Score = 3
	_, err := tr.Replay()
	assert.True(t, errors.Is(err, ErrMismatch), "got %v", err)

	tr = Record(playOpening(t))
	tr.Drops[1].Player = 1
	_, err = tr.Replay()
	assert.True(t, errors.Is(err, ErrMismatch), "got %v", err)

	tr = Record(playOpening(t))
	tr.Position.Board = "llll lllll llllll lllllll llllllll"
	_, err = tr.Replay()
	assert.True(t, errors.Is(err, ErrMismatch), "got %v", err)
}

func TestReplayIllegalDrop(t *testing.T) {
	tr := &Transcript{Drops: []Drop{{Player: 1, Slot: 9, Round: 0}}}
	_, err := tr.Replay()
	assert.ErrorIs(t, err, board.ErrSlotOutOfRange)
}

func TestReadUnknownField(t *testing.T) {
	_, err := Read(strings.NewReader("drops: []\nwinner: 1\n"))
	assert.Error(t, err)
}
