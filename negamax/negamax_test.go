package negamax

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/domino14/tumbledrop/fingerprint"
	"github.com/domino14/tumbledrop/game"
)

var openingSlots = []int{4, 1, 3, 0, 2, 7, 4, 1, 3, 0, 2, 7}

var repeatingSlots = []int{0, 4, 1, 0, 5, 1}

type depthCase struct {
	depth   int
	moves   string
	entries uint64
}

func openingPosition(t *testing.T) *game.State {
	g := game.NewGame(false)
	for _, slot := range openingSlots {
		_, err := g.DropToken(slot)
		require.NoError(t, err)
	}
	return g
}

func lateGamePosition(t *testing.T, drops int) *game.State {
	g := game.NewGame(false)
	for i := 0; i < drops; i++ {
		_, err := g.DropToken(repeatingSlots[i%len(repeatingSlots)])
		require.NoError(t, err)
	}
	return g
}

func newTestTable(t *testing.T, buckets int) *Table {
	tt, err := NewTable(buckets)
	require.NoError(t, err)
	return tt
}

func checkDepths(t *testing.T, s *game.State, tt *Table, cases []depthCase) {
	is := is.New(t)
	for _, c := range cases {
		ml := Predict(s, tt, c.depth, math.Inf(-1), math.Inf(1))
		is.Equal(ml.String(), c.moves)       // move list
		is.Equal(tt.EntryCount(), c.entries) // table entries
	}
}

func TestPredictSharedTable(t *testing.T) {
	s := openingPosition(t)
	before := *s
	checkDepths(t, s, newTestTable(t, 1024), []depthCase{
		{0, "4: 14.0, 7: 12.0, 6: 8.0, 1: 4.0, 2: 4.0, 3: 4.0, 5: 4.0", 1},
		{1, "7: 10.0, 4: 8.0, 6: 8.0, 3: 4.0, 5: 4.0, 1: 2.0, 2: 2.0", 8},
		{2, "7: 10.0, 4: 8.0, 6: 2.0, 3: -2.0, 5: -2.0, 1: -2.0, 2: -2.0", 30},
		{3, "7: 10.0, 4: 8.0, 6: 2.0, 1: -2.0, 2: -2.0, 3: -2.0, 5: -2.0", 100},
		{4, "7: 13.0, 4: 10.0, 6: 6.0, 3: 6.0, 1: 2.0, 2: 2.0, 5: 2.0", 244},
	})
	// The searched position is never modified.
	require.Equal(t, before, *s)
}

func TestPredictFreshTables(t *testing.T) {
	s := openingPosition(t)
	cases := []depthCase{
		{0, "4: 14.0, 7: 12.0, 6: 8.0, 1: 4.0, 2: 4.0, 3: 4.0, 5: 4.0", 1},
		{1, "7: 10.0, 6: 8.0, 4: 8.0, 3: 4.0, 5: 4.0, 1: -6.0, 2: -6.0", 8},
		{2, "7: 10.0, 4: 8.0, 6: 2.0, 1: -2.0, 2: -2.0, 3: -2.0, 5: -2.0", 34},
		{3, "7: 10.0, 3: 10.0, 5: 10.0, 4: 8.0, 6: 2.0, 1: -6.0, 2: -6.0", 129},
		{4, "7: 13.0, 4: 10.0, 3: 6.0, 6: 6.0, 5: 2.0, 1: -4.0, 2: -4.0", 458},
	}
	for _, c := range cases {
		checkDepths(t, s, newTestTable(t, 1024), []depthCase{c})
	}
}

func TestPredictLateGame(t *testing.T) {
	tests := []struct {
		name  string
		drops int
		cases []depthCase
	}{
		{"round 3, player 0", 54, []depthCase{
			{0, "4: 89.0, 6: 85.0, 1: 80.0, 8: 80.0, 2: 80.0, 7: 80.0, 3: 80.0, 5: 80.0", 1},
			{1, "4: 79.0, 8: 75.0, 7: 75.0, 3: 75.0, 5: 75.0, 6: 71.0, 1: 19.0, 2: 19.0", 9},
			{2, "5: 85.0, 3: 84.0, 8: 81.0, 7: 81.0, 4: 79.0, 6: 71.0, 1: 28.0, 2: 28.0", 42},
			{3, "4: 79.0, 5: 75.0, 3: 75.0, 8: 71.0, 7: 71.0, 6: 71.0, 1: 28.0, 2: 28.0", 122},
		}},
		{"round 3, player 1", 55, []depthCase{
			{0, "2: -19.0, 4: -71.0, 6: -75.0, 8: -80.0, 7: -80.0, 3: -80.0, 5: -80.0", 1},
			{1, "2: -28.0, 4: -71.0, 6: -75.0, 8: -80.0, 3: -80.0, 5: -80.0, 7: -85.0", 8},
			{2, "2: -18.0, 8: -19.0, 3: -19.0, 5: -19.0, 7: -24.0, 4: -inf, 6: -inf", 24},
			{3, "2: -44.0, 8: -46.0, 3: -53.0, 7: -53.0, 5: -inf, 6: -inf, 4: -inf", 83},
		}},
		{"winning drop", 56, []depthCase{
			{0, "2: 141.0, 4: 89.0, 6: 85.0, 8: 80.0, 7: 80.0, 3: 80.0", 1},
			{1, "2: inf", 2},
			{2, "2: inf", 2},
			{3, "2: inf", 2},
		}},
		{"last drop, lost", 57, []depthCase{
			{0, "1: -inf, 8: -inf, 2: -inf, 7: -inf, 3: -inf, 6: -inf, 4: -inf", 1},
			{1, "1: -inf, 8: -inf, 2: -inf, 7: -inf, 3: -inf, 6: -inf, 4: -inf", 1},
			{2, "1: -inf, 8: -inf, 2: -inf, 7: -inf, 3: -inf, 6: -inf, 4: -inf", 1},
			{3, "1: -inf, 8: -inf, 2: -inf, 7: -inf, 3: -inf, 6: -inf, 4: -inf", 1},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checkDepths(t, lateGamePosition(t, tc.drops), newTestTable(t, 64), tc.cases)
		})
	}
}

func TestPredictTerminal(t *testing.T) {
	is := is.New(t)
	tt := newTestTable(t, 16)
	for _, c := range []struct {
		player int
		scores []uint
		want   float64
	}{
		{0, []uint{120, 80}, math.Inf(1)},
		{1, []uint{120, 80}, math.Inf(-1)},
		{1, []uint{80, 80}, 0},
	} {
		s, err := game.FromSnapshot(game.Snapshot{
			Board:        "llll lllll llllll lllllll llllllll",
			Round:        4,
			Scores:       c.scores,
			RoundScores:  []uint{0, 0},
			PlayerOnTurn: c.player,
		})
		is.NoErr(err)
		for depth := 0; depth < 3; depth++ {
			ml := Predict(s, tt, depth, math.Inf(-1), math.Inf(1))
			is.Equal(ml.Len(), 1)
			is.Equal(ml.PrincipalValue(), c.want)
		}
	}
	// Finished games are never stored.
	is.Equal(tt.EntryCount(), uint64(0))
}

func TestPredictNarrowWindow(t *testing.T) {
	is := is.New(t)
	s := openingPosition(t)
	tt := newTestTable(t, 1024)
	// With beta at 0 the first child already refutes the window.
	ml := Predict(s, tt, 0, math.Inf(-1), 0)
	is.Equal(ml.Len(), 1)
	is.Equal(ml.PrincipalSlot(), 0)
	is.Equal(ml.PrincipalValue(), 4.0)

	stored := tt.Lookup(fingerprint.Compute(s))
	is.True(stored != nil)
	is.Equal(stored.Beta, 0.0)
	is.Equal(stored.Moves.Len(), 1)
}
