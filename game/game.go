// Package game holds the rules of the token-drop game: scoring bins,
// rounds, and whose turn it is. The physical part of a drop is handled
// by the board package.
package game

import (
	"errors"
	"fmt"

	"github.com/domino14/tumbledrop/board"
)

const (
	NumRounds  = 4
	NumPlayers = 2
)

var (
	ErrGameOver        = errors.New("game is over")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// roundBinValues are the points for each scoring bin, per round.
var roundBinValues = [NumRounds][board.NumBins]uint{
	{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
	{34, 21, 13, 8, 5, 3, 2, 1, 1, 2, 3, 5, 8, 13, 21, 34},
	{9, 8, 7, 6, 5, 4, 3, 2, 2, 3, 4, 5, 6, 7, 8, 9},
	{64, 49, 36, 25, 16, 9, 4, 1, 1, 4, 9, 16, 25, 36, 49, 64},
}

// roundTargets: a round closes one drop after a player's round score
// goes strictly above its target.
var roundTargets = [NumRounds]uint{10, 40, 20, 80}

// CanonicalSlotOrder is the order in which drop slots are tried.
var CanonicalSlotOrder = [board.NumSlots]int{0, 7, 1, 6, 2, 5, 3, 4}

// RoundTarget returns the score a player must exceed to close a round.
func RoundTarget(round int) uint {
	if round < 0 || round >= NumRounds {
		return 0
	}
	return roundTargets[round]
}

func binValue(round, bin int, lastRoundHalved bool) uint {
	if round < 0 || round >= NumRounds || bin < 0 || bin >= board.NumBins {
		return 0
	}
	v := roundBinValues[round][bin]
	if lastRoundHalved && round == NumRounds-1 && bin != 7 && bin != 8 {
		v /= 2
	}
	return v
}

// State is the full game. It contains no pointers, so assigning a State
// copies it completely.
type State struct {
	board            board.Board
	round            int
	roundScores      [NumPlayers]uint
	scores           [NumPlayers]uint
	pendingFinalDrop bool
	lastRoundHalved  bool
	onturn           int
}

// NewGame starts a game in round 0 with player 0 to move.
func NewGame(lastRoundHalved bool) *State {
	return &State{lastRoundHalved: lastRoundHalved}
}

// Copy returns an independent clone of the state.
func (s *State) Copy() *State {
	c := *s
	return &c
}

// CopyFrom overwrites s with other.
func (s *State) CopyFrom(other *State) {
	*s = *other
}

// DropToken drops a token for the player on turn, scores the bins it
// and any released tokens land in, and passes the turn. The state is not
// changed if an error is returned.
func (s *State) DropToken(slot int) (uint, error) {
	if s.IsGameOver() {
		return 0, ErrGameOver
	}
	bins, err := s.board.Cascade(slot)
	if err != nil {
		return 0, fmt.Errorf("cannot drop at slot %d: %w", slot, err)
	}
	var score uint
	for bin, n := range bins {
		score += n * s.BinValue(bin)
	}
	s.roundScores[s.onturn] += score
	s.scores[s.onturn] += score

	if s.pendingFinalDrop {
		s.round++
		s.pendingFinalDrop = false
		s.roundScores = [NumPlayers]uint{}
	} else if s.roundScores[s.onturn] > roundTargets[s.round] {
		s.pendingFinalDrop = true
	}
	s.onturn = otherPlayer(s.onturn)
	return score, nil
}

func otherPlayer(idx int) int {
	return (idx + 1) % NumPlayers
}

// IsGameOver reports whether all four rounds have been played.
func (s *State) IsGameOver() bool {
	return s.round >= NumRounds
}

// SlotLegal reports whether slot is a move the search may play. Blocked
// slots can still be passed to DropToken.
func (s *State) SlotLegal(slot int) bool {
	return !s.IsGameOver() && s.board.SlotLegal(slot)
}

// LegalSlots returns the playable slots in canonical order.
func (s *State) LegalSlots() []int {
	if s.IsGameOver() {
		return nil
	}
	slots := make([]int, 0, board.NumSlots)
	for _, slot := range CanonicalSlotOrder {
		if s.board.SlotLegal(slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// BinValue is what a token landing in bin is worth this round.
func (s *State) BinValue(bin int) uint {
	return binValue(s.round, bin, s.lastRoundHalved)
}

// BinValues returns the current round's bin values, left to right.
func (s *State) BinValues() [board.NumBins]uint {
	var vals [board.NumBins]uint
	for i := range vals {
		vals[i] = s.BinValue(i)
	}
	return vals
}

// Evaluation is the score margin from the point of view of the player on
// turn.
func (s *State) Evaluation() int {
	return s.SpreadFor(s.onturn)
}

// Winner returns the index of the player with more points, or -1 if the
// scores are level.
func (s *State) Winner() int {
	switch {
	case s.scores[0] > s.scores[1]:
		return 0
	case s.scores[1] > s.scores[0]:
		return 1
	}
	return -1
}

func (s *State) Board() *board.Board {
	return &s.board
}

func (s *State) Round() int {
	return s.round
}

func (s *State) PendingFinalDrop() bool {
	return s.pendingFinalDrop
}

func (s *State) LastRoundHalved() bool {
	return s.lastRoundHalved
}

func (s *State) PlayerOnTurn() int {
	return s.onturn
}

func (s *State) NextPlayer() int {
	return otherPlayer(s.onturn)
}

func (s *State) PointsFor(playerIdx int) uint {
	return s.scores[playerIdx]
}

func (s *State) RoundPointsFor(playerIdx int) uint {
	return s.roundScores[playerIdx]
}

// SpreadFor returns player's total score minus the opponent's.
func (s *State) SpreadFor(playerIdx int) int {
	return int(s.scores[playerIdx]) - int(s.scores[otherPlayer(playerIdx)])
}
