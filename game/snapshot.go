package game

import (
	"fmt"

	"github.com/domino14/tumbledrop/board"
)

// Snapshot is a plain, serializable view of a State. The board is stored
// in the compact layout form produced by board.Board.String.
type Snapshot struct {
	Board            string `yaml:"board"`
	Round            int    `yaml:"round"`
	PendingFinalDrop bool   `yaml:"pending_final_drop"`
	Scores           []uint `yaml:"scores,flow"`
	RoundScores      []uint `yaml:"round_scores,flow"`
	LastRoundHalved  bool   `yaml:"last_round_halved"`
	PlayerOnTurn     int    `yaml:"player_on_turn"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Board:            s.board.String(),
		Round:            s.round,
		PendingFinalDrop: s.pendingFinalDrop,
		Scores:           []uint{s.scores[0], s.scores[1]},
		RoundScores:      []uint{s.roundScores[0], s.roundScores[1]},
		LastRoundHalved:  s.lastRoundHalved,
		PlayerOnTurn:     s.onturn,
	}
}

// FromSnapshot builds a State from a snapshot. Only internal consistency
// is checked; the position need not be reachable by play.
func FromSnapshot(snap Snapshot) (*State, error) {
	if snap.Round < 0 || snap.Round > NumRounds {
		return nil, fmt.Errorf("%w: round %d", ErrInvalidSnapshot, snap.Round)
	}
	if snap.PlayerOnTurn < 0 || snap.PlayerOnTurn >= NumPlayers {
		return nil, fmt.Errorf("%w: player %d", ErrInvalidSnapshot, snap.PlayerOnTurn)
	}
	if len(snap.Scores) != NumPlayers || len(snap.RoundScores) != NumPlayers {
		return nil, fmt.Errorf("%w: need %d scores and round scores", ErrInvalidSnapshot, NumPlayers)
	}
	if snap.Round == NumRounds && snap.PendingFinalDrop {
		return nil, fmt.Errorf("%w: pending drop after the last round", ErrInvalidSnapshot)
	}
	b, err := board.Parse(snap.Board)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	s := &State{
		board:            *b,
		round:            snap.Round,
		pendingFinalDrop: snap.PendingFinalDrop,
		lastRoundHalved:  snap.LastRoundHalved,
		onturn:           snap.PlayerOnTurn,
	}
	copy(s.scores[:], snap.Scores)
	copy(s.roundScores[:], snap.RoundScores)
	return s, nil
}
