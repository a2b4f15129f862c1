package game

import (
	"fmt"
	"strings"
)

// ToDisplayText turns the current state of the game into a displayable
// string: round and scores, the board, and what each bin is worth.
func (s *State) ToDisplayText() string {
	var sb strings.Builder
	if !s.IsGameOver() {
		pending := ""
		if s.pendingFinalDrop {
			pending = "+"
		}
		fmt.Fprintf(&sb, "Round %d%s (player %d)\n", s.round, pending, s.onturn+1)
	} else {
		sb.WriteString("Game over\n")
	}
	fmt.Fprintf(&sb, "Score: %d, %d\n", s.scores[0], s.scores[1])
	fmt.Fprintf(&sb, "Round score: %d, %d\n", s.roundScores[0], s.roundScores[1])
	sb.WriteString(s.board.ToDisplayText())
	if !s.IsGameOver() {
		for _, v := range s.BinValues() {
			fmt.Fprintf(&sb, "%d ", v)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
