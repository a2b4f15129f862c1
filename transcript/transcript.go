// Package transcript reads and writes game records as YAML.
package transcript

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/tumbledrop/game"
)

var ErrMismatch = errors.New("transcript does not match replay")

// Drop is one line of a transcript. Player and slot are 1-based.
type Drop struct {
	Player int  `yaml:"player"`
	Slot   int  `yaml:"slot"`
	Score  uint `yaml:"score"`
	Round  int  `yaml:"round"`
}

// Transcript is a full game record. Position, if present, is the state
// after the last drop.
type Transcript struct {
	LastRoundHalved bool           `yaml:"last_round_halved"`
	Drops           []Drop         `yaml:"drops"`
	Position        *game.Snapshot `yaml:"position,omitempty"`
}

// Record creates a transcript of everything played in g so far.
func Record(g *game.Game) *Transcript {
	t := &Transcript{LastRoundHalved: g.LastRoundHalved()}
	for _, d := range g.Drops() {
		t.Drops = append(t.Drops, Drop{
			Player: d.Player + 1,
			Slot:   d.Slot + 1,
			Score:  d.Score,
			Round:  d.Round,
		})
	}
	snap := g.Snapshot()
	t.Position = &snap
	return t
}

// Replay plays the drops on a new game and checks that players, rounds
// and scores come out as recorded.
func (t *Transcript) Replay() (*game.Game, error) {
	g := game.NewLiveGame(t.LastRoundHalved)
	for i, d := range t.Drops {
		if d.Player-1 != g.PlayerOnTurn() || d.Round != g.Round() {
			return nil, fmt.Errorf("%w: drop %d by player %d in round %d, expected player %d in round %d",
				ErrMismatch, i+1, d.Player, d.Round, g.PlayerOnTurn()+1, g.Round())
		}
		score, err := g.DropToken(d.Slot - 1)
		if err != nil {
			return nil, fmt.Errorf("drop %d: %w", i+1, err)
		}
		if score != d.Score {
			return nil, fmt.Errorf("%w: drop %d scored %d, recorded %d", ErrMismatch, i+1, score, d.Score)
		}
	}
	if t.Position != nil && t.Position.Board != g.Board().String() {
		return nil, fmt.Errorf("%w: final board %q, recorded %q",
			ErrMismatch, g.Board().String(), t.Position.Board)
	}
	return g, nil
}

func (t *Transcript) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

func Read(r io.Reader) (*Transcript, error) {
	t := &Transcript{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil {
		return nil, fmt.Errorf("cannot read transcript: %w", err)
	}
	return t, nil
}

// Save writes the transcript to a file.
func (t *Transcript) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a transcript file.
func Load(filename string) (*Transcript, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
