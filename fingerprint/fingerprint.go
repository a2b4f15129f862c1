// Package fingerprint derives a fixed-width key for a game position. Scores
// are stored relative to the player on turn, so positions that only differ
// by which seat is which map to the same key.
package fingerprint

import (
	"encoding/binary"

	"github.com/domino14/tumbledrop/board"
	"github.com/domino14/tumbledrop/game"
)

const Size = 16

const (
	fnvOffset uint32 = 2166136261
	fnvPrime  uint32 = 16777619
)

// Fingerprint is the 128-bit key of a position. Layout, little endian:
// bytes 0-7 hold the gates (2 bits each, row-major, first gate highest)
// followed by 3 bits of round and the halved flag; bytes 8-11 hold the
// total scores and bytes 12-15 the round scores, each as
// (on turn << 16 | opponent).
type Fingerprint [Size]byte

// Compute returns the fingerprint of s.
func Compute(s *game.State) Fingerprint {
	var fp Fingerprint
	binary.LittleEndian.PutUint64(fp[0:8], gateWord(s))
	me, opp := s.PlayerOnTurn(), s.NextPlayer()
	binary.LittleEndian.PutUint32(fp[8:12], packScores(s.PointsFor(me), s.PointsFor(opp)))
	binary.LittleEndian.PutUint32(fp[12:16], packScores(s.RoundPointsFor(me), s.RoundPointsFor(opp)))
	return fp
}

func gateWord(s *game.State) uint64 {
	var w uint64
	b := s.Board()
	for row := 0; row < board.NumRows; row++ {
		for col := 0; col < board.RowWidth(row); col++ {
			g := b.Gate(row, col)
			w <<= 2
			if g.Orientation() == board.Right {
				w |= 2
			}
			if g.HasRestingToken() {
				w |= 1
			}
		}
	}
	w = w<<4 | uint64(s.Round()&7)<<1
	if s.LastRoundHalved() {
		w |= 1
	}
	return w
}

func packScores(me, opp uint) uint32 {
	return uint32(me&0xffff)<<16 | uint32(opp&0xffff)
}

// Gates returns the gate, round and option word.
func (f Fingerprint) Gates() uint64 {
	return binary.LittleEndian.Uint64(f[0:8])
}

// Scores returns the packed total scores.
func (f Fingerprint) Scores() uint32 {
	return binary.LittleEndian.Uint32(f[8:12])
}

// RoundScores returns the packed round scores.
func (f Fingerprint) RoundScores() uint32 {
	return binary.LittleEndian.Uint32(f[12:16])
}

// Hash32 hashes the fingerprint bytes. Each step multiplies before it
// mixes in the byte.
func (f Fingerprint) Hash32() uint32 {
	h := fnvOffset
	for _, b := range f {
		h *= fnvPrime
		h ^= uint32(b)
	}
	return h
}
