package negamax

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/tumbledrop/board"
	"github.com/domino14/tumbledrop/game"
)

// Move is a slot together with its search value.
type Move struct {
	Slot  int
	Value float64
}

// MoveList is the result of a search: the examined slots ordered best
// first. Values are kept per slot, not per position in the list.
type MoveList struct {
	slots  [board.NumSlots]uint8
	values [board.NumSlots]float64
	count  int
}

func (m *MoveList) Len() int {
	return m.count
}

// Slot returns the i-th best slot.
func (m *MoveList) Slot(i int) int {
	return int(m.slots[i])
}

// Value returns the value of the i-th best slot.
func (m *MoveList) Value(i int) float64 {
	return m.values[m.slots[i]]
}

// PrincipalSlot is the recommended slot.
func (m *MoveList) PrincipalSlot() int {
	return m.Slot(0)
}

// PrincipalValue is the value of the node the list was computed for.
func (m *MoveList) PrincipalValue() float64 {
	return m.Value(0)
}

// Moves returns the list as (slot, value) pairs, best first.
func (m *MoveList) Moves() []Move {
	return lo.Map(m.slots[:m.count], func(s uint8, _ int) Move {
		return Move{Slot: int(s), Value: m.values[s]}
	})
}

// String shows the list with 1-based slots, e.g. "4: 14.0, 7: -inf".
func (m *MoveList) String() string {
	parts := lo.Map(m.Moves(), func(mv Move, _ int) string {
		return fmt.Sprintf("%d: %s", mv.Slot+1, formatValue(mv.Value))
	})
	return strings.Join(parts, ", ")
}

func formatValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.1f", v)
}

func (m *MoveList) setTerminal(value float64) {
	m.slots[0] = 0
	m.values[0] = value
	m.count = 1
}

// fill writes the legal slots of s in canonical order, each valued at
// -Inf, and returns how many there are. The count is not set.
func (m *MoveList) fill(s *game.State) int {
	n := 0
	b := s.Board()
	for _, slot := range game.CanonicalSlotOrder {
		if b.SlotLegal(slot) {
			m.slots[n] = uint8(slot)
			m.values[slot] = negInf
			n++
		}
	}
	return n
}

// sortByValues orders slots by descending table value. Equal values keep
// their relative order.
func sortByValues(slots []uint8, table *[board.NumSlots]float64) {
	slices.SortStableFunc(slots, func(a, b uint8) int {
		return cmp.Compare(table[b], table[a])
	})
}
