package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// NumRows is the number of gate rows.
	NumRows = 5
	// MaxCols is the width of the widest (bottom) row.
	MaxCols = NumRows + 3
	// NumGates is the total gate count over all rows.
	NumGates = 30
	// NumSlots is the number of drop points above the top row: two
	// approach sides for each of its four gates.
	NumSlots = 8
	// NumBins is the number of scoring bins below the bottom row.
	NumBins = 16
)

var (
	ErrSlotOutOfRange = errors.New("slot out of range")
	ErrBadLayout      = errors.New("bad board layout")
)

// RowWidth returns the number of gates in a row.
func RowWidth(row int) int {
	return row + 4
}

func rowOffset(row int) int {
	return 4*row + row*(row-1)/2
}

// Index returns the flat index of the gate at (row, col).
func Index(row, col int) int {
	return rowOffset(row) + col
}

// SlotGate returns the top-row column and approach side of a drop slot.
func SlotGate(slot int) (int, Side) {
	return slot / 2, Side(slot % 2)
}

// Slot is the inverse of SlotGate.
func Slot(col int, side Side) int {
	return 2*col + int(side)
}

// BinFor maps an exit below the bottom row to its scoring bin. Tokens
// leaving gate column c on the right approach exit at column c+1, so
// exits are addressed by (exit column, arrival side) and numbered left
// to right.
func BinFor(exitCol int, side Side) int {
	return 2*exitCol + int(side) - 1
}

func binExit(bin int) (int, Side) {
	return (bin + 1) / 2, Side((bin + 1) % 2)
}

// Board is the triangular network of gates. Its shape never changes; the
// zero value has every gate leaning left and empty.
type Board struct {
	gates [NumGates]Gate
}

func (b *Board) Gate(row, col int) Gate {
	return b.gates[Index(row, col)]
}

func (b *Board) SetGate(row, col int, g Gate) {
	b.gates[Index(row, col)] = g
}

// Clear puts every gate back to its starting position.
func (b *Board) Clear() {
	b.gates = [NumGates]Gate{}
}

// SlotLegal reports whether slot is a move the search may play. A slot is
// blocked when the top gate holds a token and the slot approaches it on
// its capturing side. Cascade still accepts blocked slots.
func (b *Board) SlotLegal(slot int) bool {
	if slot < 0 || slot >= NumSlots {
		return false
	}
	col, side := SlotGate(slot)
	g := b.gates[Index(0, col)]
	return !g.resting || side != g.CapturingSide()
}

// RestingTokens counts the tokens parked on the board.
func (b *Board) RestingTokens() int {
	n := 0
	for _, g := range b.gates {
		if g.resting {
			n++
		}
	}
	return n
}

// String returns a compact layout, one word per row, for example
// "llLl lllll llllll lllllll llllllll". See Gate.char.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < NumRows; row++ {
		if row > 0 {
			sb.WriteByte(' ')
		}
		for col := 0; col < RowWidth(row); col++ {
			sb.WriteByte(b.Gate(row, col).char())
		}
	}
	return sb.String()
}

// Parse reads a layout produced by String.
func Parse(layout string) (*Board, error) {
	rows := strings.Fields(layout)
	if len(rows) != NumRows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrBadLayout, NumRows, len(rows))
	}
	b := &Board{}
	for row, word := range rows {
		if len(word) != RowWidth(row) {
			return nil, fmt.Errorf("%w: row %d has %d gates, want %d",
				ErrBadLayout, row, len(word), RowWidth(row))
		}
		for col := 0; col < len(word); col++ {
			var g Gate
			switch word[col] {
			case 'l':
			case 'L':
				g.resting = true
			case 'r':
				g.orientation = Right
			case 'R':
				g.orientation = Right
				g.resting = true
			default:
				return nil, fmt.Errorf("%w: unexpected gate %q at row %d col %d",
					ErrBadLayout, word[col], row, col)
			}
			b.SetGate(row, col, g)
		}
	}
	return b, nil
}
