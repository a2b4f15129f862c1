package board

// Bins holds the number of tokens that landed in each scoring bin.
type Bins [NumBins]uint

// Total returns the number of tokens that left the board.
func (b Bins) Total() uint {
	var n uint
	for _, c := range b {
		n += c
	}
	return n
}

// wave holds token arrivals per (row, col, side) for one propagation
// step. Row NumRows is the exit row below the board.
type wave [NumRows + 1][MaxCols + 1][2]uint

// Cascade drops a single token at slot and propagates it, and everything
// it sets in motion, until no gate releases anything. Gates are mutated in
// place. A token dropped onto the capturing side of a loaded top gate is
// passed to the releasing side and knocks the parked token loose. The
// board is left untouched if the slot is out of range.
func (b *Board) Cascade(slot int) (Bins, error) {
	var bins Bins
	if slot < 0 || slot >= NumSlots {
		return bins, ErrSlotOutOfRange
	}

	var buffers [2]wave
	cur, next := &buffers[0], &buffers[1]
	col, side := SlotGate(slot)
	cur[0][col][side] = 1

	for active := true; active; {
		active = false
		for row := 0; row < NumRows; row++ {
			for col := 0; col < RowWidth(row); col++ {
				if b.resolve(row, col, cur, next) {
					active = true
				}
			}
		}
		for bin := 0; bin < NumBins; bin++ {
			c, s := binExit(bin)
			bins[bin] += cur[NumRows][c][s]
		}
		cur, next = next, cur
		*next = wave{}
	}
	return bins, nil
}

// resolve processes one wave of arrivals at a single gate and reports
// whether the gate released anything.
func (b *Board) resolve(row, col int, cur, next *wave) bool {
	g := &b.gates[Index(row, col)]
	capture := g.CapturingSide()
	release := capture.Opposite()
	arrivals := &cur[row][col]

	if n := arrivals[capture]; n > 0 {
		if !g.resting {
			g.resting = true
			n--
		}
		arrivals[capture] = 0
		arrivals[release] += n
	}

	n := arrivals[release]
	if n == 0 {
		return false
	}
	if g.resting {
		// The parked token is knocked loose and comes back on the
		// capturing side it was held on.
		next[row][col][capture]++
		g.resting = false
	}
	if n%2 == 1 {
		g.orientation = g.orientation.Flipped()
	}
	target := col
	if release == RightSide {
		target++
	}
	next[row+1][target][capture] += n
	return true
}
