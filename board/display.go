package board

import "strings"

// ToDisplayText draws the board, four text lines per row, with the
// 1-based slot numbers above the top row. A resting token is drawn as a
// 0 on the side it is held.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("        1 2 3 4 5 6 7 8\n")
	for row := 0; row < NumRows; row++ {
		indent := strings.Repeat(" ", 2*(NumRows-1-row))

		sb.WriteString(indent)
		for col := 0; col < RowWidth(row); col++ {
			g := b.Gate(row, col)
			left, right := " ", " "
			if g.resting && g.orientation == Left {
				left = "0"
			}
			if g.resting && g.orientation == Right {
				right = "0"
			}
			sb.WriteString(left + " " + right + "|")
		}
		sb.WriteString("\n")

		sb.WriteString(indent)
		for col := 0; col < RowWidth(row); col++ {
			if b.Gate(row, col).orientation == Left {
				sb.WriteString("\\  |")
			} else {
				sb.WriteString("  /|")
			}
		}
		sb.WriteString("\n")

		sb.WriteString(indent)
		for col := 0; col < RowWidth(row); col++ {
			sb.WriteString(" + |")
		}
		sb.WriteString("\n")

		sb.WriteString(indent)
		for col := 0; col < RowWidth(row); col++ {
			if b.Gate(row, col).orientation == Left {
				sb.WriteString(" |\\ ")
			} else {
				sb.WriteString("/|  ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
