package game

type Cell struct {
	isMine, isFlagged, isRevealed bool

	// hint is the number of mines in the 8-neighborhood. Never read for
	// mine cells.
	hint int
}

func (cell *Cell) IsMine() bool {
	return cell.isMine
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) Hint() int {
	return cell.hint
}

// glyph renders the cell for the textual board grid.
func (cell *Cell) glyph() byte {
	switch {
	case cell.isRevealed && cell.isMine:
		return '*'
	case cell.isRevealed && cell.hint > 0:
		return '0' + byte(cell.hint)
	case cell.isRevealed:
		return '.'
	case cell.isFlagged:
		return 'F'
	default:
		return '#'
	}
}
