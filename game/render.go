package game

import "strings"

// RenderText produces the fixed-width textual grid handed to the rendering
// collaborator: column indices across the top, row indices down the left,
// and one glyph per cell ('*' revealed mine, '1'..'8' hint, '.' revealed
// blank, 'F' flag, '#' hidden).
func (board *Board) RenderText() string {
	var sb strings.Builder

	sb.WriteString("  ")
	for col := 0; col < board.cols; col++ {
		sb.WriteByte('0' + byte(col))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for row := 0; row < board.rows; row++ {
		sb.WriteByte('0' + byte(row))
		sb.WriteByte(' ')
		for col := 0; col < board.cols; col++ {
			sb.WriteByte(board.cells[row][col].glyph())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
