// Queue-based take on the flood fill from github.com/hinshun/floodfill.

package game

import (
	"github.com/gammazero/deque"

	"github.com/sweepbot/sweepbot/util/collections"
)

// cascade auto-reveals outward from a zero-hint cell at (row, col): every
// safe neighbor is revealed, and neighbors that are themselves zero-hint
// propagate further. Mines are never enqueued, so the fill stops at the
// numbered border around them.
func (board *Board) cascade(row, col int) {
	var frontier deque.Deque[int]
	visited := make(collections.Set[int])

	start := row*board.cols + col
	visited.Add(start)
	frontier.PushBack(start)

	for frontier.Len() > 0 {
		idx := frontier.PopFront()
		r, c := idx/board.cols, idx%board.cols

		cell := board.cellAt(r, c)
		board.reveal(cell)

		if cell.hint != 0 {
			continue
		}

		board.eachNeighbor(r, c, func(neighbor *Cell, nr, nc int) {
			nidx := nr*board.cols + nc
			if neighbor.isMine || neighbor.isRevealed || visited.Contains(nidx) {
				return
			}
			visited.Add(nidx)
			frontier.PushBack(nidx)
		})
	}
}
