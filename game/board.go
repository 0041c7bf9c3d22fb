package game

import (
	"math/rand"

	"github.com/sweepbot/sweepbot/util/collections"
)

// Board holds one minesweeper grid and the rules that mutate it. It knows
// nothing about players, timing, or message formatting; coordinate misuse is
// absorbed silently and bounds feedback is the caller's job.
type Board struct {
	rows, cols int
	mineCount  int
	cells      [][]Cell

	state BoardState

	// revealedCount tracks player-revealed safe cells only; mines exposed
	// by the end-of-game sweep never count towards it.
	revealedCount int
}

// NewBoard allocates a rows x cols grid, places floor(rows*cols*MineDensity)
// mines at uniformly random positions and computes every hint. Callers
// validate the size range; the board takes what it is given.
func NewBoard(rows, cols int) *Board {
	board := newEmptyBoard(rows, cols)
	board.placeMines(rand.Intn)
	board.calculateHints()
	return board
}

func newEmptyBoard(rows, cols int) *Board {
	board := &Board{
		rows:      rows,
		cols:      cols,
		mineCount: int(float64(rows*cols) * MineDensity),
		state:     Ongoing,
		cells:     make([][]Cell, rows),
	}
	for row := range board.cells {
		board.cells[row] = make([]Cell, cols)
	}
	return board
}

// placeMines rejects duplicate picks and retries until exactly mineCount
// distinct cells are mined.
func (board *Board) placeMines(intn func(int) int) {
	mined := make(collections.Set[int])
	for mined.Len() < board.mineCount {
		idx := intn(board.rows * board.cols)
		if mined.Contains(idx) {
			continue
		}
		mined.Add(idx)
		board.cells[idx/board.cols][idx%board.cols].isMine = true
	}
}

func (board *Board) calculateHints() {
	for row := 0; row < board.rows; row++ {
		for col := 0; col < board.cols; col++ {
			cell := &board.cells[row][col]
			if cell.isMine {
				continue
			}
			hint := 0
			board.eachNeighbor(row, col, func(neighbor *Cell, _, _ int) {
				if neighbor.isMine {
					hint++
				}
			})
			cell.hint = hint
		}
	}
}

// eachNeighbor visits the 8-neighborhood of (row, col), clipped to the grid.
func (board *Board) eachNeighbor(row, col int, visit func(cell *Cell, row, col int)) {
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if r == row && c == col {
				continue
			}
			if neighbor := board.cellAt(r, c); neighbor != nil {
				visit(neighbor, r, c)
			}
		}
	}
}

// cellAt returns nil for out-of-range coordinates.
func (board *Board) cellAt(row, col int) *Cell {
	if row >= 0 && col >= 0 && row < board.rows && col < board.cols {
		return &board.cells[row][col]
	}
	return nil
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Cols() int {
	return board.cols
}

func (board *Board) MineCount() int {
	return board.mineCount
}

func (board *Board) RevealedCount() int {
	return board.revealedCount
}

func (board *Board) State() BoardState {
	return board.state
}

// CellAt exposes a read-only view of a cell, or nil out of range.
func (board *Board) CellAt(row, col int) *Cell {
	return board.cellAt(row, col)
}

func (board *Board) canPlay() bool {
	return board.state == Ongoing
}

// RevealCell reveals (row, col). Out-of-range coordinates and already
// revealed cells are no-ops. Revealing a mine loses the game and exposes
// every mine; revealing the last safe cell wins it, likewise exposing the
// mines so the final render shows where they were.
//
// A flag on the cell does not block the reveal.
func (board *Board) RevealCell(row, col int) {
	cell := board.cellAt(row, col)
	if cell == nil || !board.canPlay() || cell.isRevealed {
		return
	}

	if cell.isMine {
		cell.isRevealed = true
		board.lose()
		return
	}

	board.reveal(cell)
	if cell.hint == 0 {
		board.cascade(row, col)
	}

	if board.revealedCount == board.rows*board.cols-board.mineCount {
		board.win()
	}
}

// reveal marks a single safe cell revealed. Mines never come through here.
func (board *Board) reveal(cell *Cell) {
	if cell.isRevealed {
		return
	}
	cell.isRevealed = true
	board.revealedCount++
}

// FlagCell sets or clears the flag bit on (row, col). Out-of-range is a
// silent no-op, and flags never change the board state.
func (board *Board) FlagCell(row, col int, flagged bool) {
	cell := board.cellAt(row, col)
	if cell == nil || !board.canPlay() {
		return
	}
	cell.isFlagged = flagged
}

func (board *Board) IsGameWon() bool {
	return board.state == Won
}

// IsGameLost reports whether (row, col) is the revealed mine that ended the
// game. Querying a coordinate that never triggered the loss reports false.
func (board *Board) IsGameLost(row, col int) bool {
	cell := board.cellAt(row, col)
	return board.state == Lost && cell != nil && cell.isMine && cell.isRevealed
}

func (board *Board) win() {
	board.state = Won
	board.revealAllMines()
}

func (board *Board) lose() {
	board.state = Lost
	board.revealAllMines()
}

// revealAllMines runs only on terminal transitions and is never reversed.
// It bypasses revealedCount on purpose.
func (board *Board) revealAllMines() {
	for row := range board.cells {
		for col := range board.cells[row] {
			if board.cells[row][col].isMine {
				board.cells[row][col].isRevealed = true
			}
		}
	}
}
