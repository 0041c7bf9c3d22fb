package game

import "time"

type BoardState int

const (
	Ongoing BoardState = iota
	Won
	Lost
)

func (state BoardState) String() string {
	switch state {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

// LifecycleState tracks a session's life beyond the board itself: a session
// can also end by running out of time or by its owner stopping it.
type LifecycleState int

const (
	StateOngoing LifecycleState = iota
	StateWon
	StateLost
	StateTimedOut
	StateStopped
)

func (state LifecycleState) String() string {
	switch state {
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	case StateTimedOut:
		return "timed out"
	case StateStopped:
		return "stopped"
	default:
		return "ongoing"
	}
}

// Terminal reports whether no further transition is possible.
func (state LifecycleState) Terminal() bool {
	return state != StateOngoing
}

const (
	// MineDensity is the fraction of cells that hold a mine, truncated to a
	// whole mine count at board construction.
	MineDensity = 0.15

	MinBoardSize = 5
	MaxBoardSize = 10

	DefaultTimeLimit    = 300 * time.Second
	DefaultScanInterval = time.Second
)
