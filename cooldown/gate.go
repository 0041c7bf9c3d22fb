// Package cooldown rate-limits repeat invocations of the same command by the
// same player.
package cooldown

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// DefaultWindow is the minimum interval between two invocations of one
// command by one player.
const DefaultWindow = 5 * time.Second

// Error reports a rejected command along with how long the caller has to
// wait before retrying.
type Error struct {
	Remaining time.Duration
}

func (e *Error) Error() string {
	seconds := int(math.Ceil(e.Remaining.Seconds()))
	return fmt.Sprintf("cooldown in progress, please wait %d seconds before using the command again", seconds)
}

// Gate tracks last-invocation timestamps keyed by player, then by command.
// The outer map only grows (players x commands stays small), and each player
// gets their own lock so two players never contend.
type Gate struct {
	window time.Duration

	mu      sync.RWMutex
	players map[string]*playerTimes
}

type playerTimes struct {
	mu   sync.Mutex
	last map[string]time.Time
}

// NewGate builds a gate with the given window; zero or negative means
// DefaultWindow.
func NewGate(window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{
		window:  window,
		players: make(map[string]*playerTimes),
	}
}

func (gate *Gate) Window() time.Duration {
	return gate.window
}

// Check returns nil when the command may run, or an *Error carrying the
// remaining wait. A player or command never seen before is not on cooldown.
func (gate *Gate) Check(player, command string, now time.Time) error {
	gate.mu.RLock()
	times := gate.players[player]
	gate.mu.RUnlock()
	if times == nil {
		return nil
	}

	times.mu.Lock()
	last, invoked := times.last[command]
	times.mu.Unlock()
	if !invoked {
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= gate.window {
		return nil
	}
	return &Error{Remaining: gate.window - elapsed}
}

// MarkInvoked records an invocation. Callers invoke it only after a command
// is accepted and handled, so rejected commands do not consume the window.
func (gate *Gate) MarkInvoked(player, command string, now time.Time) {
	gate.mu.Lock()
	times := gate.players[player]
	if times == nil {
		times = &playerTimes{last: make(map[string]time.Time)}
		gate.players[player] = times
	}
	gate.mu.Unlock()

	times.mu.Lock()
	times.last[command] = now
	times.mu.Unlock()
}
