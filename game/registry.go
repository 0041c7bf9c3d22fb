package game

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

// BoardConfig carries the caller-validated board dimensions for a new
// session.
type BoardConfig struct {
	Rows, Cols int
}

// RegistryConfig tunes a Registry. Zero values fall back to the defaults in
// constants.go, a real-time clock, a no-op notifier, and the standard
// logger.
type RegistryConfig struct {
	TimeLimit    time.Duration
	ScanInterval time.Duration
	Clock        clock.Clock
	Notifier     Notifier
	Log          logrus.FieldLogger
}

// Registry maps players to their single active session. The map is guarded
// by a read-write mutex; per-session mutation is serialized by each session
// itself, so scans never hold the registry lock while touching a board.
type Registry struct {
	mu       sync.RWMutex
	sessions map[PlayerID]*GameSession

	timeLimit    time.Duration
	scanInterval time.Duration
	clock        clock.Clock
	notifier     Notifier
	log          logrus.FieldLogger
}

func NewRegistry(config RegistryConfig) *Registry {
	if config.TimeLimit <= 0 {
		config.TimeLimit = DefaultTimeLimit
	}
	if config.ScanInterval <= 0 {
		config.ScanInterval = DefaultScanInterval
	}
	if config.Clock == nil {
		config.Clock = clock.New()
	}
	if config.Notifier == nil {
		config.Notifier = NopNotifier{}
	}
	if config.Log == nil {
		config.Log = logrus.StandardLogger()
	}

	return &Registry{
		sessions:     make(map[PlayerID]*GameSession),
		timeLimit:    config.TimeLimit,
		scanInterval: config.ScanInterval,
		clock:        config.Clock,
		notifier:     config.Notifier,
		log:          config.Log,
	}
}

// CreateSession starts a new game for owner, or fails with ErrAlreadyInGame
// if the player has an active one.
func (registry *Registry) CreateSession(owner PlayerID, config BoardConfig) (*GameSession, error) {
	// Mine placement and hint calculation run before the lock; the registry
	// map is not held up by board setup. The losing board in a duplicate
	// start is simply discarded.
	board := NewBoard(config.Rows, config.Cols)
	session := newSession(owner, board, registry.clock.Now(), registry.timeLimit, registry.notifier, registry.endSession)

	registry.mu.Lock()
	if _, inGame := registry.sessions[owner]; inGame {
		registry.mu.Unlock()
		return nil, ErrAlreadyInGame
	}
	registry.sessions[owner] = session
	registry.mu.Unlock()

	registry.log.WithFields(logrus.Fields{
		"player":  owner,
		"session": session.ID(),
		"rows":    config.Rows,
		"cols":    config.Cols,
		"mines":   board.MineCount(),
	}).Info("session created")

	return session, nil
}

// Get returns the owner's active session, or ErrNotInGame.
func (registry *Registry) Get(owner PlayerID) (*GameSession, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	session, inGame := registry.sessions[owner]
	if !inGame {
		return nil, ErrNotInGame
	}
	return session, nil
}

// Remove drops the owner's session. Removing an absent owner is a no-op, so
// the two termination paths (user action, expiry scan) can both land here.
func (registry *Registry) Remove(owner PlayerID) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.sessions, owner)
}

// Len reports the number of active sessions.
func (registry *Registry) Len() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.sessions)
}

// ScanExpired drives every session's expiry check from a single sweep; one
// periodic caller bounds the live timers to one regardless of player count.
func (registry *Registry) ScanExpired(now time.Time) {
	registry.mu.RLock()
	sessions := make([]*GameSession, 0, len(registry.sessions))
	for _, session := range registry.sessions {
		sessions = append(sessions, session)
	}
	registry.mu.RUnlock()

	for _, session := range sessions {
		session.CheckExpiry(now)
	}
}

// Run scans for expired sessions on a fixed tick until ctx is canceled.
func (registry *Registry) Run(ctx context.Context) {
	ticker := registry.clock.Ticker(registry.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			registry.ScanExpired(now)
		}
	}
}

// endSession is installed as every session's onEnd hook.
func (registry *Registry) endSession(session *GameSession, reason LifecycleState) {
	registry.Remove(session.Owner())

	registry.log.WithFields(logrus.Fields{
		"player":  session.Owner(),
		"session": session.ID(),
		"reason":  reason.String(),
	}).Info("session ended")
}
