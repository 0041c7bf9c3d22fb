package game

import "time"

// PlayerID identifies one player in the chat venue.
type PlayerID string

// SessionView is the snapshot a session hands to the rendering collaborator
// after every mutating call. It carries everything a renderer needs and
// nothing it could mutate.
type SessionView struct {
	ID         string
	Owner      PlayerID
	BoardText  string
	State      LifecycleState
	StartedAt  time.Time
	Deadline   time.Time
	MessageRef string
}

// Notifier renders session updates. Implementations edit a chat message,
// print to a console, or record calls in tests; sessions never wait on them
// holding locks.
type Notifier interface {
	// GameUpdated is called after a reveal or flag while the game goes on.
	GameUpdated(view SessionView)

	// GameEnded is called exactly once per session with the terminal reason.
	GameEnded(view SessionView, reason LifecycleState)
}

// NopNotifier discards all updates.
type NopNotifier struct{}

func (NopNotifier) GameUpdated(SessionView) {}

func (NopNotifier) GameEnded(SessionView, LifecycleState) {}
