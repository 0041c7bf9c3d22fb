package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// GameSession pairs one player's board with its lifecycle and timing
// metadata. All mutation (the owner's reveal/flag calls and the registry's
// expiry scan) is serialized by the session mutex, so a user action and an
// expiry check landing in the same instant cannot both terminate the game.
type GameSession struct {
	id        string
	owner     PlayerID
	startedAt time.Time
	deadline  time.Time

	mu         sync.Mutex
	board      *Board
	state      LifecycleState
	messageRef string

	notifier Notifier
	onEnd    func(session *GameSession, reason LifecycleState)
}

func newSession(owner PlayerID, board *Board, startedAt time.Time, timeLimit time.Duration, notifier Notifier, onEnd func(*GameSession, LifecycleState)) *GameSession {
	return &GameSession{
		id:        uuid.NewString(),
		owner:     owner,
		startedAt: startedAt,
		deadline:  startedAt.Add(timeLimit),
		board:     board,
		state:     StateOngoing,
		notifier:  notifier,
		onEnd:     onEnd,
	}
}

func (session *GameSession) ID() string {
	return session.id
}

func (session *GameSession) Owner() PlayerID {
	return session.owner
}

func (session *GameSession) StartedAt() time.Time {
	return session.startedAt
}

func (session *GameSession) Deadline() time.Time {
	return session.deadline
}

// SetMessageRef records the opaque handle of the last rendered message so
// the renderer can edit it in place.
func (session *GameSession) SetMessageRef(ref string) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.messageRef = ref
}

func (session *GameSession) State() LifecycleState {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state
}

// View snapshots the session for rendering.
func (session *GameSession) View() SessionView {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view()
}

// view requires the session mutex.
func (session *GameSession) view() SessionView {
	return SessionView{
		ID:         session.id,
		Owner:      session.owner,
		BoardText:  session.board.RenderText(),
		State:      session.state,
		StartedAt:  session.startedAt,
		Deadline:   session.deadline,
		MessageRef: session.messageRef,
	}
}

// BoardSize reports the grid dimensions, for coordinate validation above
// the board's permissive boundary.
func (session *GameSession) BoardSize() (rows, cols int) {
	return session.board.Rows(), session.board.Cols()
}

// ApplyReveal forwards a reveal to the board and maps the board outcome to
// a lifecycle transition. Calls against an already terminated session are
// absorbed, returning the final view unchanged.
func (session *GameSession) ApplyReveal(row, col int) SessionView {
	session.mu.Lock()

	if session.state.Terminal() {
		defer session.mu.Unlock()
		return session.view()
	}

	session.board.RevealCell(row, col)

	var reason LifecycleState
	switch session.board.State() {
	case Won:
		reason = StateWon
	case Lost:
		reason = StateLost
	default:
		view := session.view()
		session.mu.Unlock()
		session.notifier.GameUpdated(view)
		return view
	}

	view := session.finish(reason)
	session.mu.Unlock()

	session.cleanup(view, reason)
	return view
}

// ApplyFlag forwards a flag toggle to the board. Flags never end a game, so
// there is no lifecycle transition.
func (session *GameSession) ApplyFlag(row, col int, flagged bool) SessionView {
	session.mu.Lock()

	if session.state.Terminal() {
		defer session.mu.Unlock()
		return session.view()
	}

	session.board.FlagCell(row, col, flagged)
	view := session.view()
	session.mu.Unlock()

	session.notifier.GameUpdated(view)
	return view
}

// CheckExpiry transitions the session to TimedOut once its deadline has
// elapsed. It reports whether this call performed the transition; a session
// already ended by any other path is a no-op.
func (session *GameSession) CheckExpiry(now time.Time) bool {
	session.mu.Lock()

	if session.state.Terminal() || now.Before(session.deadline) {
		session.mu.Unlock()
		return false
	}

	view := session.finish(StateTimedOut)
	session.mu.Unlock()

	session.cleanup(view, StateTimedOut)
	return true
}

// Stop ends the session on the owner's request.
func (session *GameSession) Stop(caller PlayerID) error {
	if caller != session.owner {
		return ErrNotSessionOwner
	}

	session.mu.Lock()
	if session.state.Terminal() {
		session.mu.Unlock()
		return nil
	}

	view := session.finish(StateStopped)
	session.mu.Unlock()

	session.cleanup(view, StateStopped)
	return nil
}

// finish performs the single permitted lifecycle transition and returns the
// terminal view. It requires the session mutex and a non-terminal state.
func (session *GameSession) finish(reason LifecycleState) SessionView {
	session.state = reason
	return session.view()
}

// cleanup runs the end-of-session work outside the session mutex. The
// terminal transition in finish already happened exactly once, so the
// registry removal it triggers only needs to be idempotent, not guarded.
func (session *GameSession) cleanup(view SessionView, reason LifecycleState) {
	if session.onEnd != nil {
		session.onEnd(session, reason)
	}
	session.notifier.GameEnded(view, reason)
}
