package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *clock.Mock, *recordingNotifier) {
	t.Helper()

	mock := clock.NewMock()
	notifier := &recordingNotifier{}
	registry := NewRegistry(RegistryConfig{
		Clock:    mock,
		Notifier: notifier,
	})
	return registry, mock, notifier
}

func TestCreateSessionSingleActiveGame(t *testing.T) {
	registry, _, _ := newTestRegistry(t)

	session, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, PlayerID("alice"), session.Owner())

	_, err = registry.CreateSession("alice", BoardConfig{Rows: 6, Cols: 6})
	assert.ErrorIs(t, err, ErrAlreadyInGame)

	// Other players are unaffected.
	_, err = registry.CreateSession("bob", BoardConfig{Rows: 5, Cols: 5})
	assert.NoError(t, err)
	assert.Equal(t, 2, registry.Len())
}

func TestCreateSessionConcurrentSameOwner(t *testing.T) {
	registry, _, _ := newTestRegistry(t)

	const attempts = 16
	errs := make(chan error, attempts)

	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		go func() {
			start.Wait()
			_, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
			errs <- err
		}()
	}
	start.Done()

	var created, rejected int
	for i := 0; i < attempts; i++ {
		switch err := <-errs; {
		case err == nil:
			created++
		case errors.Is(err, ErrAlreadyInGame):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, rejected)
	assert.Equal(t, 1, registry.Len())
}

func TestCreateSessionDuplicateLeavesExistingUntouched(t *testing.T) {
	registry, _, _ := newTestRegistry(t)

	created, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)

	_, err = registry.CreateSession("alice", BoardConfig{Rows: 7, Cols: 7})
	require.ErrorIs(t, err, ErrAlreadyInGame)

	// The rejected start built and discarded its own board; the active
	// session still holds the original one.
	got, err := registry.Get("alice")
	require.NoError(t, err)
	assert.Same(t, created, got)
	rows, cols := got.BoardSize()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, StateOngoing, got.State())
}

func TestCreateAfterStop(t *testing.T) {
	registry, _, _ := newTestRegistry(t)

	session, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)

	_, err = registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.ErrorIs(t, err, ErrAlreadyInGame)

	require.NoError(t, session.Stop("alice"))

	_, err = registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	assert.NoError(t, err)
}

func TestGet(t *testing.T) {
	registry, _, _ := newTestRegistry(t)

	_, err := registry.Get("alice")
	assert.ErrorIs(t, err, ErrNotInGame)

	created, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)

	got, err := registry.Get("alice")
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestRemoveIdempotent(t *testing.T) {
	registry, _, _ := newTestRegistry(t)

	registry.Remove("ghost")

	_, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)

	registry.Remove("alice")
	registry.Remove("alice")
	assert.Zero(t, registry.Len())
}

func TestScanExpired(t *testing.T) {
	registry, mock, notifier := newTestRegistry(t)

	session, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)

	registry.ScanExpired(mock.Now().Add(299 * time.Second))
	assert.Equal(t, StateOngoing, session.State())
	assert.Equal(t, 1, registry.Len())

	registry.ScanExpired(mock.Now().Add(301 * time.Second))
	assert.Equal(t, StateTimedOut, session.State())
	assert.Zero(t, registry.Len())
	assert.Equal(t, []LifecycleState{StateTimedOut}, notifier.endReasons())

	// The next sweep finds nothing to do.
	registry.ScanExpired(mock.Now().Add(302 * time.Second))
	assert.Equal(t, []LifecycleState{StateTimedOut}, notifier.endReasons())
}

func TestScanExpiredSkipsFinishedSessions(t *testing.T) {
	registry, mock, notifier := newTestRegistry(t)

	session, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)
	require.NoError(t, session.Stop("alice"))

	registry.ScanExpired(mock.Now().Add(time.Hour))

	assert.Equal(t, StateStopped, session.State())
	assert.Equal(t, []LifecycleState{StateStopped}, notifier.endReasons())
}

func TestRunExpiresSessionsOnTick(t *testing.T) {
	registry, mock, _ := newTestRegistry(t)

	_, err := registry.CreateSession("alice", BoardConfig{Rows: 5, Cols: 5})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.Run(ctx)

	// Give Run a chance to install its ticker before advancing the clock.
	time.Sleep(50 * time.Millisecond)
	mock.Add(301 * time.Second)

	assert.Eventually(t, func() bool {
		return registry.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRegistryDefaults(t *testing.T) {
	registry := NewRegistry(RegistryConfig{})

	assert.Equal(t, DefaultTimeLimit, registry.timeLimit)
	assert.Equal(t, DefaultScanInterval, registry.scanInterval)
	assert.NotNil(t, registry.clock)
	assert.NotNil(t, registry.notifier)
	assert.NotNil(t, registry.log)
}
