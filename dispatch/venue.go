package dispatch

import (
	"errors"
	"sync"
)

var (
	// ErrVenueNotConfigured means no venue has been set up yet; an admin
	// has to configure one before the game can run.
	ErrVenueNotConfigured = errors.New("game is not set up, ask an admin to configure the channel")

	// ErrWrongVenue means the command came from a venue other than the
	// configured one.
	ErrWrongVenue = errors.New("this game only works in the configured channel")
)

// VenueGuard answers "is this the configured venue" before any command is
// handled. The configured id comes from the one-line channel file read at
// service start; Set swaps it when the admin channel command rewrites the
// file.
type VenueGuard struct {
	mu      sync.RWMutex
	venueID string
}

func NewVenueGuard(venueID string) *VenueGuard {
	return &VenueGuard{venueID: venueID}
}

// Set replaces the configured venue; empty unconfigures it.
func (guard *VenueGuard) Set(venueID string) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.venueID = venueID
}

// Allow returns nil when the command's venue matches the configured one.
func (guard *VenueGuard) Allow(venueID string) error {
	guard.mu.RLock()
	defer guard.mu.RUnlock()

	if guard.venueID == "" {
		return ErrVenueNotConfigured
	}
	if venueID != guard.venueID {
		return ErrWrongVenue
	}
	return nil
}
