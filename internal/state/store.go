// Package state holds the latest poll result shared between the refresh
// job and the terminal UI.
package state

import (
	"sync"
	"time"

	"glucoterm/internal/libreview"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Payload             *libreview.GraphPayload
	HasPayload          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Latest returns the most recent reading of the held payload, if any.
func (s Snapshot) Latest() (libreview.Reading, bool) {
	if !s.HasPayload {
		return libreview.Reading{}, false
	}
	return s.Payload.Latest()
}

// IsOffline reports whether the API has been unreachable for multiple
// consecutive polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored payload. When err is non-nil the previous
// payload is kept so the display can keep showing the last-known reading,
// and the error is recorded for visibility.
func (s *Store) Update(payload *libreview.GraphPayload, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Payload = payload
	s.snapshot.HasPayload = payload != nil
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
