package session

import (
	"sync"

	"github.com/transport-ledger/backend/internal/store"
	"github.com/rs/zerolog"
)

var (
	currentMu sync.RWMutex
	current   *Session
)

// Reset replaces the process-wide session with a fresh one over the
// given store. Called at startup and by tests after reconnecting the
// database.
func Reset(st *store.Store, log zerolog.Logger) *Session {
	s := New(st, log)

	currentMu.Lock()
	current = s
	currentMu.Unlock()

	return s
}

// Get returns the process-wide session.
func Get() *Session {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}
