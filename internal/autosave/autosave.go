// Package autosave debounces save requests: rapid changes collapse
// into a single save that fires after a quiet period.
package autosave

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before an armed save fires.
const DefaultDelay = 5 * time.Second

// State describes what the scheduler is currently doing.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSaving  State = "saving"
)

// SaveFunc persists the current state. It is never called concurrently
// with itself.
type SaveFunc func() error

// Scheduler owns the debounce timer. Timer-triggered save failures are
// reported through the error callback and swallowed, a manual trigger
// returns its failure to the caller instead.
type Scheduler struct {
	mu      sync.Mutex
	saveMu  sync.Mutex
	save    SaveFunc
	onError func(error)
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	pending bool
	saving  int
	enabled bool
}

// New returns an enabled scheduler. onError may be nil.
func New(delay time.Duration, save SaveFunc, onError func(error)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Scheduler{
		save:    save,
		onError: onError,
		delay:   delay,
		enabled: true,
	}
}

// NotifyChange arms the save timer, replacing any timer already armed.
// The save fires once the full delay passes without further changes.
// A change arriving while a save is in flight arms a timer whose save
// runs after the in-flight one completes.
func (s *Scheduler) NotifyChange() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	s.stopTimerLocked()
	s.gen++
	s.pending = true

	gen := s.gen
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil
	s.saving++
	s.mu.Unlock()

	s.saveMu.Lock()
	err := s.save()
	s.saveMu.Unlock()

	s.mu.Lock()
	s.saving--
	s.mu.Unlock()

	if err != nil && s.onError != nil {
		s.onError(err)
	}
}

// TriggerNow cancels any armed timer and runs the save synchronously,
// serialized against an in-flight timer save. The error is returned to
// the caller.
func (s *Scheduler) TriggerNow() error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.gen++
	s.pending = false
	s.saving++
	s.mu.Unlock()

	s.saveMu.Lock()
	err := s.save()
	s.saveMu.Unlock()

	s.mu.Lock()
	s.saving--
	s.mu.Unlock()

	return err
}

// Cancel discards any armed timer without saving.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.gen++
	s.pending = false
}

// SetEnabled turns the scheduler on or off. Disabling cancels any
// armed timer so nothing saves while there is nothing to save.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
	if !enabled {
		s.stopTimerLocked()
		s.gen++
		s.pending = false
	}
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.saving > 0:
		return StateSaving
	case s.pending:
		return StatePending
	default:
		return StateIdle
	}
}

func (s *Scheduler) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
