// internal/store/store.go
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Store owns one state tree and applies intents to it one at a time
type Store struct {
	mu      sync.Mutex
	state   State
	version uint64
	env     Env
	logger  logrus.FieldLogger
	seeded  bool

	subMu   sync.RWMutex
	subs    map[uint64]func(State)
	nextSub uint64
}

// Option configures a Store
type Option func(*Store)

// WithEnv sets the id generator and clock used by transitions
func WithEnv(env Env) Option {
	return func(s *Store) {
		s.env = env.withDefaults()
	}
}

// WithLogger sets the logger dispatches are reported to
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithState sets the initial state tree
func WithState(state State) Option {
	return func(s *Store) {
		s.state = state
		s.seeded = true
	}
}

// New creates a store holding the initial state tree
func New(opts ...Option) *Store {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Store{
		env:    DefaultEnv(),
		logger: discard,
		subs:   make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.seeded {
		s.state = NewState(s.env.Now())
	}
	return s
}

// Dispatch applies intent and returns the resulting state. A failed intent
// leaves the state and version untouched and returns the current state.
func (s *Store) Dispatch(intent Intent) (State, error) {
	start := time.Now()
	name := IntentName(intent)

	s.mu.Lock()
	next, err := Reduce(s.state, intent, s.env)
	if err != nil {
		current, version := s.state, s.version
		s.mu.Unlock()

		s.logger.WithFields(logrus.Fields{
			"intent":   name,
			"version":  version,
			"duration": time.Since(start),
			"error":    err.Error(),
		}).Debug("Intent rejected")
		return current, err
	}
	s.state = next
	s.version++
	version := s.version
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"intent":   name,
		"version":  version,
		"duration": time.Since(start),
	}).Debug("Intent applied")

	s.notify(next)
	return next, nil
}

// Snapshot returns the current state tree
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Version counts the intents applied since the store was created or restored
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers fn to receive every new state. Listeners run after the
// store lock is released and may dispatch. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(state State) {
	s.subMu.RLock()
	listeners := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// snapshot is the serialized form of a store
type snapshot struct {
	Version uint64 `json:"version"`
	State   State  `json:"state"`
}

// MarshalJSON serializes the state tree and its version
func (s *Store) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	snap := snapshot{Version: s.version, State: s.state}
	s.mu.Unlock()
	return json.Marshal(snap)
}

// Restore replaces the state tree with a serialized snapshot. Cart totals
// are recomputed from the restored lines.
func (s *Store) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode store snapshot: %w", err)
	}

	restored := snap.State
	c, err := restored.Cart.Load(restored.Cart.Items)
	if err != nil {
		return fmt.Errorf("invalid cart in store snapshot: %w", err)
	}
	restored.Cart = c
	restored.User = restored.User.SetAddresses(restored.User.Addresses)

	s.mu.Lock()
	s.state = restored
	s.version = snap.Version
	s.mu.Unlock()

	s.logger.WithField("version", snap.Version).Debug("Store restored")
	s.notify(restored)
	return nil
}
