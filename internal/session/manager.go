// internal/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/store"
)

// Manager owns the lifecycle of shopper sessions: each session is one store,
// restored from the repository for a request and saved back after it.
type Manager struct {
	repo     Repository
	source   catalog.Source
	defaults config.StoreConfig
	ttl      time.Duration
	env      store.Env
	logger   logrus.FieldLogger
	newID    func() string
	locks    *keyedMutex

	seedMu   sync.Mutex
	seed     *catalog.Seed
	seededAt time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithEnv sets the id generator and clock handed to every store
func WithEnv(env store.Env) Option {
	return func(m *Manager) {
		m.env = env
		if env.NewID != nil {
			m.newID = env.NewID
		}
	}
}

// WithLogger sets the logger for the manager and its stores
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a session manager
func NewManager(repo Repository, source catalog.Source, storeCfg config.StoreConfig, sessionCfg config.SessionConfig, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetLevel(logrus.PanicLevel)

	m := &Manager{
		repo:     repo,
		source:   source,
		defaults: storeCfg,
		ttl:      sessionCfg.TTL,
		env:      store.DefaultEnv(),
		logger:   discard,
		newID:    uuid.NewString,
		locks:    newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) now() time.Time {
	if m.env.Now != nil {
		return m.env.Now()
	}
	return time.Now().UTC()
}

// Warm loads the catalog so the first shopper does not wait for it
func (m *Manager) Warm(ctx context.Context) error {
	_, err := m.catalogSeed(ctx)
	return err
}

// catalogSeed returns the shared catalog, reloading it once it has gone stale
func (m *Manager) catalogSeed(ctx context.Context) (*catalog.Seed, error) {
	m.seedMu.Lock()
	defer m.seedMu.Unlock()

	if m.seed != nil && m.now().Sub(m.seededAt) < catalog.DefaultCacheExpiry {
		return m.seed, nil
	}

	seed, err := m.source.LoadCatalog(ctx)
	if err != nil {
		if m.seed != nil {
			m.logger.WithError(err).Warn("Catalog reload failed, serving cached catalog")
			return m.seed, nil
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	m.seed = seed
	m.seededAt = m.now()
	m.logger.WithField("products", len(seed.Products)).Info("Catalog loaded")
	return seed, nil
}

// NewState builds the state tree a fresh session starts from
func (m *Manager) NewState(ctx context.Context) (store.State, error) {
	seed, err := m.catalogSeed(ctx)
	if err != nil {
		return store.State{}, err
	}

	state := store.NewState(m.now())
	for _, intent := range []store.Intent{
		store.LoadCatalog{Seed: *seed},
		store.SetTaxRate{Rate: m.defaults.TaxRate},
		store.SetShippingCost{Amount: m.defaults.ShippingCost},
	} {
		if state, err = store.Reduce(state, intent, m.env); err != nil {
			return store.State{}, fmt.Errorf("failed to build initial state: %w", err)
		}
	}
	return state, nil
}

// open restores the session or starts a new one when id is empty or unknown
func (m *Manager) open(ctx context.Context, id string) (*store.Store, bool, error) {
	opts := []store.Option{store.WithEnv(m.env), store.WithLogger(m.logger.WithField("session", id))}

	if id != "" {
		data, err := m.repo.Load(ctx, id)
		switch {
		case err == nil:
			st := store.New(opts...)
			if err := st.Restore(data); err != nil {
				m.logger.WithError(err).WithField("session", id).Warn("Discarding unreadable session")
				break
			}
			if !st.Snapshot().Catalog.IsCacheValid(m.now()) {
				seed, err := m.catalogSeed(ctx)
				if err != nil {
					return nil, false, err
				}
				if _, err := st.Dispatch(store.LoadCatalog{Seed: *seed}); err != nil {
					return nil, false, err
				}
			}
			return st, false, nil
		case errors.Is(err, ErrSessionNotFound):
		default:
			return nil, false, err
		}
	}

	state, err := m.NewState(ctx)
	if err != nil {
		return nil, false, err
	}
	return store.New(append(opts, store.WithState(state))...), true, nil
}

// View returns the session state, starting a session when needed.
// The returned id is the one the caller should keep using.
func (m *Manager) View(ctx context.Context, id string) (store.State, string, error) {
	return m.Dispatch(ctx, id)
}

// Dispatch applies intents to the session in order and saves the result.
// If any intent fails nothing is saved and the error is returned.
func (m *Manager) Dispatch(ctx context.Context, id string, intents ...store.Intent) (store.State, string, error) {
	var state store.State
	newID, err := m.Update(ctx, id, func(st *store.Store) error {
		state = st.Snapshot()
		for _, intent := range intents {
			next, err := st.Dispatch(intent)
			if err != nil {
				return err
			}
			state = next
		}
		return nil
	})
	return state, newID, err
}

// Update runs fn against the session's store while holding the session lock
// and saves the store when fn succeeds.
func (m *Manager) Update(ctx context.Context, id string, fn func(*store.Store) error) (string, error) {
	provided := id != ""
	if !provided {
		id = m.newID()
	}
	unlock := m.locks.Lock(id)
	defer unlock()

	st, created, err := m.open(ctx, id)
	if err != nil {
		return id, err
	}
	// Unknown ids from clients are never adopted
	if created && provided {
		id = m.newID()
	}

	before := st.Version()
	if err := fn(st); err != nil {
		return id, err
	}
	if !created && st.Version() == before {
		return id, nil
	}

	data, err := st.MarshalJSON()
	if err != nil {
		return id, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.repo.Save(ctx, id, data, m.ttl); err != nil {
		return id, err
	}
	if created {
		m.logger.WithField("session", id).Debug("Session started")
	}
	return id, nil
}

// Delete forgets a session
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()
	return m.repo.Delete(ctx, id)
}
