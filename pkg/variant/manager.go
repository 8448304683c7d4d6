package variant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-formguard/pkg/scope"
	"github.com/goliatone/go-formguard/pkg/snapshot"
)

// ManagerOption customises a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager ties a filter scope to the variants stored under one
// personalisation key. It tracks the current variant and whether the filter
// values changed since it was saved or applied.
type Manager struct {
	mu       sync.Mutex
	key      string
	store    Store
	scope    *scope.Scope
	current  string
	modified bool
	logger   *slog.Logger
}

// NewManager constructs a manager for key over sc.
func NewManager(key string, store Store, sc *scope.Scope, opts ...ManagerOption) *Manager {
	m := &Manager{
		key:    strings.TrimSpace(key),
		store:  store,
		scope:  sc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Key returns the personalisation key.
func (m *Manager) Key() string {
	return m.key
}

// Current returns the id of the last saved or applied variant.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Modified reports whether filter values changed since the current variant
// was saved or applied.
func (m *Manager) Modified() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modified
}

// MarkModified flags the current variant as modified. Call it from filter
// change handlers.
func (m *Manager) MarkModified() {
	m.mu.Lock()
	m.modified = true
	m.mu.Unlock()
}

// Save captures the scope under name. An existing variant with the same name
// is overwritten.
func (m *Manager) Save(ctx context.Context, name string, asDefault bool) (Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved, err := m.store.Save(ctx, Variant{
		Key:      m.key,
		Name:     name,
		Snapshot: snapshot.Capture(m.scope),
		Default:  asDefault,
	})
	if err != nil {
		return Variant{}, fmt.Errorf("variant: save %q: %w", name, err)
	}
	m.current = saved.ID
	m.modified = false
	m.logger.Info("variant saved",
		"key", m.key,
		"id", saved.ID,
		"name", saved.Name,
		"criteria", len(saved.Snapshot),
		"default", saved.Default,
	)
	return saved, nil
}

// Apply restores the variant id into the scope.
func (m *Manager) Apply(ctx context.Context, id string) (Variant, snapshot.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, err := m.store.Get(ctx, m.key, id)
	if err != nil {
		return Variant{}, snapshot.Report{}, err
	}
	return v, m.applyLocked(v), nil
}

// ApplyDefault restores the default variant. It returns ErrNotFound when the
// key has no default.
func (m *Manager) ApplyDefault(ctx context.Context) (Variant, snapshot.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, err := m.defaultLocked(ctx)
	if err != nil {
		return Variant{}, snapshot.Report{}, err
	}
	return v, m.applyLocked(v), nil
}

// Default returns the default variant of the key.
func (m *Manager) Default(ctx context.Context) (Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaultLocked(ctx)
}

// List returns the variants of the key ordered by name.
func (m *Manager) List(ctx context.Context) ([]Variant, error) {
	return m.store.List(ctx, m.key)
}

// Delete removes a variant. Deleting the current variant clears Current.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, m.key, id); err != nil {
		return err
	}
	if m.current == strings.TrimSpace(id) {
		m.current = ""
	}
	m.logger.Info("variant deleted", "key", m.key, "id", id)
	return nil
}

// SetDefault marks id as the default variant; an empty id clears it.
func (m *Manager) SetDefault(ctx context.Context, id string) error {
	return m.store.SetDefault(ctx, m.key, id)
}

func (m *Manager) applyLocked(v Variant) snapshot.Report {
	report := snapshot.Restore(v.Snapshot, m.scope)
	m.current = v.ID
	m.modified = false
	if !report.Complete() {
		m.logger.Warn("variant applied partially",
			"key", m.key,
			"id", v.ID,
			"skipped", len(report.Skipped),
		)
	}
	return report
}

func (m *Manager) defaultLocked(ctx context.Context) (Variant, error) {
	variants, err := m.store.List(ctx, m.key)
	if err != nil {
		return Variant{}, err
	}
	for _, v := range variants {
		if v.Default {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: no default for %s", ErrNotFound, m.key)
}

// IsNotFound reports whether err means a variant does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
