package variant

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-formguard/pkg/snapshot"
)

// MemoryStore keeps variants in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	variants map[string][]Variant
	now      func() time.Time
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		variants: make(map[string][]Variant),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) Save(_ context.Context, v Variant) (Variant, error) {
	v, err := normalise(v)
	if err != nil {
		return Variant{}, err
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.variants[v.Key]
	for idx, existing := range list {
		if existing.Name != v.Name && existing.ID != v.ID {
			continue
		}
		existing.Name = v.Name
		existing.Snapshot = cloneSnapshot(v.Snapshot)
		existing.UpdatedAt = now
		if v.Default {
			m.clearDefaultLocked(v.Key)
			existing.Default = true
		}
		list[idx] = existing
		return cloneVariant(existing), nil
	}

	if v.ID == "" {
		v.ID = NewID()
	}
	v.Snapshot = cloneSnapshot(v.Snapshot)
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Default {
		m.clearDefaultLocked(v.Key)
	}
	m.variants[v.Key] = append(list, v)
	return cloneVariant(v), nil
}

func (m *MemoryStore) Get(_ context.Context, key, id string) (Variant, error) {
	key, id = strings.TrimSpace(key), strings.TrimSpace(id)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.variants[key] {
		if v.ID == id {
			return cloneVariant(v), nil
		}
	}
	return Variant{}, notFound(key, id)
}

func (m *MemoryStore) List(_ context.Context, key string) ([]Variant, error) {
	key = strings.TrimSpace(key)

	m.mu.RLock()
	out := make([]Variant, 0, len(m.variants[key]))
	for _, v := range m.variants[key] {
		out = append(out, cloneVariant(v))
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, key, id string) error {
	key, id = strings.TrimSpace(key), strings.TrimSpace(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.variants[key]
	for idx, v := range list {
		if v.ID == id {
			m.variants[key] = append(list[:idx:idx], list[idx+1:]...)
			return nil
		}
	}
	return notFound(key, id)
}

func (m *MemoryStore) SetDefault(_ context.Context, key, id string) error {
	key, id = strings.TrimSpace(key), strings.TrimSpace(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		m.clearDefaultLocked(key)
		return nil
	}
	list := m.variants[key]
	for idx, v := range list {
		if v.ID != id {
			continue
		}
		m.clearDefaultLocked(key)
		list[idx].Default = true
		return nil
	}
	return notFound(key, id)
}

func (m *MemoryStore) clearDefaultLocked(key string) {
	list := m.variants[key]
	for idx := range list {
		list[idx].Default = false
	}
}

func cloneVariant(v Variant) Variant {
	v.Snapshot = cloneSnapshot(v.Snapshot)
	return v
}

func cloneSnapshot(snap snapshot.Snapshot) snapshot.Snapshot {
	return append(snapshot.Snapshot{}, snap...)
}
