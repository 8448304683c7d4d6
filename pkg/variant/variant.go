package variant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/goliatone/go-formguard/pkg/snapshot"
)

var (
	// ErrNotFound is returned when a variant id does not exist for a key.
	ErrNotFound = errors.New("variant: not found")
	// ErrKeyRequired is returned when a personalisation key is blank.
	ErrKeyRequired = errors.New("variant: personalisation key is required")
	// ErrNameRequired is returned when a variant is saved without a name.
	ErrNameRequired = errors.New("variant: name is required")
)

// Variant is a named, replayable filter snapshot stored under a
// personalisation key. At most one variant per key is the default.
type Variant struct {
	ID        string            `json:"id"`
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Snapshot  snapshot.Snapshot `json:"snapshot"`
	Default   bool              `json:"default"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store persists variants. Saving a variant whose name already exists under
// the same key replaces that variant's snapshot and keeps its id.
type Store interface {
	Save(ctx context.Context, v Variant) (Variant, error)
	Get(ctx context.Context, key, id string) (Variant, error)
	// List returns the variants of key ordered by name.
	List(ctx context.Context, key string) ([]Variant, error)
	Delete(ctx context.Context, key, id string) error
	// SetDefault marks id as the default of key. An empty id clears it.
	SetDefault(ctx context.Context, key, id string) error
}

// NewID returns a new lexically sortable variant id.
func NewID() string {
	return ulid.Make().String()
}

func normalise(v Variant) (Variant, error) {
	v.Key = strings.TrimSpace(v.Key)
	v.Name = strings.TrimSpace(v.Name)
	v.ID = strings.TrimSpace(v.ID)
	if v.Key == "" {
		return v, ErrKeyRequired
	}
	if v.Name == "" {
		return v, ErrNameRequired
	}
	if v.Snapshot == nil {
		v.Snapshot = snapshot.Snapshot{}
	}
	return v, nil
}

func notFound(key, id string) error {
	return fmt.Errorf("%w: %s/%s", ErrNotFound, key, id)
}
