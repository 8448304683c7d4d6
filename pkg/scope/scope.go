package scope

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formguard/pkg/model"
)

// Kind distinguishes record-editing containers from filter bars.
type Kind string

const (
	KindForm      Kind = "form"
	KindFilterBar Kind = "filterbar"
)

// AnyGroup matches every group when passed to Enumerate.
const AnyGroup = ""

// ParseKind resolves a scope kind name.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "form", "dialog":
		return KindForm, nil
	case "filterbar", "filter-bar", "filter_bar", "filters":
		return KindFilterBar, nil
	default:
		return "", fmt.Errorf("scope: unknown scope kind %q", raw)
	}
}

// Scope is the field registry for one form container or filter bar. Fields
// keep their attachment order; enumeration never reorders them. Scope is safe
// for concurrent readers.
type Scope struct {
	id   string
	kind Kind

	mu     sync.RWMutex
	fields []*model.Field
}

// New constructs an empty scope.
func New(id string, kind Kind) *Scope {
	if kind == "" {
		kind = KindForm
	}
	return &Scope{
		id:   strings.TrimSpace(id),
		kind: kind,
	}
}

// ID returns the scope identifier.
func (s *Scope) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Kind returns the scope kind.
func (s *Scope) Kind() Kind {
	if s == nil {
		return ""
	}
	return s.kind
}

// Attach appends field to the scope and stamps its ScopeID. A blank name
// defaults to the id so every field stays addressable by group and name.
// Unknown kinds, blank ids and duplicates (by id or by group/name) are
// rejected.
func (s *Scope) Attach(field *model.Field) error {
	if s == nil {
		return ErrNilScope
	}
	if field == nil {
		return ErrNilField
	}
	id := strings.TrimSpace(field.ID)
	if id == "" {
		return ErrFieldIDMissing
	}
	if !field.Kind.Valid() {
		return fmt.Errorf("scope: field %q: %w %q", id, ErrUnknownKind, field.Kind)
	}

	name := strings.TrimSpace(field.Name)
	if name == "" {
		name = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.fields {
		if existing.ID == id {
			return fmt.Errorf("scope: field %q: %w", id, ErrDuplicateField)
		}
		if existing.GroupID == field.GroupID && existing.Name == name {
			return fmt.Errorf("scope: field %s/%s: %w", field.GroupID, name, ErrDuplicateField)
		}
	}

	field.ID = id
	field.Name = name
	field.ScopeID = s.id
	s.fields = append(s.fields, field)
	return nil
}

// MustAttach panics when Attach fails. Useful for static scope wiring.
func (s *Scope) MustAttach(fields ...*model.Field) *Scope {
	for _, field := range fields {
		if err := s.Attach(field); err != nil {
			panic(err)
		}
	}
	return s
}

// Detach removes the field with the given id. It reports whether a field was
// removed.
func (s *Scope) Detach(id string) bool {
	if s == nil {
		return false
	}
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, field := range s.fields {
		if field.ID != id {
			continue
		}
		s.fields = append(s.fields[:idx:idx], s.fields[idx+1:]...)
		return true
	}
	return false
}

// Enumerate returns the attached fields in the requested group whose kind is
// one of kinds (every kind when kinds is empty). AnyGroup matches all groups.
func (s *Scope) Enumerate(groupID string, kinds ...model.FieldKind) []*model.Field {
	if s == nil {
		return nil
	}
	groupID = strings.TrimSpace(groupID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Field, 0, len(s.fields))
	for _, field := range s.fields {
		if groupID != AnyGroup && field.GroupID != groupID {
			continue
		}
		if len(kinds) > 0 && !containsKind(kinds, field.Kind) {
			continue
		}
		out = append(out, field)
	}
	return out
}

// Fields returns every attached field in attachment order.
func (s *Scope) Fields() []*model.Field {
	return s.Enumerate(AnyGroup)
}

// Len reports the number of attached fields.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// Field returns the field with the given id.
func (s *Scope) Field(id string) (*model.Field, bool) {
	if s == nil {
		return nil, false
	}
	id = strings.TrimSpace(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, field := range s.fields {
		if field.ID == id {
			return field, true
		}
	}
	return nil, false
}

// Lookup finds a field by group and name, the key saved filter variants use.
func (s *Scope) Lookup(groupID, name string) (*model.Field, bool) {
	if s == nil {
		return nil, false
	}
	groupID = strings.TrimSpace(groupID)
	name = strings.TrimSpace(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, field := range s.fields {
		if field.GroupID == groupID && field.Name == name {
			return field, true
		}
	}
	return nil, false
}

// Groups lists the distinct group ids in first-seen order.
func (s *Scope) Groups() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.fields))
	var out []string
	for _, field := range s.fields {
		if _, ok := seen[field.GroupID]; ok {
			continue
		}
		seen[field.GroupID] = struct{}{}
		out = append(out, field.GroupID)
	}
	return out
}

func containsKind(kinds []model.FieldKind, kind model.FieldKind) bool {
	for _, candidate := range kinds {
		if candidate == kind {
			return true
		}
	}
	return false
}
