package scope

import (
	"strings"

	"github.com/goliatone/go-formguard/pkg/model"
)

// Role identifies which member of a pair a semantic name denotes.
type Role string

const (
	RoleStart Role = "start"
	RoleEnd   Role = "end"
)

// pairs is the fixed start/end bijection keyed by lower-cased semantic name.
var pairs = map[string]struct {
	counterpart string
	role        Role
}{
	"start":     {counterpart: "end", role: RoleStart},
	"end":       {counterpart: "start", role: RoleEnd},
	"from":      {counterpart: "to", role: RoleStart},
	"to":        {counterpart: "from", role: RoleEnd},
	"validfrom": {counterpart: "validto", role: RoleStart},
	"validto":   {counterpart: "validfrom", role: RoleEnd},
}

// Counterpart returns the semantic name paired with name.
func Counterpart(name string) (string, bool) {
	entry, ok := pairs[pairKey(name)]
	if !ok {
		return "", false
	}
	return entry.counterpart, true
}

// PairRole reports whether name is the start or end member of a pair.
func PairRole(name string) (Role, bool) {
	entry, ok := pairs[pairKey(name)]
	if !ok {
		return "", false
	}
	return entry.role, true
}

// FindCounterpart looks for exactly one other field in the scope whose
// semantic name is the declared counterpart of semanticName. Ambiguous
// matches resolve to no counterpart.
func (s *Scope) FindCounterpart(field *model.Field, semanticName string) (*model.Field, bool) {
	if s == nil || field == nil {
		return nil, false
	}
	want, ok := Counterpart(semanticName)
	if !ok {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var match *model.Field
	for _, candidate := range s.fields {
		if candidate == field || candidate.ID == field.ID {
			continue
		}
		if pairKey(candidate.SemanticName) != want {
			continue
		}
		if match != nil {
			return nil, false
		}
		match = candidate
	}
	return match, match != nil
}

func pairKey(name string) string {
	replacer := strings.NewReplacer("-", "", "_", "", " ", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}
