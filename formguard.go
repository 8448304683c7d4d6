package formguard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formguard/pkg/layout"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/scope"
	"github.com/goliatone/go-formguard/pkg/session"
)

var (
	// ErrUnknownScope is returned when a layout store has no scope with the
	// requested id.
	ErrUnknownScope = errors.New("formguard: unknown scope")
	// ErrNotChoice is returned when options are requested for a field that
	// is not a choice field.
	ErrNotChoice = errors.New("formguard: field has no options")
)

// Values maps field ids (or field names) to plain values: strings, string
// lists, booleans or numbers.
type Values map[string]any

// EmbeddedLayouts exposes the bundled layouts so callers can reuse or extend
// them without importing the layout package directly.
func EmbeddedLayouts() fs.FS {
	return layout.EmbeddedFS()
}

// EmbeddedReportTemplates exposes the bundled report templates.
func EmbeddedReportTemplates() fs.FS {
	return report.TemplatesFS()
}

// LoadLayouts reads scope definitions from path (file or directory). An empty
// path loads the bundled layouts.
func LoadLayouts(path string) (*layout.Store, error) {
	if strings.TrimSpace(path) == "" {
		return layout.LoadFS(layout.EmbeddedFS())
	}
	return layout.LoadFile(path)
}

// LoadValueHelp reads master data rows from path into layouts. An empty path
// is a no-op.
func LoadValueHelp(layouts *layout.Store, path string) error {
	if layouts == nil || strings.TrimSpace(path) == "" {
		return nil
	}
	items, err := layout.ReadValueHelp(path)
	if err != nil {
		return err
	}
	layouts.AddValueHelp(items...)
	return nil
}

// BuildScope builds a fresh scope from the layout store.
func BuildScope(layouts *layout.Store, scopeID string) (*scope.Scope, error) {
	if layouts == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScope, scopeID)
	}
	if _, ok := layouts.Scope(scopeID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScope, scopeID)
	}
	return layouts.Build(scopeID)
}

// NewSession builds a fresh scope and opens an editing session over it.
func NewSession(layouts *layout.Store, scopeID string, opts ...session.Option) (*session.Session, error) {
	sc, err := BuildScope(layouts, scopeID)
	if err != nil {
		return nil, err
	}
	return session.New(sc, opts...)
}

// ApplyValues writes values into the matching fields of sc. Keys match the
// field id first and the field name second. Unknown keys fail with
// session.ErrUnknownField and leave earlier writes in place.
func ApplyValues(sc *scope.Scope, values Values) error {
	if sc == nil {
		return scope.ErrNilScope
	}
	for key, raw := range values {
		field, ok := resolveField(sc, key)
		if !ok {
			return fmt.Errorf("%w: %s", session.ErrUnknownField, key)
		}
		value, err := model.ValueOf(raw)
		if err != nil {
			return fmt.Errorf("formguard: field %s: %w", key, err)
		}
		field.SetValue(value)
	}
	return nil
}

// SearchFieldOptions builds the scope and searches the options of the choice
// field matching fieldKey (id or name).
func SearchFieldOptions(layouts *layout.Store, scopeID, fieldKey, query string, limit int) ([]model.Option, error) {
	sc, err := BuildScope(layouts, scopeID)
	if err != nil {
		return nil, err
	}
	field, ok := resolveField(sc, fieldKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", session.ErrUnknownField, fieldKey)
	}
	if !field.Kind.IsChoice() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotChoice, field.ID, field.Kind)
	}
	return layout.SearchOptions(field.Options, query, limit), nil
}

// DecodeValues parses a JSON or YAML object of field values.
func DecodeValues(data []byte) (Values, error) {
	values := Values{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return values, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("formguard: decode values: %w", err)
		}
		return values, nil
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("formguard: decode values: %w", err)
	}
	return values, nil
}

// ReadValues reads a values file. An empty path yields no values.
func ReadValues(path string) (Values, error) {
	if strings.TrimSpace(path) == "" {
		return Values{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formguard: read values: %w", err)
	}
	return DecodeValues(data)
}

func resolveField(sc *scope.Scope, key string) (*model.Field, bool) {
	if field, ok := sc.Field(key); ok {
		return field, true
	}
	key = strings.TrimSpace(key)
	for _, field := range sc.Fields() {
		if strings.EqualFold(field.Name, key) {
			return field, true
		}
	}
	return nil, false
}
