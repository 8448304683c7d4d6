package layout

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
	"github.com/goliatone/go-formguard/pkg/validation"
	"github.com/goliatone/go-formguard/pkg/visibility/expr"
)

// Build creates a scope and attaches one field per definition in order.
// Unknown kinds and duplicate fields fail the build.
func (d ScopeDefinition) Build() (*scope.Scope, error) {
	kind, err := scope.ParseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("layout: scope %q (%s): %w", d.ID, d.Source, err)
	}
	sc := scope.New(d.ID, kind)
	for idx, def := range d.Fields {
		field, err := def.Field()
		if err != nil {
			return nil, fmt.Errorf("layout: scope %q field #%d: %w", d.ID, idx, err)
		}
		if err := sc.Attach(field); err != nil {
			return nil, fmt.Errorf("layout: scope %q: %w", d.ID, err)
		}
	}
	return sc, nil
}

// Build looks up id, builds its scope and installs the store's value help
// rows as choice options.
func (s *Store) Build(id string) (*scope.Scope, error) {
	def, ok := s.Scope(id)
	if !ok {
		return nil, fmt.Errorf("layout: unknown scope %q", id)
	}
	sc, err := def.Build()
	if err != nil {
		return nil, err
	}
	if len(s.valueHelp) > 0 {
		ApplyValueHelp(sc, s.valueHelp)
	}
	return sc, nil
}

// Field converts the definition into a model field. The field name defaults
// to the id.
func (d FieldDefinition) Field() (*model.Field, error) {
	kind, err := model.ParseFieldKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w: %s", d.ID, scope.ErrUnknownKind, strings.TrimSpace(d.Kind))
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = strings.TrimSpace(d.ID)
	}

	field := model.NewField(d.ID, name, kind)
	field.GroupID = strings.TrimSpace(d.Group)
	field.Label = strings.TrimSpace(d.Label)
	field.SemanticName = strings.TrimSpace(d.Semantic)
	field.Required = d.Required
	if d.Visible != nil {
		field.Visible = *d.Visible
	}
	if rule := strings.TrimSpace(d.VisibleWhen); rule != "" {
		if _, err := expr.Compile(rule); err != nil {
			return nil, fmt.Errorf("field %q: visibleWhen: %w", d.ID, err)
		}
		field.VisibleWhen = rule
	}
	if len(d.Options) > 0 {
		field.Options = append([]model.Option(nil), d.Options...)
	}
	if len(d.Metadata) > 0 {
		field.Metadata = make(map[string]string, len(d.Metadata))
		for key, value := range d.Metadata {
			field.Metadata[key] = value
		}
	}
	if d.Type != nil {
		field.Converter = validation.StringType{
			MinLength: d.Type.MinLength,
			MaxLength: d.Type.MaxLength,
			Pattern:   d.Type.Pattern,
			Required:  d.Type.Required,
		}
	}
	if d.Default != nil {
		field.SetValue(*d.Default)
	}
	return field, nil
}
