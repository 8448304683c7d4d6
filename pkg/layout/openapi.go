package layout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formguard/pkg/model"
)

// extensionKey holds per-property layout overrides:
//
//	x-formguard:
//	  kind: textarea
//	  semantic: start
//	  group: dates
//	  label: Start Date
//	  order: 2
//	  hidden: true
const extensionKey = "x-formguard"

const (
	integerPattern = `^-?\d+$`
	numberPattern  = `^-?\d+(\.\d+)?$`
)

// OpenAPIOptions configures FromOpenAPI.
type OpenAPIOptions struct {
	// ScopeID defaults to the schema name.
	ScopeID string
	// Kind is the scope kind; empty means form.
	Kind string
	// ResolveReferences validates the document and allows external refs.
	ResolveReferences bool
}

// FromOpenAPI derives a scope definition from the component schema named
// schemaName. Property kinds follow type/format/enum, required follows the
// schema's required list and string constraints become a StringType
// converter. Properties are ordered by x-formguard.order, then by name.
func FromOpenAPI(ctx context.Context, raw []byte, schemaName string, opts OpenAPIOptions) (ScopeDefinition, error) {
	if err := ctx.Err(); err != nil {
		return ScopeDefinition{}, err
	}
	if len(raw) == 0 {
		return ScopeDefinition{}, errors.New("layout: openapi document is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.ResolveReferences,
	}
	document, err := loader.LoadFromData(raw)
	if err != nil {
		return ScopeDefinition{}, fmt.Errorf("layout: load openapi document: %w", err)
	}
	if opts.ResolveReferences {
		if err := document.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return ScopeDefinition{}, fmt.Errorf("layout: validate openapi document: %w", err)
		}
	}
	if document.Components == nil || document.Components.Schemas == nil {
		return ScopeDefinition{}, fmt.Errorf("layout: openapi document has no component schemas")
	}
	ref, ok := document.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return ScopeDefinition{}, fmt.Errorf("layout: openapi schema %q not found", schemaName)
	}

	scopeID := strings.TrimSpace(opts.ScopeID)
	if scopeID == "" {
		scopeID = schemaName
	}
	def := ScopeDefinition{
		ID:     scopeID,
		Kind:   opts.Kind,
		Title:  ref.Value.Title,
		Source: "openapi:" + schemaName,
	}

	required := make(map[string]bool, len(ref.Value.Required))
	for _, name := range ref.Value.Required {
		required[name] = true
	}

	type ordered struct {
		order int
		field FieldDefinition
	}
	fields := make([]ordered, 0, len(ref.Value.Properties))
	for name, property := range ref.Value.Properties {
		if property == nil || property.Value == nil {
			continue
		}
		field, order, err := fieldFromSchema(name, property.Value, required[name])
		if err != nil {
			return ScopeDefinition{}, fmt.Errorf("layout: openapi schema %q: %w", schemaName, err)
		}
		fields = append(fields, ordered{order: order, field: field})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].order == fields[j].order {
			return fields[i].field.ID < fields[j].field.ID
		}
		return fields[i].order < fields[j].order
	})
	for _, entry := range fields {
		def.Fields = append(def.Fields, entry.field)
	}
	return def, nil
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) (FieldDefinition, int, error) {
	ext := extensionMap(schema.Extensions)
	def := FieldDefinition{
		ID:       name,
		Name:     name,
		Label:    firstNonEmpty(stringValue(ext["label"]), schema.Title),
		Group:    stringValue(ext["group"]),
		Semantic: stringValue(ext["semantic"]),
		Required: required,
	}
	if hidden, ok := ext["hidden"].(bool); ok && hidden {
		visible := false
		def.Visible = &visible
	}

	kind := stringValue(ext["kind"])
	if kind == "" {
		kind = kindForSchema(schema)
	}
	if kind == "" {
		return FieldDefinition{}, 0, fmt.Errorf("property %q has unsupported type %v", name, schemaTypes(schema))
	}
	def.Kind = kind

	def.Options = optionsFromEnum(schema.Enum)
	if len(def.Options) == 0 && schema.Items != nil && schema.Items.Value != nil {
		def.Options = optionsFromEnum(schema.Items.Value.Enum)
	}

	if typ := typeFromSchema(schema); typ != nil {
		def.Type = typ
	}
	if schema.Default != nil {
		if value, err := model.ValueOf(schema.Default); err == nil {
			def.Default = &value
		}
	}
	return def, intValue(ext["order"]), nil
}

func kindForSchema(schema *openapi3.Schema) string {
	types := schemaTypes(schema)
	switch {
	case hasType(types, openapi3.TypeBoolean):
		return string(model.KindBoolean)
	case hasType(types, openapi3.TypeArray):
		if schema.Items != nil && schema.Items.Value != nil && len(schema.Items.Value.Enum) > 0 {
			return string(model.KindMultiChoice)
		}
		return string(model.KindMultiText)
	case hasType(types, openapi3.TypeString):
		switch strings.ToLower(schema.Format) {
		case "date":
			return string(model.KindDate)
		case "time":
			return string(model.KindTime)
		case "textarea":
			return string(model.KindTextArea)
		}
		if len(schema.Enum) > 0 {
			return string(model.KindSingleChoice)
		}
		return string(model.KindText)
	case hasType(types, openapi3.TypeInteger), hasType(types, openapi3.TypeNumber):
		return string(model.KindText)
	default:
		return ""
	}
}

func typeFromSchema(schema *openapi3.Schema) *TypeDefinition {
	typ := TypeDefinition{
		MinLength: int(schema.MinLength),
		Pattern:   schema.Pattern,
	}
	if schema.MaxLength != nil {
		typ.MaxLength = int(*schema.MaxLength)
	}
	types := schemaTypes(schema)
	if typ.Pattern == "" {
		switch {
		case hasType(types, openapi3.TypeInteger):
			typ.Pattern = integerPattern
		case hasType(types, openapi3.TypeNumber):
			typ.Pattern = numberPattern
		}
	}
	if typ == (TypeDefinition{}) {
		return nil
	}
	return &typ
}

func schemaTypes(schema *openapi3.Schema) []string {
	if schema.Type == nil {
		return nil
	}
	return schema.Type.Slice()
}

func hasType(types []string, want string) bool {
	for _, typ := range types {
		if typ == want {
			return true
		}
	}
	return false
}

func optionsFromEnum(values []any) []model.Option {
	if len(values) == 0 {
		return nil
	}
	options := make([]model.Option, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		key := fmt.Sprint(value)
		options = append(options, model.Option{Key: key, Text: key})
	}
	return options
}

func extensionMap(extensions map[string]any) map[string]any {
	if raw, ok := extensions[extensionKey].(map[string]any); ok {
		return raw
	}
	return map[string]any{}
}

func stringValue(raw any) string {
	if str, ok := raw.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

func intValue(raw any) int {
	switch typed := raw.(type) {
	case int:
		return typed
	case float64:
		return int(typed)
	default:
		return 0
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
