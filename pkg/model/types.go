package model

import "strings"

// Option is a known key a choice field can hold.
type Option struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Converter is the typed metadata attached to a field. Validate returns an
// error whose text is surfaced to the user when the value is rejected.
type Converter interface {
	Validate(value Value) error
}

// Field is an editable input point inside a scope. Callers own the field
// lifetime; validation and snapshot code read and write through the accessor
// methods only. Fields are not safe for concurrent mutation.
type Field struct {
	ID           string
	ScopeID      string
	GroupID      string
	Name         string
	Label        string
	SemanticName string
	Kind         FieldKind
	Required     bool
	Visible      bool
	VisibleWhen  string
	Options      []Option
	Converter    Converter
	Metadata     map[string]string

	value Value
}

// NewField constructs a visible field with an empty value shaped for kind.
func NewField(id, name string, kind FieldKind) *Field {
	field := &Field{
		ID:      strings.TrimSpace(id),
		Name:    strings.TrimSpace(name),
		Kind:    kind,
		Visible: true,
	}
	field.value = emptyFor(kind)
	return field
}

// Target returns the opaque message target for the field.
func (f *Field) Target() string {
	if f == nil {
		return ""
	}
	return TargetFor(f.ScopeID, f.ID)
}

// TargetFor joins a scope id and field id into a message target.
func TargetFor(scopeID, fieldID string) string {
	scopeID = strings.TrimSpace(scopeID)
	fieldID = strings.TrimSpace(fieldID)
	if scopeID == "" {
		return fieldID
	}
	return scopeID + "/" + fieldID
}

// DisplayLabel prefers the label, falling back to the field name and id.
func (f *Field) DisplayLabel() string {
	if f == nil {
		return ""
	}
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		return name
	}
	return f.ID
}

// Value returns the current value shaped for the field kind.
func (f *Field) Value() Value {
	if f == nil {
		return Value{}
	}
	if f.Kind.IsList() && !f.value.IsList() {
		return List(f.value.Strings()...)
	}
	return f.value
}

// SetValue writes v, coercing it to the field kind's shape: scalars written
// into list kinds become one-element lists and lists written into scalar
// kinds keep their first element.
func (f *Field) SetValue(v Value) {
	if f == nil {
		return
	}
	if f.Kind.IsList() {
		f.value = List(v.Strings()...)
		return
	}
	f.value = Scalar(v.String())
}

// Scalar reads the value as a single string.
func (f *Field) Scalar() string {
	return f.Value().String()
}

// SetScalar writes a single string.
func (f *Field) SetScalar(value string) {
	f.SetValue(Scalar(value))
}

// List reads the value as an ordered list.
func (f *Field) List() []string {
	return f.Value().Strings()
}

// SetList writes an ordered list.
func (f *Field) SetList(values []string) {
	f.SetValue(List(values...))
}

// Clear resets the value to the empty value of the field kind.
func (f *Field) Clear() {
	if f == nil {
		return
	}
	f.value = emptyFor(f.Kind)
}

// HasOption reports whether key is one of the declared option keys.
func (f *Field) HasOption(key string) bool {
	if f == nil {
		return false
	}
	for _, option := range f.Options {
		if option.Key == key {
			return true
		}
	}
	return false
}

// OptionText returns the display text for key, or key itself.
func (f *Field) OptionText(key string) string {
	if f != nil {
		for _, option := range f.Options {
			if option.Key == key && strings.TrimSpace(option.Text) != "" {
				return option.Text
			}
		}
	}
	return key
}

func emptyFor(kind FieldKind) Value {
	if kind.IsList() {
		return List()
	}
	return Scalar("")
}
