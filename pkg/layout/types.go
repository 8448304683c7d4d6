package layout

import (
	"github.com/goliatone/go-formguard/pkg/model"
)

// Store keeps the scope definitions parsed from layout documents. It is safe
// for concurrent readers when treated as immutable after construction.
type Store struct {
	scopes    map[string]ScopeDefinition
	order     []string
	valueHelp []ValueHelpItem
}

// ScopeDefinition describes one form or filter bar.
type ScopeDefinition struct {
	ID     string            `json:"id" yaml:"id"`
	Kind   string            `json:"kind" yaml:"kind"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
	Source string            `json:"-" yaml:"-"`
}

// FieldDefinition describes one field of a scope. Visible defaults to true.
// VisibleWhen is a rule re-evaluated by sessions whenever a value changes.
type FieldDefinition struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Group       string            `json:"group,omitempty" yaml:"group,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        string            `json:"kind" yaml:"kind"`
	Semantic    string            `json:"semantic,omitempty" yaml:"semantic,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Visible     *bool             `json:"visible,omitempty" yaml:"visible,omitempty"`
	VisibleWhen string            `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
	Options     []model.Option    `json:"options,omitempty" yaml:"options,omitempty"`
	Default     *model.Value      `json:"default,omitempty" yaml:"default,omitempty"`
	Type        *TypeDefinition   `json:"type,omitempty" yaml:"type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// TypeDefinition configures the string converter attached to a field.
type TypeDefinition struct {
	MinLength int    `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Required  bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

type documentFile struct {
	Scopes    []ScopeDefinition `json:"scopes" yaml:"scopes"`
	ValueHelp []ValueHelpItem   `json:"valueHelp,omitempty" yaml:"valueHelp,omitempty"`
}
