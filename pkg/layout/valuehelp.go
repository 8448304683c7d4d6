package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
)

// ValueHelpItem is one master data row: a known key and its display text
// for the field named FieldName.
type ValueHelpItem struct {
	FieldName  string `json:"FieldName" yaml:"fieldName"`
	FieldKey   string `json:"FieldKey" yaml:"fieldKey"`
	FieldValue string `json:"FieldValue" yaml:"fieldValue"`
}

// GroupValueHelp groups rows by field name, keeping row order per field.
func GroupValueHelp(items []ValueHelpItem) map[string][]model.Option {
	grouped := make(map[string][]model.Option)
	for _, item := range items {
		name := strings.TrimSpace(item.FieldName)
		key := strings.TrimSpace(item.FieldKey)
		if name == "" || key == "" {
			continue
		}
		grouped[name] = append(grouped[name], model.Option{
			Key:  key,
			Text: strings.TrimSpace(item.FieldValue),
		})
	}
	return grouped
}

// ApplyValueHelp installs master data rows as the options of matching choice
// fields in sc. Field names match case-insensitively. It returns the number of
// fields updated.
func ApplyValueHelp(sc *scope.Scope, items []ValueHelpItem) int {
	grouped := GroupValueHelp(items)
	if len(grouped) == 0 {
		return 0
	}
	updated := 0
	for _, field := range sc.Fields() {
		if !field.Kind.IsChoice() {
			continue
		}
		for name, options := range grouped {
			if !strings.EqualFold(name, field.Name) {
				continue
			}
			field.Options = append([]model.Option(nil), options...)
			updated++
			break
		}
	}
	return updated
}

// AddValueHelp appends master data rows used by Build.
func (s *Store) AddValueHelp(items ...ValueHelpItem) {
	if s == nil {
		return
	}
	s.valueHelp = append(s.valueHelp, items...)
}

// ValueHelp returns a copy of the master data rows held by the store.
func (s *Store) ValueHelp() []ValueHelpItem {
	if s == nil {
		return nil
	}
	return append([]ValueHelpItem(nil), s.valueHelp...)
}

// DecodeValueHelp parses a JSON or YAML list of master data rows.
func DecodeValueHelp(data []byte, source string) ([]ValueHelpItem, error) {
	var items []ValueHelpItem
	if len(strings.TrimSpace(string(data))) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("layout: parse value help %s: %w", source, err)
	}
	return items, nil
}

// ReadValueHelp reads master data rows from path.
func ReadValueHelp(path string) ([]ValueHelpItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read value help %s: %w", path, err)
	}
	return DecodeValueHelp(data, path)
}
