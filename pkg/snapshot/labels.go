package snapshot

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
)

// WithValues returns the visible fields of sc that currently hold a
// non-empty value, in enumeration order.
func WithValues(sc *scope.Scope) []*model.Field {
	fields := sc.Enumerate(scope.AnyGroup)
	out := make([]*model.Field, 0, len(fields))
	for _, field := range fields {
		if !field.Visible || field.Value().Empty() {
			continue
		}
		out = append(out, field)
	}
	return out
}

// Text renders the collapsed filter label, for example
// "Filtered By (2): Leave Type, Status".
func Text(sc *scope.Scope) string {
	active := WithValues(sc)
	if len(active) == 0 {
		return "Filtered By: None"
	}
	labels := make([]string, len(active))
	for idx, field := range active {
		labels[idx] = field.DisplayLabel()
	}
	return fmt.Sprintf("Filtered By (%d): %s", len(active), strings.Join(labels, ", "))
}

// ExpandedText renders the expanded filter label, for example
// "2 filters active".
func ExpandedText(sc *scope.Scope) string {
	switch count := len(WithValues(sc)); count {
	case 0:
		return "No filters active"
	case 1:
		return "1 filter active"
	default:
		return fmt.Sprintf("%d filters active", count)
	}
}

// Query maps field names to their current values for the data source query.
// Only visible fields with a non-empty value are included; list kinds map to
// []string and scalar kinds to string.
func Query(sc *scope.Scope) map[string]any {
	query := make(map[string]any)
	for _, field := range WithValues(sc) {
		key := field.Name
		if key == "" {
			key = field.ID
		}
		query[key] = field.Value().Interface()
	}
	return query
}
