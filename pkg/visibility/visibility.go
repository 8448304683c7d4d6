// Package visibility recomputes field visibility from the visibleWhen rules
// declared on layout fields.
package visibility

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
)

// Evaluator decides whether a field is visible given its rule and the
// current scope values.
type Evaluator interface {
	Eval(fieldID, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the current field
// values keyed by field id and by field name. Extras carries caller data such
// as user roles, addressed as `extras.<key>`.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldID, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldID, rule string, ctx Context) (bool, error) {
	return fn(fieldID, rule, ctx)
}

// Change records a field whose visibility flipped.
type Change struct {
	FieldID string
	Visible bool
}

// ContextFor snapshots the values of every field in sc. Hidden fields still
// contribute their values.
func ContextFor(sc *scope.Scope, extras map[string]any) Context {
	ctx := Context{Values: map[string]any{}, Extras: extras}
	if sc == nil {
		return ctx
	}
	for _, field := range sc.Fields() {
		value := field.Value().Interface()
		ctx.Values[field.ID] = value
		if name := strings.TrimSpace(field.Name); name != "" {
			if _, taken := ctx.Values[name]; !taken {
				ctx.Values[name] = value
			}
		}
	}
	return ctx
}

// Apply evaluates the rule of every field in sc against one snapshot of the
// current values and updates Field.Visible. A field whose rule fails keeps its
// visibility; the failures are joined into the returned error.
func Apply(sc *scope.Scope, eval Evaluator, extras map[string]any) ([]Change, error) {
	if sc == nil {
		return nil, scope.ErrNilScope
	}
	if eval == nil || !HasRules(sc) {
		return nil, nil
	}

	ctx := ContextFor(sc, extras)
	var (
		changes []Change
		errs    []error
	)
	for _, field := range sc.Fields() {
		rule := strings.TrimSpace(field.VisibleWhen)
		if rule == "" {
			continue
		}
		visible, err := eval.Eval(field.ID, rule, ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if visible != field.Visible {
			field.Visible = visible
			changes = append(changes, Change{FieldID: field.ID, Visible: visible})
		}
	}
	return changes, errors.Join(errs...)
}

// HasRules reports whether any field of sc declares a visibility rule.
func HasRules(sc *scope.Scope) bool {
	if sc == nil {
		return false
	}
	for _, field := range sc.Fields() {
		if hasRule(field) {
			return true
		}
	}
	return false
}

func hasRule(field *model.Field) bool {
	return field != nil && strings.TrimSpace(field.VisibleWhen) != ""
}
