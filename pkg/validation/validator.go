package validation

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
)

// Outcome is the result of validating one field. Message is nil when the
// field passed every rule. Cascaded holds the outcome of re-validating the
// field's pair counterpart.
type Outcome struct {
	Target   string           `json:"target"`
	Message  *message.Message `json:"message,omitempty"`
	RuleID   string           `json:"ruleId,omitempty"`
	Cascaded []Outcome        `json:"cascaded,omitempty"`
}

// Valid reports whether the outcome and its cascaded outcomes carry no
// message.
func (o Outcome) Valid() bool {
	if o.Message != nil {
		return false
	}
	for _, cascaded := range o.Cascaded {
		if !cascaded.Valid() {
			return false
		}
	}
	return true
}

// Validator evaluates fields of one scope against the priority-ordered rule
// table and writes the result into the message store. Each Validate call
// ends with exactly one store write for the field's target.
type Validator struct {
	scope *scope.Scope
	store *message.Store
	rules ruleTable
	extra []Rule

	now                func() time.Time
	dateLayouts        []string
	timeLayouts        []string
	allowPast          bool
	structuralRequired bool
	typeRequired       bool
	texts              Texts
	logger             *slog.Logger
}

// New constructs a validator bound to sc and store.
func New(sc *scope.Scope, store *message.Store, opts ...Option) *Validator {
	v := &Validator{
		scope:              sc,
		store:              store,
		now:                time.Now,
		dateLayouts:        append([]string(nil), DefaultDateLayouts...),
		timeLayouts:        append([]string(nil), DefaultTimeLayouts...),
		structuralRequired: true,
		typeRequired:       true,
		texts:              DefaultTexts(),
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	v.registerBuiltins()
	for _, rule := range v.extra {
		v.rules.register(rule)
	}
	return v
}

// Scope returns the scope the validator resolves counterparts in.
func (v *Validator) Scope() *scope.Scope {
	if v == nil {
		return nil
	}
	return v.scope
}

// Validate runs the rule table for field and, for Date fields with a visible
// pair counterpart, re-validates the counterpart once. Hidden counterparts are
// neither compared against nor cascaded into.
func (v *Validator) Validate(field *model.Field) Outcome {
	if v == nil || field == nil {
		return Outcome{}
	}
	outcome := v.validateField(field)
	if field.Kind != model.KindDate {
		return outcome
	}
	if counterpart, ok := v.counterpart(field); ok {
		outcome.Cascaded = append(outcome.Cascaded, v.validateField(counterpart))
	}
	return outcome
}

// ValidateAll validates each field. Counterparts already present in fields
// are not cascaded a second time.
func (v *Validator) ValidateAll(fields ...*model.Field) []Outcome {
	if v == nil {
		return nil
	}
	outcomes := make([]Outcome, 0, len(fields))
	for _, field := range fields {
		if field == nil {
			continue
		}
		outcomes = append(outcomes, v.validateField(field))
	}
	for _, field := range fields {
		if field == nil || field.Kind != model.KindDate {
			continue
		}
		counterpart, ok := v.counterpart(field)
		if !ok || containsField(fields, counterpart) {
			continue
		}
		outcomes = append(outcomes, v.validateField(counterpart))
	}
	return outcomes
}

// Valid reports whether no outcome carries a message.
func Valid(outcomes []Outcome) bool {
	for _, outcome := range outcomes {
		if !outcome.Valid() {
			return false
		}
	}
	return true
}

func (v *Validator) validateField(field *model.Field) Outcome {
	target := field.Target()
	outcome := Outcome{Target: target}

	if !field.Kind.Valid() {
		v.logger.Warn("validation skipped: no rules for field kind",
			"target", target,
			"kind", string(field.Kind),
		)
		return outcome
	}

	in := Input{Field: field, Value: field.Value()}
	if counterpart, ok := v.counterpart(field); ok {
		in.Counterpart = counterpart
	}

	for _, rule := range v.rules.forKind(field.Kind) {
		text, failed := v.run(rule, in)
		if !failed {
			continue
		}
		stored := v.store.Add(message.Message{
			Target:   target,
			Severity: message.SeverityError,
			Text:     text,
			RuleID:   rule.ID,
		})
		outcome.Message = &stored
		outcome.RuleID = rule.ID
		return outcome
	}

	v.store.RemoveForTarget(target)
	return outcome
}

func (v *Validator) run(rule Rule, in Input) (text string, failed bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			v.logger.Error("validation rule panicked",
				"rule", rule.ID,
				"target", in.Field.Target(),
				"panic", fmt.Sprint(recovered),
			)
			text, failed = v.texts.Invalid, true
		}
	}()
	return rule.Check(in)
}

func (v *Validator) counterpart(field *model.Field) (*model.Field, bool) {
	if v.scope == nil || strings.TrimSpace(field.SemanticName) == "" {
		return nil, false
	}
	counterpart, ok := v.scope.FindCounterpart(field, field.SemanticName)
	if !ok || !counterpart.Visible {
		return nil, false
	}
	return counterpart, true
}

func containsField(fields []*model.Field, field *model.Field) bool {
	for _, candidate := range fields {
		if candidate == field {
			return true
		}
	}
	return false
}
