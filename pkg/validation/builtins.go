package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
)

var formatKinds = []model.FieldKind{
	model.KindDate,
	model.KindTime,
	model.KindSingleChoice,
	model.KindMultiChoice,
	model.KindBoolean,
	model.KindTristate,
}

func (v *Validator) registerBuiltins() {
	v.rules.register(Rule{
		ID:       RuleRequired,
		Priority: PriorityRequired,
		Check:    v.checkRequired,
	})
	v.rules.register(Rule{
		ID:       RuleFormat,
		Priority: PriorityFormat,
		Kinds:    formatKinds,
		Check:    v.checkFormat,
	})
	v.rules.register(Rule{
		ID:       RulePastDate,
		Priority: PriorityPastDate,
		Kinds:    []model.FieldKind{model.KindDate},
		Check:    v.checkPastDate,
	})
	v.rules.register(Rule{
		ID:       RulePairOrder,
		Priority: PriorityPairOrder,
		Kinds:    []model.FieldKind{model.KindDate},
		Check:    v.checkPairOrder,
	})
	v.rules.register(Rule{
		ID:       RuleTypeMetadata,
		Priority: PriorityTypeMetadata,
		Check:    v.checkTypeMetadata,
	})
}

func (v *Validator) checkRequired(in Input) (string, bool) {
	if !v.structuralRequired || !in.Field.Required {
		return "", false
	}
	return v.texts.Required, in.Value.Empty()
}

func (v *Validator) checkFormat(in Input) (string, bool) {
	if in.Value.Empty() {
		return "", false
	}
	field := in.Field
	raw := strings.TrimSpace(in.Value.String())

	var ok bool
	switch field.Kind {
	case model.KindDate:
		_, ok = v.parseDate(raw)
	case model.KindTime:
		_, ok = parseWithLayouts(raw, v.timeLayouts, time.UTC)
	case model.KindSingleChoice:
		ok = len(field.Options) == 0 || field.HasOption(raw)
	case model.KindMultiChoice:
		ok = true
		if len(field.Options) > 0 {
			for _, key := range in.Value.Strings() {
				if !field.HasOption(key) {
					ok = false
					break
				}
			}
		}
	case model.KindBoolean:
		ok = isOneOf(raw, "true", "false")
	case model.KindTristate:
		ok = isOneOf(raw, "true", "false", "mixed")
	default:
		ok = true
	}
	return v.texts.Invalid, !ok
}

func (v *Validator) checkPastDate(in Input) (string, bool) {
	if v.allowPast || in.Value.Empty() {
		return "", false
	}
	parsed, ok := v.parseDate(strings.TrimSpace(in.Value.String()))
	if !ok {
		return "", false
	}
	return v.texts.PastDate, parsed.Before(v.today())
}

// checkPairOrder compares the field with its counterpart oriented by pair
// role, so both members reach the same verdict.
func (v *Validator) checkPairOrder(in Input) (string, bool) {
	if in.Counterpart == nil || in.Value.Empty() || in.Counterpart.Value().Empty() {
		return "", false
	}
	role, ok := scope.PairRole(in.Field.SemanticName)
	if !ok {
		return "", false
	}

	own, ok := v.parseDate(strings.TrimSpace(in.Value.String()))
	if !ok {
		return "", false
	}
	other, ok := v.parseDate(strings.TrimSpace(in.Counterpart.Scalar()))
	if !ok {
		return "", false
	}

	start, end := own, other
	if role == scope.RoleEnd {
		start, end = other, own
	}
	return v.texts.PairOrder, end.Before(start)
}

func (v *Validator) checkTypeMetadata(in Input) (string, bool) {
	converter := in.Field.Converter
	if converter == nil {
		return "", false
	}
	if aware, ok := converter.(RequiredAware); ok && v.typeRequired && aware.RequiresValue() && in.Value.Empty() {
		return v.texts.Required, true
	}
	if err := safeConvert(converter, in.Value); err != nil {
		text := strings.TrimSpace(err.Error())
		if text == "" {
			text = v.texts.Invalid
		}
		return text, true
	}
	return "", false
}

func safeConvert(converter model.Converter, value model.Value) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%v", recovered)
		}
	}()
	return converter.Validate(value)
}

func (v *Validator) today() time.Time {
	now := v.now()
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

func (v *Validator) parseDate(raw string) (time.Time, bool) {
	return parseWithLayouts(raw, v.dateLayouts, v.now().Location())
}

func parseWithLayouts(raw string, layouts []string, loc *time.Location) (time.Time, bool) {
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func isOneOf(raw string, allowed ...string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(raw, candidate) {
			return true
		}
	}
	return false
}
