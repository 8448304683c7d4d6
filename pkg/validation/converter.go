package validation

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formguard/pkg/model"
)

// RequiredAware is implemented by converters that carry their own required
// constraint. The validator enforces it in the type-metadata layer when
// WithTypeRequired is enabled.
type RequiredAware interface {
	RequiresValue() bool
}

// ConverterFunc adapts a function into a model.Converter.
type ConverterFunc func(value model.Value) error

// Validate calls fn.
func (fn ConverterFunc) Validate(value model.Value) error {
	if fn == nil {
		return nil
	}
	return fn(value)
}

// StringType constrains string values by length and pattern. Empty values
// pass the length and pattern checks; Required is enforced by the validator.
type StringType struct {
	MinLength int
	MaxLength int
	Pattern   string
	Required  bool
}

// RequiresValue reports the Required constraint.
func (s StringType) RequiresValue() bool {
	return s.Required
}

// Validate checks every element of value against the constraints.
func (s StringType) Validate(value model.Value) error {
	var pattern *regexp.Regexp
	if s.Pattern != "" {
		compiled, err := regexp.Compile(s.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q", s.Pattern)
		}
		pattern = compiled
	}

	for _, item := range value.Strings() {
		if item == "" {
			continue
		}
		length := utf8.RuneCountInString(item)
		if s.MaxLength > 0 && length > s.MaxLength {
			return fmt.Errorf("Enter a value with no more than %d characters", s.MaxLength)
		}
		if s.MinLength > 0 && length < s.MinLength {
			return fmt.Errorf("Enter a value with at least %d characters", s.MinLength)
		}
		if pattern != nil && !pattern.MatchString(item) {
			return errors.New("Enter a valid value")
		}
	}
	return nil
}
