package validation

import (
	"log/slog"
	"strings"
	"time"
)

// Default parse layouts for Date and Time fields.
var (
	DefaultDateLayouts = []string{"2006-01-02", "02.01.2006"}
	DefaultTimeLayouts = []string{"15:04", "15:04:05"}
)

// Texts holds the user-facing failure texts of the built-in rules.
type Texts struct {
	Required  string `json:"required" yaml:"required"`
	Invalid   string `json:"invalid" yaml:"invalid"`
	PastDate  string `json:"pastDate" yaml:"pastDate"`
	PairOrder string `json:"pairOrder" yaml:"pairOrder"`
}

// DefaultTexts returns the built-in failure texts.
func DefaultTexts() Texts {
	return Texts{
		Required:  "Required",
		Invalid:   "Invalid value",
		PastDate:  "Date cannot be in the past",
		PairOrder: "Start date must be before end date",
	}
}

func (t Texts) merged(defaults Texts) Texts {
	if strings.TrimSpace(t.Required) == "" {
		t.Required = defaults.Required
	}
	if strings.TrimSpace(t.Invalid) == "" {
		t.Invalid = defaults.Invalid
	}
	if strings.TrimSpace(t.PastDate) == "" {
		t.PastDate = defaults.PastDate
	}
	if strings.TrimSpace(t.PairOrder) == "" {
		t.PairOrder = defaults.PairOrder
	}
	return t
}

// Option customises a Validator.
type Option func(*Validator)

// WithClock overrides the time source used by the past-date rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithDateLayouts replaces the accepted Date layouts.
func WithDateLayouts(layouts ...string) Option {
	return func(v *Validator) {
		if cleaned := cleanLayouts(layouts); len(cleaned) > 0 {
			v.dateLayouts = cleaned
		}
	}
}

// WithTimeLayouts replaces the accepted Time layouts.
func WithTimeLayouts(layouts ...string) Option {
	return func(v *Validator) {
		if cleaned := cleanLayouts(layouts); len(cleaned) > 0 {
			v.timeLayouts = cleaned
		}
	}
}

// WithPastDates toggles whether Date fields may hold dates before today.
func WithPastDates(allowed bool) Option {
	return func(v *Validator) {
		v.allowPast = allowed
	}
}

// WithStructuralRequired toggles the required rule of the kind table.
func WithStructuralRequired(enabled bool) Option {
	return func(v *Validator) {
		v.structuralRequired = enabled
	}
}

// WithTypeRequired toggles the required check carried by converters that
// implement RequiredAware.
func WithTypeRequired(enabled bool) Option {
	return func(v *Validator) {
		v.typeRequired = enabled
	}
}

// WithLogger sets the logger used for skipped kinds and recovered converter
// panics.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithTexts overrides built-in failure texts. Blank entries keep defaults.
func WithTexts(texts Texts) Option {
	return func(v *Validator) {
		v.texts = texts.merged(DefaultTexts())
	}
}

// WithRule registers an additional rule alongside the built-ins.
func WithRule(rule Rule) Option {
	return func(v *Validator) {
		v.extra = append(v.extra, rule)
	}
}

func cleanLayouts(layouts []string) []string {
	out := make([]string, 0, len(layouts))
	for _, layout := range layouts {
		if trimmed := strings.TrimSpace(layout); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
