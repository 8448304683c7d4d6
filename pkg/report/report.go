package report

import (
	"io"

	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/snapshot"
	"github.com/goliatone/go-formguard/pkg/variant"
)

// Template names of the bundled reports.
const (
	TemplateValidation = "validation"
	TemplateFilters    = "filters"
	TemplateVariants   = "variants"
)

// Validation is the data behind the validation report.
type Validation struct {
	Scope    string            `json:"scope"`
	Valid    bool              `json:"valid"`
	Summary  message.Summary   `json:"summary"`
	Messages []message.Message `json:"messages"`
}

// Filters is the data behind the filter report.
type Filters struct {
	Scope        string            `json:"scope"`
	Text         string            `json:"text"`
	ExpandedText string            `json:"expandedText"`
	Variant      string            `json:"variant,omitempty"`
	Modified     bool              `json:"modified"`
	Criteria     snapshot.Snapshot `json:"criteria"`
	Skipped      []string          `json:"skipped,omitempty"`
}

// Variants is the data behind the variant list.
type Variants struct {
	Key      string            `json:"key"`
	Variants []variant.Variant `json:"variants"`
}

// RenderValidation writes the validation report.
func (e *Engine) RenderValidation(w io.Writer, data Validation) error {
	_, err := e.Render(TemplateValidation, data, w)
	return err
}

// RenderFilters writes the filter report.
func (e *Engine) RenderFilters(w io.Writer, data Filters) error {
	_, err := e.Render(TemplateFilters, data, w)
	return err
}

// RenderVariants writes the variant list.
func (e *Engine) RenderVariants(w io.Writer, data Variants) error {
	if data.Variants == nil {
		data.Variants = []variant.Variant{}
	}
	_, err := e.Render(TemplateVariants, data, w)
	return err
}
