package server

import (
	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/session"
	"github.com/goliatone/go-formguard/pkg/snapshot"
	"github.com/goliatone/go-formguard/pkg/variant"
)

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ScopesResponse lists the scopes known to the layout store.
type ScopesResponse struct {
	Scopes []string `json:"scopes"`
}

// ValuesRequest carries field values keyed by field id or name.
type ValuesRequest struct {
	Values formguard.Values `json:"values"`
}

// ValidateResponse is the outcome of a pre-submit validation.
type ValidateResponse struct {
	Scope    string            `json:"scope"`
	Valid    bool              `json:"valid"`
	Summary  message.Summary   `json:"summary"`
	Messages []message.Message `json:"messages"`
	Record   session.Record    `json:"record"`
}

// FiltersResponse describes the active filters of a filter bar.
type FiltersResponse struct {
	Scope        string            `json:"scope"`
	Text         string            `json:"text"`
	ExpandedText string            `json:"expandedText"`
	Query        map[string]any    `json:"query"`
	Snapshot     snapshot.Snapshot `json:"snapshot"`
}

// SaveVariantRequest stores the given filter values as a named variant.
type SaveVariantRequest struct {
	Scope   string           `json:"scope"`
	Name    string           `json:"name"`
	Default bool             `json:"default"`
	Values  formguard.Values `json:"values"`
}

// ApplyVariantRequest names the filter scope a variant is applied to.
type ApplyVariantRequest struct {
	Scope string `json:"scope"`
}

// ApplyVariantResponse reports the restored filter state.
type ApplyVariantResponse struct {
	Variant variant.Variant   `json:"variant"`
	Applied []string          `json:"applied"`
	Skipped snapshot.Snapshot `json:"skipped,omitempty"`
	Text    string            `json:"text"`
	Query   map[string]any    `json:"query"`
}

// SetDefaultRequest names the new default variant. An empty id clears it.
type SetDefaultRequest struct {
	ID string `json:"id"`
}

// VariantsResponse lists the variants of a personalisation key.
type VariantsResponse struct {
	Key      string            `json:"key"`
	Variants []variant.Variant `json:"variants"`
}

// OptionsResponse lists the options matching a search.
type OptionsResponse struct {
	Data []model.Option `json:"data"`
}
