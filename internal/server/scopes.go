package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/snapshot"
)

// handleValidate runs the pre-submit validation over the posted values.
// POST /scopes/{scope}/validate
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	scopeID := chi.URLParam(r, "scope")

	var req ValuesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "INVALID_JSON")
		return
	}

	sess, err := formguard.NewSession(h.layouts, scopeID, h.sessionOpts...)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	defer sess.Close()

	if err := formguard.ApplyValues(sess.Scope(), req.Values); err != nil {
		h.writeDomainError(w, err)
		return
	}

	record, valid := sess.ValidateBeforeSubmit()
	resp := ValidateResponse{
		Scope:    scopeID,
		Valid:    valid,
		Summary:  sess.Summary(),
		Messages: sess.Messages(),
		Record:   record,
	}
	h.logger.Debug("scope validated", "scope", scopeID, "valid", valid, "messages", len(resp.Messages))

	if wantsText(r) {
		var out strings.Builder
		err := h.reports.RenderValidation(&out, report.Validation{
			Scope:    resp.Scope,
			Valid:    resp.Valid,
			Summary:  resp.Summary,
			Messages: resp.Messages,
		})
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		h.writeText(w, http.StatusOK, out.String())
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleFilters describes the filter state produced by the posted values.
// POST /scopes/{scope}/filters
func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	scopeID := chi.URLParam(r, "scope")

	var req ValuesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "INVALID_JSON")
		return
	}

	sc, err := formguard.BuildScope(h.layouts, scopeID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := formguard.ApplyValues(sc, req.Values); err != nil {
		h.writeDomainError(w, err)
		return
	}

	resp := FiltersResponse{
		Scope:        scopeID,
		Text:         snapshot.Text(sc),
		ExpandedText: snapshot.ExpandedText(sc),
		Query:        snapshot.Query(sc),
		Snapshot:     snapshot.Capture(sc),
	}

	if wantsText(r) {
		var out strings.Builder
		err := h.reports.RenderFilters(&out, report.Filters{
			Scope:        resp.Scope,
			Text:         resp.Text,
			ExpandedText: resp.ExpandedText,
			Criteria:     resp.Snapshot,
		})
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		h.writeText(w, http.StatusOK, out.String())
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleFieldOptions searches the options of a choice field.
// GET /scopes/{scope}/fields/{field}/options?q=&limit=
func (h *Handler) handleFieldOptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))

	options, err := formguard.SearchFieldOptions(h.layouts, chi.URLParam(r, "scope"), chi.URLParam(r, "field"), query.Get("q"), limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, OptionsResponse{Data: options})
}
