package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/snapshot"
	"github.com/goliatone/go-formguard/pkg/variant"
)

// handleListVariants lists the variants of a personalisation key.
// GET /variants/{key}
func (h *Handler) handleListVariants(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	variants, err := h.variants.List(r.Context(), key)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	resp := VariantsResponse{Key: key, Variants: variants}

	if wantsText(r) {
		var out strings.Builder
		if err := h.reports.RenderVariants(&out, report.Variants(resp)); err != nil {
			h.writeDomainError(w, err)
			return
		}
		h.writeText(w, http.StatusOK, out.String())
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleSaveVariant stores the posted filter values as a named variant.
// POST /variants/{key}
func (h *Handler) handleSaveVariant(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req SaveVariantRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "INVALID_JSON")
		return
	}

	sc, err := formguard.BuildScope(h.layouts, req.Scope)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := formguard.ApplyValues(sc, req.Values); err != nil {
		h.writeDomainError(w, err)
		return
	}

	manager := variant.NewManager(key, h.variants, sc, variant.WithLogger(h.logger))
	saved, err := manager.Save(r.Context(), req.Name, req.Default)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, saved)
}

// handleGetVariant returns one variant.
// GET /variants/{key}/{id}
func (h *Handler) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	v, err := h.variants.Get(r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// handleApplyVariant restores a variant into a fresh filter scope.
// POST /variants/{key}/{id}/apply
func (h *Handler) handleApplyVariant(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	id := chi.URLParam(r, "id")

	var req ApplyVariantRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "INVALID_JSON")
		return
	}

	sc, err := formguard.BuildScope(h.layouts, req.Scope)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	manager := variant.NewManager(key, h.variants, sc, variant.WithLogger(h.logger))
	applied, restored, err := manager.Apply(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ApplyVariantResponse{
		Variant: applied,
		Applied: restored.Applied,
		Skipped: snapshot.Snapshot(restored.Skipped),
		Text:    snapshot.Text(sc),
		Query:   snapshot.Query(sc),
	})
}

// handleSetDefault marks a variant as the default of its key.
// PUT /variants/{key}/default
func (h *Handler) handleSetDefault(w http.ResponseWriter, r *http.Request) {
	var req SetDefaultRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "INVALID_JSON")
		return
	}
	if err := h.variants.SetDefault(r.Context(), chi.URLParam(r, "key"), req.ID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteVariant removes a variant.
// DELETE /variants/{key}/{id}
func (h *Handler) handleDeleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := h.variants.Delete(r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
