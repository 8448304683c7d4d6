// Package server exposes scope validation and filter variants over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/layout"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/session"
	"github.com/goliatone/go-formguard/pkg/variant"
)

// Handler provides HTTP handlers for the API.
type Handler struct {
	layouts     *layout.Store
	variants    variant.Store
	reports     *report.Engine
	sessionOpts []session.Option
	logger      *slog.Logger
}

// Option configures the handler.
type Option func(*Handler)

// WithSessionOptions forwards options to every session the handler opens.
func WithSessionOptions(opts ...session.Option) Option {
	return func(h *Handler) {
		h.sessionOpts = append(h.sessionOpts, opts...)
	}
}

// WithReportEngine sets the engine used for text responses.
func WithReportEngine(engine *report.Engine) Option {
	return func(h *Handler) {
		if engine != nil {
			h.reports = engine
		}
	}
}

// NewHandler creates a new API handler. A nil variant store disables the
// variant endpoints.
func NewHandler(layouts *layout.Store, variants variant.Store, l *slog.Logger, opts ...Option) (*Handler, error) {
	if l == nil {
		l = slog.Default()
	}
	h := &Handler{
		layouts:  layouts,
		variants: variants,
		logger:   l,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.reports == nil {
		engine, err := report.New()
		if err != nil {
			return nil, err
		}
		h.reports = engine
	}
	return h, nil
}

// Routes returns the router with all API routes.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestIDHeader)

	r.Get("/health", h.handleHealth)

	r.Route("/scopes", func(r chi.Router) {
		r.Get("/", h.handleListScopes)
		r.Post("/{scope}/validate", h.handleValidate)
		r.Post("/{scope}/filters", h.handleFilters)
		r.Get("/{scope}/fields/{field}/options", h.handleFieldOptions)
	})

	r.Route("/variants/{key}", func(r chi.Router) {
		r.Use(h.requireVariants)
		r.Get("/", h.handleListVariants)
		r.Post("/", h.handleSaveVariant)
		r.Put("/default", h.handleSetDefault)
		r.Get("/{id}", h.handleGetVariant)
		r.Post("/{id}/apply", h.handleApplyVariant)
		r.Delete("/{id}", h.handleDeleteVariant)
	})

	return r
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requireVariants(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.variants == nil {
			h.writeError(w, http.StatusNotImplemented, "variant storage is not configured", "VARIANTS_DISABLED")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleListScopes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, ScopesResponse{Scopes: h.layouts.IDs()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger.Error("failed to write text", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeDomainError maps package errors to HTTP responses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, formguard.ErrUnknownScope), variant.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, session.ErrUnknownField),
		errors.Is(err, variant.ErrNameRequired),
		errors.Is(err, variant.ErrKeyRequired),
		errors.Is(err, formguard.ErrNotChoice):
		h.writeError(w, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	default:
		h.logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func wantsText(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "text") {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Accept"), "text/plain")
}
