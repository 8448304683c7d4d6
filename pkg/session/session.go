package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/scope"
	"github.com/goliatone/go-formguard/pkg/validation"
	"github.com/goliatone/go-formguard/pkg/visibility"
	"github.com/goliatone/go-formguard/pkg/visibility/expr"
)

// Record is the payload handed to the data access collaborator: field name
// to string or []string.
type Record map[string]any

// Mode selects the remote operation performed by Submit.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// ParseMode resolves a submit mode name.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeCreate, "":
		return ModeCreate, nil
	case ModeUpdate:
		return ModeUpdate, nil
	default:
		return "", fmt.Errorf("session: unknown submit mode %q", raw)
	}
}

// DataAccess performs the remote create and update calls.
type DataAccess interface {
	Create(ctx context.Context, record Record) error
	Update(ctx context.Context, key string, record Record) error
}

// Notifier surfaces remote failures to the user. Remote failures never enter
// the message store.
type Notifier interface {
	Notify(ctx context.Context, err error)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, err error)

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, err error) {
	fn(ctx, err)
}

// Session is one editing session over a form scope. It owns the message store
// and serialises event handlers so each handler's store mutations and summary
// push complete before the next handler starts.
type Session struct {
	id string

	mu        sync.Mutex
	scope     *scope.Scope
	store     *message.Store
	validator *validation.Validator
	control   message.SummaryControl
	icons     message.IconSet
	access    DataAccess
	notifier  Notifier
	logger    *slog.Logger
	closed    bool

	validationOpts []validation.Option
	visibility     visibility.Evaluator
	extras         map[string]any
}

// New opens a session over sc.
func New(sc *scope.Scope, opts ...Option) (*Session, error) {
	if sc == nil {
		return nil, scope.ErrNilScope
	}
	s := &Session{
		id:         uuid.NewString(),
		scope:      sc,
		store:      message.NewStore(),
		icons:      message.DefaultIcons(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		visibility: expr.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	validationOpts := append([]validation.Option{validation.WithLogger(s.logger)}, s.validationOpts...)
	s.validator = validation.New(sc, s.store, validationOpts...)
	s.logger = s.logger.With("session", s.id, "scope", sc.ID())
	s.refreshVisibilityLocked()
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Scope returns the edited scope.
func (s *Session) Scope() *scope.Scope {
	return s.scope
}

// Store returns the session message store.
func (s *Session) Store() *message.Store {
	return s.store
}

// FieldChanged re-evaluates visibility rules, validates the field (and its
// pair counterpart) and pushes the recomputed summary. Hidden fields are not
// validated.
func (s *Session) FieldChanged(fieldID string) (validation.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, err := s.fieldLocked(fieldID)
	if err != nil {
		return validation.Outcome{}, err
	}
	return s.fieldChangedLocked(field), nil
}

// SetValue writes value into the field and then behaves like FieldChanged.
// The write and the validation run as one event.
func (s *Session) SetValue(fieldID string, value model.Value) (validation.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, err := s.fieldLocked(fieldID)
	if err != nil {
		return validation.Outcome{}, err
	}
	field.SetValue(value)
	return s.fieldChangedLocked(field), nil
}

func (s *Session) fieldLocked(fieldID string) (*model.Field, error) {
	if s.closed {
		return nil, ErrClosed
	}
	field, ok := s.scope.Field(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}
	return field, nil
}

func (s *Session) fieldChangedLocked(field *model.Field) validation.Outcome {
	s.refreshVisibilityLocked()
	if !field.Visible {
		s.store.RemoveForTarget(field.Target())
		s.pushSummaryLocked()
		return validation.Outcome{Target: field.Target()}
	}
	outcome := s.validator.Validate(field)
	s.pushSummaryLocked()
	s.logger.Debug("field validated",
		"field", field.ID,
		"valid", outcome.Valid(),
		"rule", outcome.RuleID,
	)
	return outcome
}

// ValidateBeforeSubmit validates every visible field, clears messages of
// hidden fields and returns the record built from visible fields.
func (s *Session) ValidateBeforeSubmit() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	record, valid := s.validateLocked()
	s.pushSummaryLocked()
	return record, valid
}

// Submit re-validates the form and, when valid, hands the record to the data
// access collaborator. Remote failures are passed to the Notifier and
// returned wrapped.
func (s *Session) Submit(ctx context.Context, mode Mode, key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	record, valid := s.validateLocked()
	s.pushSummaryLocked()
	access, notifier := s.access, s.notifier
	s.mu.Unlock()

	if !valid {
		s.logger.Info("submit blocked by validation", "mode", string(mode))
		return ErrInvalid
	}
	if access == nil {
		return ErrNoDataAccess
	}

	var err error
	switch mode {
	case ModeUpdate:
		err = access.Update(ctx, key, record)
	case ModeCreate, "":
		err = access.Create(ctx, record)
	default:
		err = fmt.Errorf("session: unknown submit mode %q", mode)
	}
	if err != nil {
		s.logger.Error("submit failed", "mode", string(mode), "key", key, "error", err)
		if notifier != nil {
			notifier.Notify(ctx, err)
		}
		return fmt.Errorf("session: submit %s: %w", mode, err)
	}
	s.logger.Info("submit succeeded", "mode", string(mode), "key", key, "fields", len(record))
	return nil
}

// Messages returns the live messages.
func (s *Session) Messages() []message.Message {
	return s.store.All()
}

// Summary recomputes the summary without pushing it.
func (s *Session) Summary() message.Summary {
	return s.store.Summary(s.icons)
}

// Close removes every message of the scope and rejects further events.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	removed := s.store.RemoveForPrefix(s.targetPrefix())
	s.closed = true
	s.pushSummaryLocked()
	s.logger.Debug("session closed", "removed", removed)
	return nil
}

func (s *Session) validateLocked() (Record, bool) {
	s.refreshVisibilityLocked()
	visible := make([]*model.Field, 0, s.scope.Len())
	targets := make(map[string]struct{}, s.scope.Len())
	for _, field := range s.scope.Fields() {
		if !field.Visible {
			continue
		}
		visible = append(visible, field)
		targets[field.Target()] = struct{}{}
	}

	valid := true
	for _, outcome := range s.validator.ValidateAll(visible...) {
		if _, ok := targets[outcome.Target]; ok && outcome.Message != nil {
			valid = false
		}
	}

	record := make(Record, len(visible))
	for _, field := range s.scope.Fields() {
		if !field.Visible {
			s.store.RemoveForTarget(field.Target())
			continue
		}
		record[recordKey(field)] = field.Value().Interface()
	}
	return record, valid
}

// refreshVisibilityLocked re-evaluates visibleWhen rules. Fields that become
// hidden lose their messages.
func (s *Session) refreshVisibilityLocked() {
	changes, err := visibility.Apply(s.scope, s.visibility, s.extras)
	if err != nil {
		s.logger.Warn("visibility rule failed", "error", err)
	}
	for _, change := range changes {
		if !change.Visible {
			if field, ok := s.scope.Field(change.FieldID); ok {
				s.store.RemoveForTarget(field.Target())
			}
		}
		s.logger.Debug("field visibility changed", "field", change.FieldID, "visible", change.Visible)
	}
}

func (s *Session) pushSummaryLocked() {
	if s.control == nil {
		return
	}
	s.control.SetSummary(s.store.Summary(s.icons))
}

func (s *Session) targetPrefix() string {
	if id := strings.TrimSpace(s.scope.ID()); id != "" {
		return id + "/"
	}
	return ""
}

func recordKey(field *model.Field) string {
	if name := strings.TrimSpace(field.Name); name != "" {
		return name
	}
	return field.ID
}
