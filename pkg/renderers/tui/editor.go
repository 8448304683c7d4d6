package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/model"
	"github.com/goliatone/go-formguard/pkg/session"
)

const defaultMaxAttempts = 3

var tristateOptions = []string{"true", "false", "mixed"}

// Editor walks the visible fields of a session and prompts for each value.
// Every answer goes through the session, so messages and the summary are
// maintained exactly as for any other editing surface.
type Editor struct {
	driver      PromptDriver
	theme       Theme
	maxAttempts int
	logger      *slog.Logger
}

// New constructs an editor with defaults (survey driver on stdout).
func New(options ...Option) *Editor {
	e := &Editor{
		theme:       DefaultTheme(),
		maxAttempts: defaultMaxAttempts,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver(nil)
	}
	return e
}

// Edit prompts every visible field of sess in scope order. A rejected answer
// is reported and prompted again until it passes or the attempt limit is
// reached; the message then stays in the store. Edit finishes with the
// pre-submit validation and returns its record and verdict.
func (e *Editor) Edit(ctx context.Context, sess *session.Session) (session.Record, bool, error) {
	if ctx == nil {
		return nil, false, errors.New("tui: context is required")
	}
	if sess == nil {
		return nil, false, ErrNilSession
	}

	for _, field := range sess.Scope().Fields() {
		if !field.Visible {
			continue
		}
		if err := e.editField(ctx, sess, field); err != nil {
			return nil, false, err
		}
	}

	record, valid := sess.ValidateBeforeSubmit()
	summary := sess.Summary()
	if valid {
		if err := e.info(ctx, "Form is valid"); err != nil {
			return nil, false, err
		}
	} else {
		if err := e.fail(ctx, fmt.Sprintf("%d %s message(s) remain", summary.Count, summary.Severity)); err != nil {
			return nil, false, err
		}
		for _, msg := range sess.Messages() {
			if err := e.fail(ctx, fmt.Sprintf("%s: %s", msg.Target, msg.Text)); err != nil {
				return nil, false, err
			}
		}
	}
	return record, valid, nil
}

func (e *Editor) editField(ctx context.Context, sess *session.Session, field *model.Field) error {
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		value, err := e.prompt(ctx, field)
		if err != nil {
			return err
		}
		outcome, err := sess.SetValue(field.ID, value)
		if err != nil {
			return fmt.Errorf("tui: set %s: %w", field.ID, err)
		}
		if outcome.Message == nil {
			// Counterpart messages are reported but the answer itself stands.
			for _, cascaded := range outcome.Cascaded {
				if cascaded.Message == nil {
					continue
				}
				if err := e.fail(ctx, cascaded.Message.Text); err != nil {
					return err
				}
			}
			return nil
		}
		e.logger.Debug("answer rejected", "field", field.ID, "rule", outcome.RuleID, "attempt", attempt)
		if err := e.fail(ctx, outcome.Message.Text); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) prompt(ctx context.Context, field *model.Field) (model.Value, error) {
	label := field.DisplayLabel()
	if field.Required {
		label += " *"
	}
	current := field.Value()

	switch field.Kind {
	case model.KindBoolean:
		ok, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: strings.EqualFold(current.String(), "true"),
		})
		if err != nil {
			return model.Value{}, err
		}
		if ok {
			return model.Scalar("true"), nil
		}
		return model.Scalar("false"), nil

	case model.KindTristate:
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      tristateOptions,
			DefaultIndex: indexOf(tristateOptions, strings.ToLower(current.String())),
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.Scalar(optionAt(tristateOptions, idx)), nil

	case model.KindSingleChoice:
		if len(field.Options) == 0 {
			return e.input(ctx, field, label, current.String())
		}
		keys, labels := optionLabels(field.Options)
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: indexOf(keys, current.String()),
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.Scalar(optionAt(keys, idx)), nil

	case model.KindMultiChoice:
		if len(field.Options) == 0 {
			return e.inputList(ctx, field, label, current)
		}
		keys, labels := optionLabels(field.Options)
		indices, err := e.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  labels,
			Defaults: indicesOf(keys, current.Strings()),
		})
		if err != nil {
			return model.Value{}, err
		}
		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if key := optionAt(keys, idx); key != "" {
				selected = append(selected, key)
			}
		}
		return model.List(selected...), nil

	case model.KindMultiText:
		return e.inputList(ctx, field, label, current)

	case model.KindTextArea:
		out, err := e.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current.String()})
		if err != nil {
			return model.Value{}, err
		}
		return model.Scalar(out), nil

	default:
		return e.input(ctx, field, label, current.String())
	}
}

func (e *Editor) input(ctx context.Context, field *model.Field, label, current string) (model.Value, error) {
	out, err := e.driver.Input(ctx, InputConfig{
		Message: label,
		Default: current,
		Help:    helpFor(field.Kind),
	})
	if err != nil {
		return model.Value{}, err
	}
	return model.Scalar(out), nil
}

func (e *Editor) inputList(ctx context.Context, field *model.Field, label string, current model.Value) (model.Value, error) {
	out, err := e.driver.Input(ctx, InputConfig{
		Message: label,
		Default: strings.Join(current.Strings(), ", "),
		Help:    "Separate values with commas",
	})
	if err != nil {
		return model.Value{}, err
	}
	var values []string
	for _, part := range strings.Split(out, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return model.List(values...), nil
}

func (e *Editor) info(ctx context.Context, text string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+text)
}

func (e *Editor) fail(ctx context.Context, text string) error {
	return e.driver.Info(ctx, e.theme.ErrorPrefix+message.SanitizeText(text))
}

func helpFor(kind model.FieldKind) string {
	switch kind {
	case model.KindDate:
		return "Date as YYYY-MM-DD or DD.MM.YYYY"
	case model.KindTime:
		return "Time as HH:MM"
	default:
		return ""
	}
}

func optionLabels(options []model.Option) (keys, labels []string) {
	keys = make([]string, len(options))
	labels = make([]string, len(options))
	for i, opt := range options {
		keys[i] = opt.Key
		labels[i] = opt.Key
		if text := strings.TrimSpace(opt.Text); text != "" && text != opt.Key {
			labels[i] = fmt.Sprintf("%s (%s)", text, opt.Key)
		}
	}
	return keys, labels
}

func optionAt(options []string, idx int) string {
	option, _ := at(options, idx)
	return option
}
