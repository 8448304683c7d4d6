package session

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/validation"
	"github.com/goliatone/go-formguard/pkg/visibility"
)

// Option customises a Session.
type Option func(*Session)

// WithSummaryControl sets the control that receives recomputed summaries.
func WithSummaryControl(control message.SummaryControl) Option {
	return func(s *Session) {
		s.control = control
	}
}

// WithThemeSelector resolves summary icons from a go-theme selection. A
// selection error keeps the current icons and is logged.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(s *Session) {
		if selector == nil {
			return
		}
		selection, err := selector.Select(name, variant)
		if err != nil {
			s.logger.Warn("theme selection failed", "theme", name, "variant", variant, "error", err)
			return
		}
		s.icons = message.IconsFromTheme(selection)
	}
}

// WithValidationOptions forwards options to the session validator.
func WithValidationOptions(opts ...validation.Option) Option {
	return func(s *Session) {
		s.validationOpts = append(s.validationOpts, opts...)
	}
}

// WithDataAccess sets the collaborator used by Submit.
func WithDataAccess(access DataAccess) Option {
	return func(s *Session) {
		s.access = access
	}
}

// WithNotifier sets the collaborator that receives remote failures.
func WithNotifier(notifier Notifier) Option {
	return func(s *Session) {
		s.notifier = notifier
	}
}

// WithLogger sets the session logger. It is also passed to the validator.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore shares an existing message store instead of creating one.
func WithStore(store *message.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithVisibility replaces the evaluator used for visibleWhen rules. A nil
// evaluator disables rule evaluation.
func WithVisibility(eval visibility.Evaluator) Option {
	return func(s *Session) {
		s.visibility = eval
	}
}

// WithVisibilityExtras exposes caller data to visibleWhen rules under the
// extras prefix.
func WithVisibilityExtras(extras map[string]any) Option {
	return func(s *Session) {
		s.extras = extras
	}
}
