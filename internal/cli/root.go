// Package cli implements the formguard CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/internal/config"
	"github.com/goliatone/go-formguard/pkg/layout"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/session"
	"github.com/goliatone/go-formguard/pkg/variant"
)

// ErrInvalid is returned by commands whose form failed validation. It maps to
// exit code 2.
var ErrInvalid = errors.New("cli: form is invalid")

const (
	formatText = "text"
	formatJSON = "json"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	layoutPath string
	format     string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the top-level command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "formguard",
		Short:         "Validate forms and manage filter variants",
		Long:          "Validate form and filter scopes defined in layout files, edit them in the terminal and keep named filter variants in SQLite.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (YAML)")
	cmd.PersistentFlags().StringVarP(&a.layoutPath, "layout", "l", "", "Layout file or directory (default: layout.path or the bundled layouts)")
	cmd.PersistentFlags().StringVarP(&a.format, "format", "f", formatText, "Output format: text or json")

	cmd.AddCommand(
		newScopesCmd(a),
		newValidateCmd(a),
		newFiltersCmd(a),
		newOptionsCmd(a),
		newEditCmd(a),
		newVariantCmd(a),
		newLayoutCmd(a),
		newServeCmd(a),
	)
	return cmd
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalid):
		return 2
	default:
		return 1
	}
}

func (a *app) load(stderr io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.layoutPath != "" {
		cfg.Layout.Path = a.layoutPath
	}
	switch a.format = strings.ToLower(strings.TrimSpace(a.format)); a.format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("cli: unknown format %q", a.format)
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg, stderr)
	return nil
}

func (a *app) layouts() (*layout.Store, error) {
	layouts, err := formguard.LoadLayouts(a.cfg.Layout.Path)
	if err != nil {
		return nil, err
	}
	if err := formguard.LoadValueHelp(layouts, a.cfg.Layout.ValueHelp); err != nil {
		return nil, err
	}
	return layouts, nil
}

func (a *app) reports() (*report.Engine, error) {
	return report.New(
		report.WithBaseDir(a.cfg.Report.TemplateDir),
		report.WithGlobalData(map[string]any{"app": "formguard"}),
	)
}

func (a *app) sessionOptions() []session.Option {
	return []session.Option{
		session.WithLogger(a.logger),
		session.WithValidationOptions(a.cfg.ValidationOptions()...),
		session.WithThemeSelector(a.cfg.ThemeSelector(), a.cfg.Theme.Name, a.cfg.Theme.Variant),
		session.WithVisibilityExtras(a.cfg.Visibility.Extras),
	}
}

func (a *app) openVariants(dsn string) (*variant.SQLiteStore, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = a.cfg.Variants.DSN
	}
	return variant.NewSQLiteStore(dsn)
}

func (a *app) jsonOutput() bool {
	return a.format == formatJSON
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
