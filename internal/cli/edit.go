package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/renderers/tui"
)

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a scope interactively in the terminal",
		Long:  "Prompt every visible field of a scope, validating each answer as it is given. Prints the resulting record when the form is valid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeID, _ := cmd.Flags().GetString("scope")
			valuesPath, _ := cmd.Flags().GetString("values")
			attempts, _ := cmd.Flags().GetInt("attempts")
			return a.runEdit(cmd, scopeID, valuesPath, tui.NewSurveyDriver(cmd.OutOrStdout()), attempts)
		},
	}

	cmd.Flags().StringP("scope", "s", "", "Scope id (required)")
	cmd.Flags().StringP("values", "v", "", "Values file used as prompt defaults")
	cmd.Flags().Int("attempts", 3, "Prompts per field before moving on")
	cmd.MarkFlagRequired("scope")
	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, scopeID, valuesPath string, driver tui.PromptDriver, attempts int) error {
	layouts, err := a.layouts()
	if err != nil {
		return err
	}
	values, err := formguard.ReadValues(valuesPath)
	if err != nil {
		return err
	}
	sess, err := formguard.NewSession(layouts, scopeID, a.sessionOptions()...)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := formguard.ApplyValues(sess.Scope(), values); err != nil {
		return err
	}

	editor := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithMaxAttempts(attempts),
		tui.WithLogger(a.logger),
	)
	record, valid, err := editor.Edit(cmd.Context(), sess)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalid
	}
	return writeJSON(cmd.OutOrStdout(), record)
}
