package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/message"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/session"
)

type validateResult struct {
	Scope    string            `json:"scope"`
	Valid    bool              `json:"valid"`
	Summary  message.Summary   `json:"summary"`
	Messages []message.Message `json:"messages"`
	Record   session.Record    `json:"record,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a values file against a scope",
		Long:  "Apply a JSON or YAML values file to a scope, run the pre-submit validation and print the messages. Exits with code 2 when the form is invalid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeID, _ := cmd.Flags().GetString("scope")
			valuesPath, _ := cmd.Flags().GetString("values")
			return a.runValidate(cmd, scopeID, valuesPath)
		},
	}

	cmd.Flags().StringP("scope", "s", "", "Scope id (required)")
	cmd.Flags().StringP("values", "v", "", "Values file (JSON or YAML)")
	cmd.MarkFlagRequired("scope")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, scopeID, valuesPath string) error {
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
	record, valid := sess.ValidateBeforeSubmit()
	result := validateResult{
		Scope:    scopeID,
		Valid:    valid,
		Summary:  sess.Summary(),
		Messages: sess.Messages(),
	}
	if valid {
		result.Record = record
	}

	if a.jsonOutput() {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		engine, err := a.reports()
		if err != nil {
			return err
		}
		err = engine.RenderValidation(cmd.OutOrStdout(), report.Validation{
			Scope:    result.Scope,
			Valid:    result.Valid,
			Summary:  result.Summary,
			Messages: result.Messages,
		})
		if err != nil {
			return err
		}
	}

	if !valid {
		return ErrInvalid
	}
	return nil
}
