package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard"
)

func newOptionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options FIELD",
		Short: "Search the options of a choice field",
		Long:  "Search the options of a choice field. Options come from the layout and from value help rows (layout.value_help).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeID, _ := cmd.Flags().GetString("scope")
			query, _ := cmd.Flags().GetString("query")
			limit, _ := cmd.Flags().GetInt("limit")

			layouts, err := a.layouts()
			if err != nil {
				return err
			}
			options, err := formguard.SearchFieldOptions(layouts, scopeID, args[0], query, limit)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), options)
			}
			for _, option := range options {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", option.Key, option.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringP("scope", "s", "", "Scope id (required)")
	cmd.Flags().StringP("query", "q", "", "Search text matched against keys and texts")
	cmd.Flags().Int("limit", 0, "Maximum number of options (default 50)")
	cmd.MarkFlagRequired("scope")
	return cmd
}
