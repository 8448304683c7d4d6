package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScopesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the scopes defined by the layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layouts, err := a.layouts()
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), layouts.IDs())
			}
			for _, id := range layouts.IDs() {
				def, _ := layouts.Scope(id)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d fields\n", id, def.Kind, len(def.Fields))
			}
			return nil
		},
	}
}
