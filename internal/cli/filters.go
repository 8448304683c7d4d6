package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/snapshot"
)

type filtersResult struct {
	Scope        string            `json:"scope"`
	Text         string            `json:"text"`
	ExpandedText string            `json:"expandedText"`
	Query        map[string]any    `json:"query"`
	Snapshot     snapshot.Snapshot `json:"snapshot"`
}

func newFiltersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Describe the filters produced by a values file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeID, _ := cmd.Flags().GetString("scope")
			valuesPath, _ := cmd.Flags().GetString("values")

			layouts, err := a.layouts()
			if err != nil {
				return err
			}
			values, err := formguard.ReadValues(valuesPath)
			if err != nil {
				return err
			}
			sc, err := formguard.BuildScope(layouts, scopeID)
			if err != nil {
				return err
			}
			if err := formguard.ApplyValues(sc, values); err != nil {
				return err
			}

			result := filtersResult{
				Scope:        scopeID,
				Text:         snapshot.Text(sc),
				ExpandedText: snapshot.ExpandedText(sc),
				Query:        snapshot.Query(sc),
				Snapshot:     snapshot.Capture(sc),
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			engine, err := a.reports()
			if err != nil {
				return err
			}
			return engine.RenderFilters(cmd.OutOrStdout(), report.Filters{
				Scope:        result.Scope,
				Text:         result.Text,
				ExpandedText: result.ExpandedText,
				Criteria:     result.Snapshot,
			})
		},
	}

	cmd.Flags().StringP("scope", "s", "", "Filter scope id (required)")
	cmd.Flags().StringP("values", "v", "", "Values file (JSON or YAML)")
	cmd.MarkFlagRequired("scope")
	return cmd
}
