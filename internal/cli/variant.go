package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/report"
	"github.com/goliatone/go-formguard/pkg/snapshot"
	"github.com/goliatone/go-formguard/pkg/variant"
)

// variantFlags are shared by every variant subcommand.
type variantFlags struct {
	dsn string
	key string
}

func newVariantCmd(a *app) *cobra.Command {
	flags := &variantFlags{}
	cmd := &cobra.Command{
		Use:   "variant",
		Short: "Manage named filter variants",
	}
	cmd.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "SQLite database path (default: variants.dsn)")
	cmd.PersistentFlags().StringVarP(&flags.key, "key", "k", "", "Personalisation key (required)")
	cmd.MarkPersistentFlagRequired("key")

	cmd.AddCommand(
		newVariantSaveCmd(a, flags),
		newVariantApplyCmd(a, flags),
		newVariantListCmd(a, flags),
		newVariantDeleteCmd(a, flags),
		newVariantDefaultCmd(a, flags),
	)
	return cmd
}

func newVariantSaveCmd(a *app, flags *variantFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the filter values as a named variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeID, _ := cmd.Flags().GetString("scope")
			valuesPath, _ := cmd.Flags().GetString("values")
			asDefault, _ := cmd.Flags().GetBool("default")

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

			store, err := a.openVariants(flags.dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			manager := variant.NewManager(flags.key, store, sc, variant.WithLogger(a.logger))
			saved, err := manager.Save(cmd.Context(), args[0], asDefault)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", saved.Name, saved.ID)
			return nil
		},
	}
	cmd.Flags().StringP("scope", "s", "", "Filter scope id (required)")
	cmd.Flags().StringP("values", "v", "", "Values file (JSON or YAML)")
	cmd.Flags().Bool("default", false, "Make this the default variant")
	cmd.MarkFlagRequired("scope")
	return cmd
}

func newVariantApplyCmd(a *app, flags *variantFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [id]",
		Short: "Apply a variant to a fresh filter scope and print the result",
		Long:  "Apply a variant by id, or the default variant when no id is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeID, _ := cmd.Flags().GetString("scope")

			layouts, err := a.layouts()
			if err != nil {
				return err
			}
			sc, err := formguard.BuildScope(layouts, scopeID)
			if err != nil {
				return err
			}
			store, err := a.openVariants(flags.dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			manager := variant.NewManager(flags.key, store, sc, variant.WithLogger(a.logger))
			var (
				applied  variant.Variant
				restored snapshot.Report
			)
			if len(args) == 0 {
				applied, restored, err = manager.ApplyDefault(cmd.Context())
			} else {
				applied, restored, err = manager.Apply(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			skipped := make([]string, 0, len(restored.Skipped))
			for _, criterion := range restored.Skipped {
				skipped = append(skipped, criterion.GroupName+"/"+criterion.FieldName)
			}
			filters := report.Filters{
				Scope:        scopeID,
				Text:         snapshot.Text(sc),
				ExpandedText: snapshot.ExpandedText(sc),
				Variant:      applied.Name,
				Modified:     manager.Modified(),
				Criteria:     snapshot.Capture(sc),
				Skipped:      skipped,
			}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), filters)
			}
			engine, err := a.reports()
			if err != nil {
				return err
			}
			return engine.RenderFilters(cmd.OutOrStdout(), filters)
		},
	}
	cmd.Flags().StringP("scope", "s", "", "Filter scope id (required)")
	cmd.MarkFlagRequired("scope")
	return cmd
}

func newVariantListCmd(a *app, flags *variantFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the variants of a key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openVariants(flags.dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			variants, err := store.List(cmd.Context(), flags.key)
			if err != nil {
				return err
			}
			data := report.Variants{Key: flags.key, Variants: variants}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), data)
			}
			engine, err := a.reports()
			if err != nil {
				return err
			}
			return engine.RenderVariants(cmd.OutOrStdout(), data)
		},
	}
}

func newVariantDeleteCmd(a *app, flags *variantFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openVariants(flags.dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), flags.key, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newVariantDefaultCmd(a *app, flags *variantFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "default [id]",
		Short: "Mark a variant as default, or clear the default when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openVariants(flags.dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			if err := store.SetDefault(cmd.Context(), flags.key, id); err != nil {
				return err
			}
			if id == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "default cleared")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default set to %s\n", id)
			return nil
		},
	}
}
