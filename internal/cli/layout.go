package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formguard/pkg/layout"
)

func newLayoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Work with layout documents",
	}
	cmd.AddCommand(newLayoutFromOpenAPICmd(a))
	return cmd
}

func newLayoutFromOpenAPICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "from-openapi [file]",
		Short: "Derive a layout document from an OpenAPI component schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaName, _ := cmd.Flags().GetString("schema")
			scopeID, _ := cmd.Flags().GetString("scope")
			kind, _ := cmd.Flags().GetString("kind")
			resolve, _ := cmd.Flags().GetBool("resolve-refs")

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("cli: read openapi document: %w", err)
			}
			def, err := layout.FromOpenAPI(cmd.Context(), raw, schemaName, layout.OpenAPIOptions{
				ScopeID:           scopeID,
				Kind:              kind,
				ResolveReferences: resolve,
			})
			if err != nil {
				return err
			}
			// Building the definition catches unknown kinds before the
			// document is written.
			if _, err := def.Build(); err != nil {
				return err
			}

			doc := struct {
				Scopes []layout.ScopeDefinition `json:"scopes" yaml:"scopes"`
			}{Scopes: []layout.ScopeDefinition{def}}
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), doc)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().String("schema", "", "Component schema name (required)")
	cmd.Flags().String("scope", "", "Scope id (default: the schema name)")
	cmd.Flags().String("kind", "form", "Scope kind: form or filterbar")
	cmd.Flags().Bool("resolve-refs", false, "Validate the document and allow external references")
	cmd.MarkFlagRequired("schema")
	return cmd
}
