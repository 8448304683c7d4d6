package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formguard/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			dsn, _ := cmd.Flags().GetString("dsn")
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			layouts, err := a.layouts()
			if err != nil {
				return err
			}
			store, err := a.openVariants(dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			engine, err := a.reports()
			if err != nil {
				return err
			}
			handler, err := server.NewHandler(layouts, store, a.logger,
				server.WithSessionOptions(a.sessionOptions()...),
				server.WithReportEngine(engine),
			)
			if err != nil {
				return err
			}
			return server.New(a.cfg.Server, handler, a.logger).Start(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	cmd.Flags().String("dsn", "", "SQLite database path (default: variants.dsn)")
	return cmd
}
