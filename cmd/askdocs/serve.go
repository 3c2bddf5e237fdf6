package main

import (
	"github.com/spf13/cobra"

	"askdocs/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat flow over a WebSocket endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p, err := buildPipeline(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer closePipeline(p)

		return server.New(p, cfg.Server.Port).ListenAndServe()
	},
}
