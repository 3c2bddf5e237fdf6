package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"askdocs/pkg/catalog"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what has been ingested",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := catalog.Open(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer cat.Close()

		records, err := cat.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(records) == 0 {
			color.Yellow("Nothing ingested yet. Run 'askdocs ingest' first.")
			return nil
		}

		totalChunks := 0
		color.Cyan("Ingested files:\n")
		for _, r := range records {
			fmt.Printf("  %-40s %4d pages %5d chunks  %s\n",
				r.SourceID, r.Pages, r.Chunks, r.IngestedAt.Local().Format("2006-01-02 15:04"))
			totalChunks += r.Chunks
		}
		color.Green("\n%d files, %d chunks total\n", len(records), totalChunks)
		return nil
	},
}
