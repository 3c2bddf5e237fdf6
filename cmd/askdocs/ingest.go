package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load, chunk, embed and index the document corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		p, err := buildPipeline(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer closePipeline(p)

		color.Blue("\nIngesting documents from %s\n", cfg.Loader.DataDir)

		bar := getProgressBar(-1, "Ingesting corpus...")
		p.OnProgress = func(stage string, done, total int) {
			bar.Describe(color.BlueString("%s (%d/%d)", stage, done, total))
			bar.Add(1)
		}

		stats, err := p.Ingest(ctx)
		bar.Finish()
		if err != nil {
			return err
		}

		if stats.Documents == 0 {
			color.Yellow("\nNo documents found in %s\n", cfg.Loader.DataDir)
			return nil
		}

		color.Green("\n✓ Ingested %d documents from %d files into %d chunks\n",
			stats.Documents, stats.Sources, stats.Chunks)
		return nil
	},
}
