package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"askdocs/pkg/retriever"
)

var showSources bool

func init() {
	askCmd.Flags().BoolVar(&showSources, "sources", true, "Show retrieved sources with the answer")
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about the indexed corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		p, err := buildPipeline(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer closePipeline(p)

		question := strings.Join(args, " ")

		spinner := getSpinner("Searching...")
		answer, err := p.Ask(ctx, question)
		spinner.Finish()
		fmt.Print("\r")
		if err != nil {
			return err
		}

		color.Cyan("\n%s\n", answer.Text)

		if showSources && len(answer.Sources) > 0 {
			stats := retriever.RetrievalStats(answer.Sources)
			color.Blue("\nSources (%d matches, avg %d chars):", stats.Count, stats.AvgLength)
			for i, m := range answer.Sources {
				fmt.Printf("  %d. %s, page %d (score %.3f)\n", i+1, m.SourceID, m.PageIndex, m.Score)
			}
		}
		return nil
	},
}
