package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat with the indexed corpus",
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

		// The memory store starts empty every run, so chat against it
		// ingests the corpus first.
		if cfg.Store.Type == "memory" {
			spinner := getSpinner("Indexing corpus...")
			stats, err := p.Ingest(ctx)
			spinner.Finish()
			fmt.Print("\r")
			if err != nil {
				return err
			}
			color.Green("✓ Indexed %d chunks from %d files\n", stats.Chunks, stats.Sources)
		}

		color.Cyan("\nChat with your documents (type 'exit' to quit)")

		scanner := bufio.NewScanner(os.Stdin)
		userPrompt := color.New(color.FgGreen).PrintfFunc()
		assistantPrompt := color.New(color.FgCyan).PrintfFunc()

		for {
			userPrompt("\nYou: ")
			if !scanner.Scan() {
				break
			}

			query := strings.TrimSpace(scanner.Text())
			if query == "" {
				continue
			}
			if strings.ToLower(query) == "exit" {
				break
			}

			if cfg.UI.Streaming {
				stream, rc, err := p.AskStream(ctx, query)
				if err != nil {
					color.Red("Error: %v\n", err)
					continue
				}

				fmt.Print("\n")
				assistantPrompt("Assistant: ")
				for chunk := range stream {
					if strings.HasPrefix(chunk, "Error:") {
						color.Red("\n%s\n", chunk)
						break
					}
					fmt.Print(chunk)
				}
				fmt.Print("\n")

				if len(rc.Matches) > 0 {
					for i, m := range rc.Matches {
						color.Blue("  [Source %d] %s, page %d (score %.3f)",
							i+1, m.SourceID, m.PageIndex, m.Score)
					}
				}
			} else {
				spinner := getSpinner("Generating response...")
				answer, err := p.Ask(ctx, query)
				spinner.Finish()
				fmt.Print("\r")
				if err != nil {
					color.Red("Error: %v\n", err)
					continue
				}
				assistantPrompt("\nAssistant: %s\n", answer.Text)
			}
		}

		return nil
	},
}
