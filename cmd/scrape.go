package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Musxeto/crawl4ai-demo/internal/pipeline"
	"github.com/Musxeto/crawl4ai-demo/internal/record"
)

// newScrapeCmd creates the 'scrape' subcommand. It runs the pipeline once
// for a single listing kind and prints the run summary as JSON.
func newScrapeCmd() *cobra.Command {
	var (
		kindFlag string
		urlFlag  string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run the scrape pipeline once for a listing kind",
		Long: `Crawls the target page for the given kind, extracts and normalizes
records, and ingests them into Postgres. The page defaults to the configured
target for the kind; --url overrides it.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			kind := record.Kind(kindFlag)
			if !kind.Valid() {
				return fmt.Errorf("unknown kind %q (want books, movies, or videos)", kindFlag)
			}

			url := urlFlag
			if url == "" {
				url, err = appInstance.Config.TargetURL(kind)
				if err != nil {
					return err
				}
			}

			engine, err := appInstance.Crawler()
			if err != nil {
				return err
			}

			runner := pipeline.New(
				engine,
				appInstance.Ingestor(),
				appInstance.Snapshots,
				appInstance.Publisher,
				appInstance.Config.RunConfig(),
				appInstance.Logger,
			)

			summary, runErr := runner.Run(cmd.Context(), pipeline.Target{Kind: kind, URL: url})

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(summary); err != nil {
				return fmt.Errorf("encode summary: %w", err)
			}

			if runErr != nil {
				return fmt.Errorf("scrape %s: %w", kind, runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "listing kind to scrape: books, movies, or videos")
	cmd.Flags().StringVar(&urlFlag, "url", "", "override the target URL for this run")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
