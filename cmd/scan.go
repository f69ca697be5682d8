package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ALOKESHWARGOUD/repscan/internal/threat"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan cycle and print the results",
	Long:  "Run a single discovery-and-ingest cycle without the dashboard. Useful for cron jobs and for verifying API keys.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMonitor()
		if err != nil {
			return err
		}
		defer m.close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		count, err := m.scan.Scan(ctx)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		signals := m.store.All()
		report := threat.Aggregate(signals)

		fmt.Printf("Keyword: %s\n", m.scan.Keyword())
		fmt.Printf("New signals: %d\n", count)
		fmt.Printf("Negative: %.0f%%  Risk: %s\n", report.NegPercent, report.Risk)

		for _, sig := range signals {
			fmt.Printf("  [%s] %s: %s\n", sig.Sentiment, sig.Author, sig.Text)
		}

		if len(report.PriorityThreats) > 0 {
			fmt.Println("Priority threats:")
			for _, r := range report.PriorityThreats {
				fmt.Printf("  %s (%dx, %.0f%% negative, %d videos)\n",
					r.Name, r.Count, r.NegPercent(), r.UniqueVideos)
			}
		}
		return nil
	},
}
