package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ALOKESHWARGOUD/repscan/internal/archive"
	"github.com/ALOKESHWARGOUD/repscan/internal/config"
)

var (
	flagHistoryKeyword   string
	flagHistorySentiment string
	flagHistoryLimit     int
	flagPruneOlderThan   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived signals",
	Long:  "List journaled signals from the local archive, newest first. Requires archive.enabled in config.",
	RunE: func(cmd *cobra.Command, args []string) error {
		arch, err := archive.Open(config.ArchivePath())
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer arch.Close()

		entries, err := arch.History(archive.QueryOpts{
			Keyword:   flagHistoryKeyword,
			Sentiment: flagHistorySentiment,
			Limit:     flagHistoryLimit,
		})
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No archived signals.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  [%s] %s (%s): %s\n",
				e.ArchivedAt.Format("2006-01-02 15:04"), e.Sentiment, e.Author, e.Keyword, e.Text)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.ArchivePath()
		arch, err := archive.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer arch.Close()

		total, bySentiment, size, err := arch.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Archive: %s\n", dbPath)
		fmt.Printf("Signals: %d\n", total)
		for label, count := range bySentiment {
			fmt.Printf("  %s: %d\n", label, count)
		}
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old signals from the archive",
	Long:  "Delete archived signals older than the retention period and reclaim disk space.",
	RunE: func(cmd *cobra.Command, args []string) error {
		retention := 90 * 24 * time.Hour
		if flagPruneOlderThan != "" {
			d, err := parseRetention(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		arch, err := archive.Open(config.ArchivePath())
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer arch.Close()

		deleted, err := arch.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d signal(s) older than %s.\n", deleted, formatDays(retention))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryKeyword, "keyword", "", "filter by keyword")
	historyCmd.Flags().StringVar(&flagHistorySentiment, "sentiment", "", "filter by sentiment (POSITIVE, NEGATIVE, NEUTRAL)")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 0, "max entries to show (default 100)")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
}

// parseRetention accepts Go durations plus a day suffix ("30d").
func parseRetention(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDays(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
