package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/waste"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime sorting statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()

		totals, err := repo.Totals(ctx)
		if err != nil {
			return fmt.Errorf("query totals: %w", err)
		}
		cats, err := repo.CategoryTotals(ctx)
		if err != nil {
			return fmt.Errorf("query category totals: %w", err)
		}
		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sessions: %d   Sorted: %d   Asked robot: %d   Returned: %d\n\n",
			totals.Sessions, totals.Disposed, totals.Suggested, totals.Returned)

		if len(cats) == 0 {
			fmt.Fprintln(out, "Nothing sorted yet.")
			return nil
		}

		fmt.Fprintf(out, "%-14s  %7s  %7s  %8s  %s\n", "Category", "Sorted", "Asked", "Returned", "Robot right")
		fmt.Fprintln(out, strings.Repeat("─", 58))
		for _, c := range cats {
			acc := "-"
			if c.Suggested > 0 {
				acc = fmt.Sprintf("%d/%d", c.HelperCorrect, c.Suggested)
			}
			fmt.Fprintf(out, "%-14s  %7d  %7d  %8d  %s\n",
				waste.Category(c.Category).DisplayName(), c.Disposed, c.Suggested, c.Returned, acc)
		}

		if len(sessions) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-16s  %6s  %7s  %6s  %8s  %s\n", "Date", "Time", "Sorted", "Asked", "Returned", "Session")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, ss := range sessions {
			fmt.Fprintf(out, "%-16s  %3d:%02d  %7d  %6d  %8d  %s\n",
				ss.Timestamp.Local().Format("2006-01-02 15:04"),
				ss.DurationSecs/60, ss.DurationSecs%60,
				ss.Disposed, ss.Suggested, ss.Returned,
				ss.SessionID,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to show")
}
