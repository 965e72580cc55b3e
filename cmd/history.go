package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past viewing sessions from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		limit, _ := cmd.Flags().GetInt("limit")
		caseID, _ := cmd.Flags().GetString("case")
		showEvents, _ := cmd.Flags().GetBool("events")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		opts := journal.QueryOpts{Limit: limit, CaseID: caseID}

		if showEvents {
			records, err := st.Repo().Recent(ctx, opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No events found.")
				return nil
			}
			fmt.Fprintf(out, "%-6s  %-19s  %-18s  %-17s  %-10s  %s\n",
				"Seq", "Timestamp", "Kind", "Case", "Node", "Detail")
			fmt.Fprintln(out, strings.Repeat("─", 96))
			for _, r := range records {
				fmt.Fprintf(out, "%-6d  %-19s  %-18s  %-17s  %-10s  %s\n",
					r.Sequence,
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					r.Kind, r.CaseID, r.Node, r.Detail)
			}
			return nil
		}

		sessions, err := st.Repo().SessionSummaries(ctx, opts)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-19s  %8s  %6s  %6s  %s\n",
			"Session", "Started", "Duration", "Events", "Visits", "Cases")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, s := range sessions {
			fmt.Fprintf(out, "%-8s  %-19s  %8s  %6d  %6d  %s\n",
				truncate(s.SessionID, 8),
				s.Started.Local().Format("2006-01-02 15:04:05"),
				s.Duration().Round(1e9).String(),
				s.Events, s.NodeVisits,
				strings.Join(s.Cases, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of rows to show")
	historyCmd.Flags().StringP("case", "c", "", "Only sessions or events for this case id")
	historyCmd.Flags().Bool("events", false, "List individual events instead of sessions")
}
