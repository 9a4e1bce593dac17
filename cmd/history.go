package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/checkform/internal/screens/history"
	"github.com/abhisek/checkform/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent submission attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		session, _ := cmd.Flags().GetString("session")

		s, err := openJournal()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, SessionID: session}
		return listHistory(cmd.Context(), s.SubmissionRepo(), opts, kind, cmd.OutOrStdout())
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the payload and errors of one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openJournal()
		if err != nil {
			return err
		}
		defer s.Close()

		return viewHistory(cmd.Context(), s.SubmissionRepo(), id, cmd.OutOrStdout())
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries")
	historyCmd.Flags().String("kind", "", "Only show form or name attempts")
	historyCmd.Flags().String("session", "", "Only show attempts of one form session")
	historyCmd.AddCommand(historyViewCmd)
}

func listHistory(ctx context.Context, repo store.SubmissionRepo, opts store.QueryOpts, kind string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	events, err := repo.QuerySubmissions(ctx, opts)
	if err != nil {
		return fmt.Errorf("query submissions: %w", err)
	}

	n := 0
	for _, e := range events {
		if kind != "" && e.Kind != kind {
			continue
		}
		if n == 0 {
			fmt.Fprintln(out, "  ID     Time             Kind  Outcome    Latency")
			fmt.Fprintln(out, strings.Repeat("─", 52))
		}
		fmt.Fprintln(out, history.Summary(e))
		n++
	}
	if n == 0 {
		fmt.Fprintln(out, "No submissions found.")
	}
	return nil
}

func viewHistory(ctx context.Context, repo store.SubmissionRepo, id int, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := repo.GetSubmission(ctx, id)
	if err != nil {
		return fmt.Errorf("get submission: %w", err)
	}
	if e == nil {
		return fmt.Errorf("submission %d not found", id)
	}

	fmt.Fprintf(out, "ID:        %d\n", e.ID)
	fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Kind:      %s\n", e.Kind)
	fmt.Fprintf(out, "Outcome:   %s\n", e.Outcome)
	fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, line := range history.Details(*e) {
		fmt.Fprintln(out, line)
	}
	return nil
}
