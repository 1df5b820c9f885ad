package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/quiz"
	"github.com/compasshq/compass/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your past quizzes, predictions and guidance",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireAccount(); err != nil {
			return err
		}

		ctx := cmd.Context()
		opts := store.QueryOpts{UserID: e.svc.UserID(), Limit: limit}
		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 72)

		recs, err := e.svc.History.QuizResults(ctx, opts)
		if err != nil {
			return fmt.Errorf("query quiz results: %w", err)
		}
		results, err := quiz.FromRecords(recs)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Quizzes")
		fmt.Fprintln(out, sep)
		if len(results) == 0 {
			fmt.Fprintln(out, "No quizzes yet.")
		}
		for _, r := range results {
			fmt.Fprintf(out, "%-16s  %-20s  %-6s  %3d/%-3d  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(r.TopicName, 20),
				r.Difficulty, r.Score, r.Total, r.QuizTitle)
		}

		preds, err := e.svc.History.Predictions(ctx, opts)
		if err != nil {
			return fmt.Errorf("query predictions: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Career Predictions")
		fmt.Fprintln(out, sep)
		if len(preds) == 0 {
			fmt.Fprintln(out, "No predictions yet.")
		}
		for _, p := range preds {
			fmt.Fprintf(out, "%-16s  %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"), strings.Join(p.Careers, ", "))
		}

		guides, err := e.svc.History.Guidances(ctx, opts)
		if err != nil {
			return fmt.Errorf("query guidance: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Guidance")
		fmt.Fprintln(out, sep)
		if len(guides) == 0 {
			fmt.Fprintln(out, "No guidance yet.")
		}
		for _, g := range guides {
			fmt.Fprintf(out, "%-16s  %s\n", g.CreatedAt.Local().Format("2006-01-02 15:04"), strings.Join(g.CareerOptions, ", "))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Entries to show per section")
}
