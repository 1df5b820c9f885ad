package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireAccount(); err != nil {
			return err
		}

		st, err := e.svc.History.QuizStats(cmd.Context(), e.svc.UserID())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Quizzes taken:    %d\n", st.Attempts)
		fmt.Fprintf(out, "Answers correct:  %d of %d", st.Correct, st.Answered)
		if st.Answered > 0 {
			fmt.Fprintf(out, " (%.0f%%)", float64(st.Correct)/float64(st.Answered)*100)
		}
		fmt.Fprintln(out)
		return nil
	},
}
