package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/auth"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local data: accounts, history and LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes every account and all history; re-run with --yes to confirm")
		}

		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}
		if err := auth.ClearToken(e.svc.TokenPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All local data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
