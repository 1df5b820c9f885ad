package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		users, err := e.svc.Auth.Users(cmd.Context())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No accounts yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-24s  %-32s  %-10s  %s\n", "ID", "Name", "Email", "Created", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, u := range users {
			status := "active"
			if u.Disabled {
				status = "disabled"
			}
			fmt.Fprintf(out, "%-5d  %-24s  %-32s  %-10s  %s\n",
				u.ID, truncate(u.Name, 24), truncate(u.Email, 32), u.CreatedAt.Local().Format("2006-01-02"), status)
		}
		return nil
	},
}

func setDisabledCmd(use, short string, disabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.svc.Auth.SetDisabled(cmd.Context(), args[0], disabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %sd.\n", args[0], use)
			return nil
		},
	}
}

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(setDisabledCmd("disable", "Disable an account so it can no longer sign in", true))
	userCmd.AddCommand(setDisabledCmd("enable", "Re-enable a disabled account", false))
}
