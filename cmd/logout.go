package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the remembered session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if e.svc.Account == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		name := e.svc.UserName()
		e.svc.SignOut(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s.\n", name)
		return nil
	},
}
