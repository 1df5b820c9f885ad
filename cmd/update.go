package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update compass to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")
		out := cmd.OutOrStdout()

		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version, TargetVersion: tag},
			func(p selfupdate.UpdateProgress) { fmt.Fprintln(out, p.Message) })
		return updateOutcome(out, err)
	},
}

// updateOutcome reports the benign outcomes and decorates the rest.
func updateOutcome(out io.Writer, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintln(out, "Already running the latest version.")
		return nil
	case errors.Is(err, selfupdate.ErrInvalidTag):
		return fmt.Errorf("%w (example: --tag v1.4.0)", err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w\n\nTry running: sudo compass update", err)
	}
	return err
}

func init() {
	updateCmd.Flags().String("tag", "", "Install this release tag instead of the latest")
}
