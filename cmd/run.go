package cmd

import (
	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := newEnv(cmd, envOptions{interactive: true, ai: true})
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(e.svc)
}
