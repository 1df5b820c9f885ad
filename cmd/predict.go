package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/profile"
	"github.com/compasshq/compass/internal/ui/components"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict careers that fit your profile",
	Long: `Predict suitable careers from your profile and your saved quiz answers.

Flags left empty fall back to your saved profile when you are signed in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, envOptions{ai: true})
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireAI(); err != nil {
			return err
		}
		e.warnAnonymous(cmd)

		ctx := cmd.Context()
		var p profile.Profile
		if e.svc.Account != nil {
			if p, err = e.svc.Profiles.Get(ctx, e.svc.UserID()); err != nil {
				return err
			}
		}
		for flag, dst := range map[string]*string{
			"skills":     &p.Skills,
			"education":  &p.Education,
			"experience": &p.Experience,
			"interests":  &p.Interests,
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				*dst = v
			}
		}

		pred, err := e.svc.PredictCareers(ctx, p)
		if err != nil {
			return fmt.Errorf("%s", aiflow.UserMessage(err))
		}

		var md strings.Builder
		md.WriteString("# Your predicted careers\n\n")
		for i, c := range pred.Careers {
			fmt.Fprintf(&md, "%d. **%s**\n", i+1, c)
		}
		md.WriteString("\n## Why these careers\n\n")
		md.WriteString(pred.Reasoning)
		fmt.Fprintln(cmd.OutOrStdout(), components.RenderMarkdown(md.String(), 80))
		return nil
	},
}

func init() {
	predictCmd.Flags().String("skills", "", "Your skills and abilities")
	predictCmd.Flags().String("education", "", "Your education")
	predictCmd.Flags().String("experience", "", "Your work or volunteer experience")
	predictCmd.Flags().String("interests", "", "Your interests and hobbies")
}
