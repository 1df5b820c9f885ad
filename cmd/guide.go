package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/guidance"
	"github.com/compasshq/compass/internal/ui/components"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Get personalized guidance on the careers you are weighing",
	Long: `Generate guidance comparing career options against your preferences.

Without --careers, the careers of your latest prediction are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		careers, _ := cmd.Flags().GetString("careers")
		impact, _ := cmd.Flags().GetInt("impact")
		location, _ := cmd.Flags().GetString("location")
		finances, _ := cmd.Flags().GetString("finances")
		personality, _ := cmd.Flags().GetString("personality")

		e, err := newEnv(cmd, envOptions{ai: true})
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireAI(); err != nil {
			return err
		}
		e.warnAnonymous(cmd)

		in := guidance.Input{
			CareerOptions:          guidance.SplitOptions(careers),
			SocialImpactImportance: impact,
			GeographicalPreference: location,
			FinancialGoals:         finances,
			PersonalityTraits:      personality,
		}
		if len(in.CareerOptions) == 0 {
			in.CareerOptions = e.svc.SuggestedCareers(cmd.Context())
		}
		if _, err := in.Normalize(); err != nil {
			return fmt.Errorf("%s", aiflow.UserMessage(err))
		}

		g, err := e.svc.Guide(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("%s", aiflow.UserMessage(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), components.RenderMarkdown(g.Text, 80))
		return nil
	},
}

func init() {
	guideCmd.Flags().StringP("careers", "c", "", "Comma separated career options")
	guideCmd.Flags().Int("impact", 3, "Importance of social impact, 1-5")
	guideCmd.Flags().String("location", "", "Geographical preference")
	guideCmd.Flags().String("finances", "", "Financial goals")
	guideCmd.Flags().String("personality", "", "Personality traits")
}
