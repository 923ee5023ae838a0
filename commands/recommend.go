package commands

import (
	"github.com/spf13/cobra"

	"goginie/models"
)

var RecommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"rec"},
	Short:   "AI suggestions by mood or by traveller profile",
}

var recommendMoodCmd = &cobra.Command{
	Use:   "mood <mood> <location>",
	Short: "Suggest activities for how you feel right now",
	Long: `Suggest activities for a mood (adventurous, relaxed, romantic, hungry, tired
or energetic) at a location and time of day.

  goginie recommend mood relaxed Goa --time evening`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("time")
		format, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		recs, err := newPlanner(cmd.Context(), cfg).MoodRecommendations(cmd.Context(), models.MoodRequest{
			Mood:       models.Mood(args[0]),
			Location:   args[1],
			TimePeriod: models.TimePeriod(period),
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, recs, moodTable(recs))
	},
}

var recommendProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Hotels, restaurants and activities matched to your preferences",
	Long: `Score picks at a destination against a traveller profile. Takes the same
preference flags and --file as plan; only --to is required.

  goginie recommend profile --to Udaipur --style luxury --interests palaces,lakes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := preferencesFromFlags(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		recs, err := newPlanner(cmd.Context(), cfg).PersonalizedRecommendations(cmd.Context(), prefs)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, recs, profileTable(recs))
	},
}

func init() {
	recommendMoodCmd.Flags().String("time", "", "morning, afternoon, evening or night (default afternoon)")
	recommendMoodCmd.Flags().StringP("output", "o", outputTable, "output format: table, json or yaml")

	f := recommendProfileCmd.Flags()
	f.String("file", "", "YAML file with trip preferences")
	f.String("to", "", "destination")
	f.Int("days", 0, "trip length in days")
	f.Float64("budget", 0, "total budget in INR")
	f.Int("group", 1, "number of travellers")
	f.String("style", "", "budget, comfortable, luxury or backpacking")
	f.String("food", "", "food preference, e.g. vegetarian")
	f.StringSlice("interests", nil, "comma-separated interests")
	f.StringP("output", "o", outputTable, "output format: table, json or yaml")

	RecommendCmd.AddCommand(recommendMoodCmd, recommendProfileCmd)
}
