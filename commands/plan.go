package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"goginie/models"
	"goginie/orchestrator"
)

var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip, review it and book on approval",
	Long: `Plan a trip from flags or a YAML file, show the plan with its total cost
and ask for approval before booking. --yes approves without asking.

  goginie plan --from Delhi --to Goa --days 3 --budget 60000 --group 2 --date 2026-11-20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := preferencesFromFlags(cmd)
		if err != nil {
			return err
		}
		opts := planOptions{}
		opts.yes, _ = cmd.Flags().GetBool("yes")
		opts.format, _ = cmd.Flags().GetString("output")
		opts.pdf, _ = cmd.Flags().GetString("pdf")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		_, err = runPlan(cmd.Context(), a.agent, prefs, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		return err
	},
}

type planOptions struct {
	yes    bool
	format string
	pdf    string
}

// runPlan drives one run through review and, on approval, booking.
func runPlan(ctx context.Context, agent *orchestrator.Agent, prefs models.TripPreferences, opts planOptions, in io.Reader, out io.Writer) (orchestrator.Run, error) {
	run, err := agent.Start(ctx, prefs)
	if err != nil {
		return run, err
	}
	if run.Phase == orchestrator.PhaseError {
		return run, fmt.Errorf("%s: %s", run.Error, run.ErrorDetail)
	}

	if err := writeOutput(out, opts.format, run, runTable(run)); err != nil {
		return run, err
	}

	approved := opts.yes
	if !approved {
		approved, err = confirm(in, out, "Approve and book this trip? [y/N] ")
		if err != nil {
			return run, err
		}
	}

	if approved {
		run, err = agent.Approve(ctx, run.ID)
	} else {
		run, err = agent.Reject(run.ID)
	}
	if err != nil {
		return run, err
	}

	fmt.Fprintln(out)
	if err := writeOutput(out, opts.format, run, runTable(run)); err != nil {
		return run, err
	}

	if opts.pdf != "" {
		data, err := orchestrator.SummaryPDF(run)
		if err != nil {
			return run, err
		}
		if err := os.WriteFile(opts.pdf, data, 0o644); err != nil {
			return run, err
		}
		fmt.Fprintf(out, "✅ Trip summary written to %s\n", opts.pdf)
	}
	return run, nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// preferencesFromFlags reads --file first and lets explicit flags override it.
func preferencesFromFlags(cmd *cobra.Command) (models.TripPreferences, error) {
	var prefs models.TripPreferences
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		p, err := loadPreferences(path)
		if err != nil {
			return prefs, err
		}
		prefs = p
	}

	flags := cmd.Flags()
	if flags.Changed("to") {
		prefs.Destination, _ = flags.GetString("to")
	}
	if flags.Changed("from") {
		prefs.StartLocation, _ = flags.GetString("from")
	}
	if flags.Changed("days") {
		prefs.Duration, _ = flags.GetInt("days")
	}
	if flags.Changed("budget") {
		prefs.Budget, _ = flags.GetFloat64("budget")
	}
	if flags.Changed("group") {
		prefs.GroupSize, _ = flags.GetInt("group")
	}
	if flags.Changed("style") {
		s, _ := flags.GetString("style")
		prefs.TravelStyle = models.TravelStyle(s)
	}
	if flags.Changed("food") {
		prefs.FoodPreference, _ = flags.GetString("food")
	}
	if flags.Changed("transport") {
		t, _ := flags.GetString("transport")
		prefs.TransportPreference = models.TransportMode(t)
	}
	if flags.Changed("interests") {
		prefs.Interests, _ = flags.GetStringSlice("interests")
	}
	if flags.Changed("date") {
		prefs.DepartureDate, _ = flags.GetString("date")
	}
	if flags.Changed("return") {
		prefs.ReturnDate, _ = flags.GetString("return")
	}
	return prefs, nil
}

func loadPreferences(path string) (models.TripPreferences, error) {
	var prefs models.TripPreferences
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return prefs, nil
}

func init() {
	f := PlanCmd.Flags()
	f.String("file", "", "YAML file with trip preferences")
	f.String("to", "", "destination")
	f.String("from", "", "start location")
	f.Int("days", 0, "trip length in days")
	f.Float64("budget", 0, "total budget in INR")
	f.Int("group", 1, "number of travellers")
	f.String("style", "", "budget, comfortable, luxury or backpacking")
	f.String("food", "", "food preference, e.g. vegetarian")
	f.String("transport", "", "flight, train, bus, car or mixed")
	f.StringSlice("interests", nil, "comma-separated interests")
	f.String("date", "", "departure date (YYYY-MM-DD)")
	f.String("return", "", "return date (YYYY-MM-DD)")
	f.BoolP("yes", "y", false, "approve the plan without asking")
	f.StringP("output", "o", outputTable, "output format: table, json or yaml")
	f.String("pdf", "", "write a trip summary PDF to this path")
}
