package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trip-engine/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a single trip from the command line",
	Long: `Plan runs one end-to-end planning pass without the HTTP service and
prints the resulting itinerary. Useful for smoke-testing provider and
model configuration.

Example:
  trip-engine plan --destination "Japan" --budget 150000 --days 5 \
      --start 2026-09-10 --travelers 2 --interests culture,food`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("destination", "", "destination city or country (required)")
	planCmd.Flags().String("origin", "", "origin city (default Delhi)")
	planCmd.Flags().Float64("budget", 0, "total trip budget in INR (required)")
	planCmd.Flags().Int("days", 0, "trip length in days (required)")
	planCmd.Flags().String("start", "", "start date, YYYY-MM-DD")
	planCmd.Flags().Int("travelers", 1, "number of travelers")
	planCmd.Flags().String("interests", "", "comma-separated interests (e.g. culture,food)")
	planCmd.Flags().String("accommodation", "", "accommodation category: budget, hotel, resort or luxury")
	planCmd.Flags().Int64("seed", 0, "fixed seed for reproducible sample output")
	planCmd.Flags().Bool("json", false, "print the full itinerary as JSON")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Fallback.Seed = seed
	}

	req := types.TripRequest{}
	req.Destination, _ = cmd.Flags().GetString("destination")
	req.Origin, _ = cmd.Flags().GetString("origin")
	req.Budget, _ = cmd.Flags().GetFloat64("budget")
	req.DurationDays, _ = cmd.Flags().GetInt("days")
	req.StartDate, _ = cmd.Flags().GetString("start")
	req.Travelers, _ = cmd.Flags().GetInt("travelers")
	req.AccommodationType, _ = cmd.Flags().GetString("accommodation")
	if interests, _ := cmd.Flags().GetString("interests"); interests != "" {
		for _, s := range strings.Split(interests, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Interests = append(req.Interests, s)
			}
		}
	}

	logger := newLogger()
	planner := buildPlanner(cfg, logger)

	itin, err := planner.Build(cmd.Context(), req)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(itin)
	}

	printItinerary(itin)
	return nil
}

// printItinerary writes a human-readable summary to stdout.
func printItinerary(itin *types.Itinerary) {
	fmt.Printf("Trip to %s (%d days, %.0f %s total)\n\n",
		itin.Destination, itin.TotalDays, itin.TotalCost, itin.Currency)

	fmt.Printf("Flights [%s]: %d options\n", itin.Flights.Status, len(itin.Flights.Options))
	for i, f := range itin.Flights.Options {
		if i >= 3 {
			break
		}
		fmt.Printf("  %s  %.0f %s  score %.3f  %s\n",
			strings.Join(f.Airlines, "/"), f.Price, f.Currency, f.ValueScore, f.TotalDuration)
	}

	fmt.Printf("\nHotels [%s]: %d options\n", itin.Hotels.Status, len(itin.Hotels.Options))
	for i, h := range itin.Hotels.Options {
		if i >= 3 {
			break
		}
		fmt.Printf("  %-28s %.0f/night  %.1f★  score %.3f\n",
			h.Name, h.PricePerNight, h.Rating, h.ValueScore)
	}

	fmt.Println("\nDaily plan:")
	for _, day := range itin.DailyItinerary {
		fmt.Printf("  Day %d (%s): %d activities, %d meals, est. %.0f\n",
			day.Day, day.Date, len(day.Activities), len(day.Meals), day.EstimatedCost)
	}

	if len(itin.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range itin.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
}
