// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package itinerary

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/trip-engine/pkg/types"
)

// planningPromptTmpl asks the model to reason over the trip constraints
// before it sees any search results. Its output is narrative only; the
// structured document comes from the final prompt.
var planningPromptTmpl = template.Must(template.New("planning").Parse(`You are an expert travel planner specializing in trips within a fixed budget.

Plan a comprehensive {{.DurationDays}}-day trip to {{.Destination}} with the following requirements:

Budget: {{printf "%.0f" .Budget}} INR total
Travelers: {{.Travelers}} person(s)
Start date: {{if .StartDate}}{{.StartDate}}{{else}}Flexible{{end}}
Interests: {{.InterestsText}}
Accommodation type: {{.AccommodationType}}
Transport mode: {{.TransportMode}}
Special requirements: {{if .SpecialRequirements}}{{.SpecialRequirements}}{{else}}None{{end}}

Think through the trip step by step:
1. How the flight and accommodation shares of the budget should split.
2. Which activities match the interests: {{.InterestsText}}.
3. How to pace the days so travel time and costs stay realistic.

The total cost must not exceed {{printf "%.0f" .Budget}} INR.
`))

// finalPromptTmpl turns the gathered search results into the structured
// itinerary document. The model must answer with a single JSON object.
var finalPromptTmpl = template.Must(template.New("final").Parse(`Based on the following search results, create a detailed day-by-day itinerary:

{{.ToolResults}}

Respond with one JSON object and no other text, using this structure:
{
    "destination": "{{.Destination}}",
    "total_days": {{.DurationDays}},
    "total_cost": <calculated total in INR>,
    "currency": "INR",
    "daily_itinerary": [
        {
            "day": 1,
            "date": "{{if .StartDate}}{{.StartDate}}{{else}}Day 1{{end}}",
            "activities": [{"time": "09:00", "name": "...", "cost": 0}],
            "meals": [{"type": "lunch", "venue": "...", "cost": 0}],
            "estimated_cost": <cost for the day>
        }
    ],
    "cost_breakdown": {"flights": 0, "accommodation": 0, "activities": 0, "meals": 0},
    "recommendations": ["..."]
}

Use the flight and hotel options exactly as given; do not invent prices.
Make sure all costs fit within the budget of {{printf "%.0f" .Budget}} INR.
`))

type promptData struct {
	types.TripRequest
	InterestsText string
	ToolResults   string
}

func renderPrompt(tmpl *template.Template, req types.TripRequest, toolResults string) (string, error) {
	interests := "general sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, promptData{
		TripRequest:   req,
		InterestsText: interests,
		ToolResults:   toolResults,
	})
	if err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
