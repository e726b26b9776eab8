package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kataras/golog"
	"github.com/smallnest/langgraphgo/graph"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// The recommendation collaborator. This service never reasons about travel
// itself: it assembles a role/goal/instructions prompt deterministically and
// delegates to an agent graph whose single analyze node calls the language
// model. Callers decide what a failure means (fallback text vs. hard error).

// Fallback strings surfaced by the flight/hotel paths when the collaborator
// fails or there is nothing to analyze.
const (
	RecommendationUnavailable = "AI recommendation temporarily unavailable."
	NoFlightsFound            = "No flights found matching your criteria. Please try different dates or airports."
	NoHotelsFound             = "No hotels found matching your criteria. Please try different dates or location."
)

type AgentClient struct {
	llm   llms.Model
	model string
}

var agentClient *AgentClient

func InitAgent() {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-3.0-pro"
	}

	agentClient = &AgentClient{model: model}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		golog.Warn("GEMINI_API_KEY not set — recommendations will use fallback text")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		golog.Errorf("failed to initialize LLM: %v", err)
		return
	}

	agentClient.llm = llm
	golog.Infof("agent collaborator initialized with model %s", model)
}

func GetAgentClient() *AgentClient {
	return agentClient
}

// ─── Agent Delegation ─────────────────────────────────────────────────────────

// generate compiles a one-node state graph around the model and runs the
// assembled prompt through it. The graph call is blocking; the serving
// goroutine is the offload boundary.
func (c *AgentClient) generate(ctx context.Context, role, goal, instructions, data string) (string, error) {
	if c == nil || c.llm == nil {
		return "", fmt.Errorf("agent not configured")
	}

	prompt := buildAgentPrompt(role, goal, instructions, data)

	g := graph.NewStateGraph[any]()
	g.AddNode("analyze", "runs the travel analysis prompt through the model",
		func(ctx context.Context, state any) (any, error) {
			p, ok := state.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected agent state %T", state)
			}
			return llms.GenerateFromSinglePrompt(ctx, c.llm, p)
		})
	g.AddEdge("analyze", graph.END)
	g.SetEntryPoint("analyze")

	runnable, err := g.Compile()
	if err != nil {
		return "", fmt.Errorf("agent graph compile failed: %w", err)
	}

	out, err := runnable.Invoke(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("agent invocation failed: %w", err)
	}

	text, _ := out.(string)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response from agent")
	}
	return text, nil
}

// buildAgentPrompt assembles the delegation prompt. Deterministic: same
// inputs, same prompt.
func buildAgentPrompt(role, goal, instructions, data string) string {
	var b strings.Builder
	b.WriteString("Role: " + role + "\n")
	b.WriteString("Goal: " + goal + "\n\n")
	b.WriteString(strings.TrimSpace(instructions))
	if data != "" {
		b.WriteString("\n\nData to analyze:\n")
		b.WriteString(data)
	}
	return b.String()
}

// ─── Recommendation Prompts ───────────────────────────────────────────────────

// RecommendFlights asks the collaborator for a flight recommendation over the
// formatted flight data.
func (c *AgentClient) RecommendFlights(ctx context.Context, flightsText string, q FlightQuery) (string, error) {
	instructions := `Recommend the best flight from the available options, based on the details provided below:

**Reasoning for Recommendation:**
- **Price:** Explain why this flight offers the best value compared to the others.
- **Duration:** Explain why this flight has the best duration in comparison to others.
- **Stops:** Discuss why this flight has minimal or optimal stops.
- **Travel Class:** Describe why this flight provides the best comfort for the class booked.

Justify your choice with clear reasoning for each attribute. Do not repeat the flight details in your response.`

	if len(q.Preferences) > 0 {
		flightsText += "\n\nTraveler preferences: " + strings.Join(q.Preferences, ", ")
	}

	return c.generate(ctx,
		"AI Flight Analyst",
		"Analyze flight options and recommend the best one considering price, duration, stops, and overall convenience.",
		instructions,
		flightsText,
	)
}

// RecommendHotels asks the collaborator for a hotel recommendation over the
// formatted hotel data.
func (c *AgentClient) RecommendHotels(ctx context.Context, hotelsText string, q HotelQuery) (string, error) {
	instructions := `Generate a detailed recommendation for the best hotel from the options below. Your response should include clear reasoning based on:

- **Price:** Why the recommended hotel offers the best value for the amenities and services provided.
- **Rating:** Why its rating makes it the better overall guest experience.
- **Location:** Why its location is convenient for travelers.
- **Amenities:** How its amenities enhance the stay for different types of travelers.

Compare it against the other options and explain why it stands out. Keep the reasoning concise and well structured so a traveler can make an informed decision.`

	if len(q.Preferences) > 0 {
		hotelsText += "\n\nTraveler preferences: " + strings.Join(q.Preferences, ", ")
	}

	return c.generate(ctx,
		"AI Hotel Analyst",
		"Analyze hotel options and recommend the best one considering price, rating, location, and amenities.",
		instructions,
		hotelsText,
	)
}

// GenerateItinerary asks the collaborator for a day-by-day markdown itinerary.
// Unlike the recommendation paths, failures here propagate to the caller.
func (c *AgentClient) GenerateItinerary(ctx context.Context, destination, flightsText, hotelsText, checkIn, checkOut string, activities []string) (string, error) {
	days, err := TripDays(checkIn, checkOut)
	if err != nil {
		return "", err
	}

	activityNote := ""
	if len(activities) > 0 {
		activityNote = "\n**Requested Activities**: " + strings.Join(activities, ", ") + "\n"
	}

	instructions := fmt.Sprintf(`Based on the following details, create a %d-day itinerary for the user:

**Flight Details**:
%s

**Hotel Details**:
%s

**Destination**: %s

**Travel Dates**: %s to %s (%d days)
%s
The itinerary should include:
- Flight arrival and departure information
- Hotel check-in and check-out details
- Day-by-day breakdown of activities
- Must-visit attractions and estimated visit times
- Restaurant recommendations for meals
- Tips for local transportation

**Format Requirements**:
- Use markdown with clear headings (# for the title, ## for days, ### for sections)
- Use bullet points for listing activities
- Include estimated timings for each activity
- Keep the itinerary easy to read`,
		days, flightsText, hotelsText, destination, checkIn, checkOut, days, activityNote)

	return c.generate(ctx,
		"AI Travel Planner",
		"Create a detailed itinerary for the user based on flight and hotel information",
		instructions,
		"",
	)
}

// TripDays is the calendar-day difference between check-out and check-in.
func TripDays(checkIn, checkOut string) (int, error) {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0, fmt.Errorf("invalid check-in date: %w", err)
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return 0, fmt.Errorf("invalid check-out date: %w", err)
	}
	return int(out.Sub(in).Hours() / 24), nil
}
