// Package ai implements the itinerary generator on top of the OpenAI chat
// completions API. All structured calls request JSON-object output and parse
// it into domain types; anything the API does that the caller cannot recover
// from (transport error, empty choice, unparseable JSON) is reported as
// domain.ErrGenerationFailed.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// Generator calls the OpenAI API. It is stateless and safe for concurrent
// use. The zero value is not usable; construct with NewGenerator.
type Generator struct {
	client openai.Client
	model  shared.ChatModel
	now    func() time.Time
}

// NewGenerator constructs a Generator. Pass the API key and model from
// config; an empty key produces a Generator whose calls fail with
// domain.ErrGenerationFailed rather than a construction error, so the rest
// of the app can boot without credentials.
func NewGenerator(apiKey, model string) *Generator {
	return &Generator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  shared.ChatModel(model),
		now:    time.Now,
	}
}

// Itinerary turns a free-form travel request into a reply and, when the user
// asked for a plan, a full generated trip.
func (g *Generator) Itinerary(ctx context.Context, userMessage string, prefs *domain.Preferences) (domain.ItineraryResult, error) {
	var result domain.ItineraryResult
	err := g.completeJSON(ctx, itinerarySystemPrompt(g.now(), prefs), userMessage, &result)
	if err != nil {
		return domain.ItineraryResult{}, fmt.Errorf("ai.Generator.Itinerary: %w", err)
	}
	if result.Response == "" && result.Trip == nil {
		return domain.ItineraryResult{}, fmt.Errorf("ai.Generator.Itinerary: %w: empty result", domain.ErrGenerationFailed)
	}
	return result, nil
}

// PivotProposal synthesizes a low-energy replacement for the given activity
// under the supplied conditions.
func (g *Generator) PivotProposal(ctx context.Context, activity domain.Activity, pctx domain.PivotContext) (domain.PivotProposal, error) {
	prompt := fmt.Sprintf(`The group is feeling %s.

Current planned activity: %s (%s) at %s.
Location: %s
Budget Remaining: $%.2f

Generate a pivot proposal:
{
  "proposal": "...",
  "newActivity": {
    "title": "...",
    "description": "...",
    "category": "activity|restaurant|relaxation",
    "location": "...",
    "cost": number,
    "duration": "..."
  }
}`, pctx.GroupMood, activity.Title, activity.Category, activity.Time,
		pctx.Location, pctx.BudgetRemaining)

	var proposal domain.PivotProposal
	if err := g.completeJSON(ctx, "", prompt, &proposal); err != nil {
		return domain.PivotProposal{}, fmt.Errorf("ai.Generator.PivotProposal: %w", err)
	}
	if proposal.NewActivity.Title == "" {
		return domain.PivotProposal{}, fmt.Errorf("ai.Generator.PivotProposal: %w: proposal has no replacement activity", domain.ErrGenerationFailed)
	}
	return proposal, nil
}

// Adaptations produces free-text suggestions for adjusting the listed
// activities to current conditions. This is the one call that wants prose,
// so it skips the JSON response format.
func (g *Generator) Adaptations(ctx context.Context, activitiesText string, actx domain.AdaptContext) (string, error) {
	prompt := fmt.Sprintf(`Given the current itinerary and context, suggest adaptations:

Current Activities:
%s

Context:
- Weather: %s
- Current Time: %s
- Budget Remaining: $%.2f

Provide 2-3 smart alternative suggestions that adapt to the current conditions.`,
		activitiesText, orUnknown(actx.Weather), orUnknown(actx.Time), actx.BudgetRemaining)

	text, err := g.complete(ctx, "", prompt, false)
	if err != nil {
		return "", fmt.Errorf("ai.Generator.Adaptations: %w", err)
	}
	return text, nil
}

// CarePlan produces a wellness micro-itinerary for one unwell traveller.
func (g *Generator) CarePlan(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error) {
	if currentActivity == "" {
		currentActivity = "general sightseeing"
	}
	prompt := fmt.Sprintf(`You are a travel wellness engine.

User reported: %q
Trip destination: %s
Current activity: %s

Generate a wellness micro-itinerary in JSON ONLY using this schema:

{
  "condition": "...",
  "personalPlan": [
    {
      "title": "...",
      "description": "...",
      "recommendedDuration": "...",
      "placeType": "...",
      "imageKeyword": "...",
      "coordinates": { "lat": 0, "lng": 0 }
    }
  ],
  "groupPlan": [
    {
      "title": "...",
      "description": "...",
      "recommendedAdjustment": "...",
      "reasoning": "...",
      "imageKeyword": "..."
    }
  ],
  "recheckInMinutes": 30
}

Rules:
- personalPlan MUST be calm, gentle, safe.
- groupPlan MUST adjust trip minimally.
- Always produce valid JSON.
- Be empathetic but concise.`, condition, destination, currentActivity)

	var plan domain.CarePlan
	if err := g.completeJSON(ctx, "", prompt, &plan); err != nil {
		return domain.CarePlan{}, fmt.Errorf("ai.Generator.CarePlan: %w", err)
	}
	if len(plan.PersonalPlan) == 0 {
		return domain.CarePlan{}, fmt.Errorf("ai.Generator.CarePlan: %w: plan has no steps", domain.ErrGenerationFailed)
	}
	return plan, nil
}

// completeJSON runs a chat completion in JSON-object mode and unmarshals the
// reply into out.
func (g *Generator) completeJSON(ctx context.Context, system, user string, out any) error {
	text, err := g.complete(ctx, system, user, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: unparseable model output: %v", domain.ErrGenerationFailed, err)
	}
	return nil
}

func (g *Generator) complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	params := openai.ChatCompletionNewParams{
		Model:    g.model,
		Messages: messages,
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: model returned no content", domain.ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

func itinerarySystemPrompt(now time.Time, prefs *domain.Preferences) string {
	var b strings.Builder
	today := now.Format("2006-01-02")
	year := now.Year()

	fmt.Fprintf(&b, `You are an expert travel assistant that creates personalized, adaptive, and wellness-aware itineraries.

IMPORTANT CONTEXT:
- Today's date is: %s
- Current year: %d
- All trip dates MUST be in %d or later, never in past years
`, today, year, year)

	if prefs != nil {
		fmt.Fprintf(&b, `
User Preferences:
- Budget: %s
- Interests: %s
- Dietary: %s
- Pace: %s
- Travel Style: %s
`, orFlexible(prefs.Budget), joinOr(prefs.Interests, "general"),
			joinOr(prefs.Dietary, "none"), orFlexible(prefs.Pace), orFlexible(prefs.TravelStyle))
	}

	fmt.Fprintf(&b, `
If the user is requesting a trip plan (e.g., "Plan a trip to Paris"), respond ONLY with:

{
  "response": "Short warm summary",
  "trip": {
    "destination": "City, Country",
    "coordinates": { "lat": 0.0, "lng": 0.0 },
    "startDate": "YYYY-MM-DD",
    "endDate": "YYYY-MM-DD",
    "budget": number,
    "activities": [
      {
        "day": 1,
        "title": "Activity Title",
        "description": "Inviting, vivid description",
        "category": "activity|restaurant|accommodation|transport",
        "time": "HH:MM",
        "duration": "X hours",
        "location": "Place name",
        "coordinates": { "lat": 0.0, "lng": 0.0 },
        "imageKeyword": "Eiffel Tower sunset",
        "cost": number,
        "orderIndex": 0,
        "shadowOption": {
          "title": "Relax Alternative",
          "description": "Alternative low-energy option",
          "category": "activity|restaurant",
          "time": "HH:MM",
          "duration": "X hours",
          "location": "Place name",
          "coordinates": { "lat": 0.0, "lng": 0.0 },
          "cost": number
        }
      }
    ]
  }
}

If the user is just chatting, respond with {"response": "..."} and no trip.

Rules:
1. Every activity MUST have realistic coordinates.
2. Shadow options MUST exist for strenuous activities.
3. JSON ONLY.
4. CRITICAL: startDate and endDate MUST be %s or later.`, today)

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func orFlexible(s string) string {
	if s == "" {
		return "flexible"
	}
	return s
}

func joinOr(ss []string, fallback string) string {
	if len(ss) == 0 {
		return fallback
	}
	return strings.Join(ss, ", ")
}
