package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"zephyr/internal/ai"
	"zephyr/internal/weather"
)

// extractionSchema is the JSON shape the model is asked to fill in.
const extractionSchema = `{
    "weather_report": {
        "general_conversation": boolean,
        "use_device_location": boolean,
        "device_location_available": boolean,
        "weather_report_requested": boolean,
        "general_weather_request": boolean,
        "specific_days": [string],
        "temperature_avg": boolean,
        "top_temperature": boolean,
        "lowest_temperature": boolean,
        "feels_like_temperature": boolean,
        "wind_speed": boolean,
        "uv_index": boolean,
        "rain": boolean,
        "cloud_coverage": boolean,
        "visibility": boolean,
        "asked_location": string,
        "user_has_made_mistake": boolean
    }
}`

// Extractor turns a user message into an Intent via the completion service.
type Extractor struct {
	completer ai.Completer
}

func NewExtractor(completer ai.Completer) *Extractor {
	return &Extractor{completer: completer}
}

// Extract builds the schema-eliciting prompt, submits it, parses the reply,
// and applies the correction pass. deviceLocationAvailable is the
// caller-supplied ground truth; the model's own claim about it is discarded.
func (e *Extractor) Extract(ctx context.Context, userMessage string, deviceLocationAvailable bool) (Intent, error) {
	raw, err := e.completer.Complete(ctx, buildExtractionPrompt(userMessage))
	if err != nil {
		return Intent{}, fmt.Errorf("intent: completion: %w", err)
	}

	cleaned := stripFormatting(raw)

	var extraction rawExtraction
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&extraction); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return correct(extraction.WeatherReport, deviceLocationAvailable), nil
}

func buildExtractionPrompt(userMessage string) string {
	return fmt.Sprintf(`This is the user's request: %s.
Please distill into this JSON format what they want: %s.
Here are the rules for this JSON; it is paramount you do not deviate from them:
- if the user has asked for the weather and no specific details, general_weather_request is true.
- general_conversation is true when the user has made any request that does not involve the weather.
- specific_days is for phrases or words like "today", "tomorrow", "Friday and Saturday".
- weather_report_requested and general_conversation cannot both be true.
- a message like "what is the weather at my current location" means use_device_location is true.
- a message like "hello" or "how are you?" is general conversation.
- asked_location is the place name the user mentioned, or an empty string.
- set user_has_made_mistake when the request is contradictory or cannot be understood.
- Respond with only the JSON. Do not give an explanation.`, userMessage, extractionSchema)
}

// stripFormatting removes the markdown wrappers the completion service may
// put around structured output (code fences and language tags).
func stripFormatting(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "json") {
		input = strings.TrimSpace(strings.TrimPrefix(input, "json"))
	}
	return input
}

// correct removes contradictions the model tends to introduce:
//   - a named place always implies a concrete weather lookup, so it forces
//     general conversation and device location off;
//   - the day list is never empty, defaulting to today;
//   - device availability is an out-of-band fact the model cannot know, so
//     the caller's value always wins;
//   - the two top-level classifications are mutually exclusive, with the
//     weather request winning a tie.
func correct(raw rawWeatherReport, deviceLocationAvailable bool) Intent {
	it := Intent{
		GeneralConversation:     raw.GeneralConversation,
		WeatherRequested:        raw.WeatherReportRequested,
		UseDeviceLocation:       raw.UseDeviceLocation,
		DeviceLocationAvailable: deviceLocationAvailable,
		NamedLocation:           strings.TrimSpace(raw.AskedLocation),
		Days:                    raw.SpecificDays,
		Fields:                  raw.fields(),
		Ambiguous:               raw.UserHasMadeMistake,
	}

	if it.NamedLocation != "" {
		it.GeneralConversation = false
		it.UseDeviceLocation = false
		it.WeatherRequested = true
	}

	if it.WeatherRequested {
		it.GeneralConversation = false
	}

	if len(it.Days) == 0 {
		it.Days = []string{"today"}
	}

	// A weather request with no recognized flags still needs something to
	// fetch; treat it as a general request.
	if it.WeatherRequested && len(it.Fields) == 0 {
		it.Fields = append(it.Fields, weather.AllFields...)
	}

	return it
}
