// Package speaker is the fulfilment engine: it takes a corrected intent,
// chooses a terminal outcome, gathers whatever forecast data that outcome
// needs, and synthesizes the final reply through the completion service.
package speaker

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	"zephyr/internal/ai"
	"zephyr/internal/conversation"
	"zephyr/internal/intent"
	"zephyr/internal/weather"
)

// GeoResolver is the geocoding collaborator the engine depends on.
type GeoResolver interface {
	Forward(ctx context.Context, name string) (lat, lng float64, display string, err error)
}

// Request is one inbound message with its session signals.
type Request struct {
	Message         string
	NewConversation bool
	CallerName      string

	// DeviceLocation is the raw device-location string: either the literal
	// "None" or a JSON document carrying coords.latitude/coords.longitude.
	DeviceLocation string
}

// Service handles one conversation session. Messages are processed to
// completion one at a time; the mutex enforces the single-writer model.
type Service struct {
	completer ai.Completer
	extractor *intent.Extractor
	geo       GeoResolver
	primary   weather.ForecastProvider
	secondary weather.ForecastProvider
	log       *conversation.Log

	mu  sync.Mutex
	now func() time.Time
}

func NewService(completer ai.Completer, geo GeoResolver, primary, secondary weather.ForecastProvider) *Service {
	return &Service{
		completer: completer,
		extractor: intent.NewExtractor(completer),
		geo:       geo,
		primary:   primary,
		secondary: secondary,
		log:       conversation.NewLog(),
		now:       time.Now,
	}
}

// Communicate processes one user message end to end and returns the reply
// text. It never returns an error: every failure folds into one of the
// fixed user-facing replies. Both turns are appended to the session log.
func (s *Service) Communicate(ctx context.Context, req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.NewConversation {
		s.log.Reset()
		log.Printf("speaker: new conversation session %s", s.log.SessionID())
	}

	deviceCoords, available := parseDeviceLocation(req.DeviceLocation)

	var reply string
	it, err := s.extractor.Extract(ctx, req.Message, available)
	if err != nil {
		log.Printf("speaker: extraction failed: %v", err)
		reply = s.completeOr(ctx, errorPrompt, fallbackError)
	} else {
		reply = s.fulfil(ctx, it, req, deviceCoords)
	}

	s.log.Append(conversation.SpeakerUser, req.Message)
	s.log.Append(conversation.SpeakerAssistant, reply)
	return reply
}

func (s *Service) fulfil(ctx context.Context, it intent.Intent, req Request, deviceCoords *weather.Coordinates) string {
	entries := s.log.Render()
	greeting := s.greetingLine()
	now := s.now()

	switch out := classify(it, deviceCoords); out.kind {
	case outcomeConversational:
		return s.completeOr(ctx,
			conversationalPrompt(req.Message, req.CallerName, greeting, entries, now),
			fallbackError)

	case outcomeSingleForecast:
		start, end := intent.ResolveDays(it.Days, now)
		series, err := s.primary.Forecast(ctx, out.coords, it.Fields, start, end)
		if err != nil {
			log.Printf("speaker: primary forecast failed: %v", err)
			return s.completeOr(ctx, errorPrompt, fallbackError)
		}
		return s.completeOr(ctx,
			forecastPrompt(req.Message, req.CallerName, "", greeting, series, nil, entries, now),
			fallbackError)

	case outcomeReconciledForecast:
		start, end := intent.ResolveDays(it.Days, now)
		lat, lng, display, err := s.geo.Forward(ctx, out.place)
		if err != nil {
			log.Printf("speaker: geocoding %q failed: %v", out.place, err)
			return s.completeOr(ctx, errorPrompt, fallbackError)
		}

		coords := weather.Coordinates{Lat: lat, Lng: lng}
		primary, secondary, err := s.fetchBoth(ctx, coords, it.Fields, start, end)
		if err != nil {
			log.Printf("speaker: provider fetch failed: %v", err)
			return s.completeOr(ctx, errorPrompt, fallbackError)
		}

		diffs := weather.Reconcile(primary, secondary)
		return s.completeOr(ctx,
			forecastPrompt(req.Message, req.CallerName, display, greeting, primary, diffs, entries, now),
			fallbackError)

	case outcomeNeedsLocation:
		return s.completeOr(ctx, noLocationPrompt, fallbackNoLocation)

	case outcomeNeedsRetry:
		return s.completeOr(ctx, confusedPrompt, fallbackConfused)

	default:
		return s.completeOr(ctx, errorPrompt, fallbackError)
	}
}

// fetchBoth queries the primary and secondary providers concurrently and
// joins before returning. Either failure aborts the fulfilment; no partial
// reply is synthesized from incomplete data.
func (s *Service) fetchBoth(ctx context.Context, coords weather.Coordinates, fields []weather.Field, start, end time.Time) (weather.ForecastSeries, weather.ForecastSeries, error) {
	var (
		wg                       sync.WaitGroup
		primarySer, secondarySer weather.ForecastSeries
		primaryErr, secondaryErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		primarySer, primaryErr = s.primary.Forecast(ctx, coords, fields, start, end)
	}()
	go func() {
		defer wg.Done()
		secondarySer, secondaryErr = s.secondary.Forecast(ctx, coords, fields, start, end)
	}()
	wg.Wait()

	if primaryErr != nil {
		return weather.ForecastSeries{}, weather.ForecastSeries{}, primaryErr
	}
	if secondaryErr != nil {
		return weather.ForecastSeries{}, weather.ForecastSeries{}, secondaryErr
	}
	return primarySer, secondarySer, nil
}

// completeOr asks the completion service for the reply and falls back to a
// fixed string when the service itself fails.
func (s *Service) completeOr(ctx context.Context, prompt, fallback string) string {
	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("speaker: completion failed: %v", err)
		return fallback
	}
	return reply
}

func (s *Service) greetingLine() string {
	if s.log.FirstTurn() {
		return "This is a new conversation, please make sure to greet the user."
	}
	return "You have spoken to this user before, you do not need to greet them."
}

// deviceLocationPayload is the nested structure mobile clients send.
type deviceLocationPayload struct {
	Coords struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coords"`
}

// parseDeviceLocation decodes the raw device-location string. The literal
// "None" means "not provided" and must not be parsed as JSON. Coordinates
// are rounded to two decimals before use.
func parseDeviceLocation(raw string) (*weather.Coordinates, bool) {
	if raw == "" || raw == "None" {
		return nil, false
	}
	var payload deviceLocationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Printf("speaker: malformed device location: %v", err)
		return nil, false
	}
	return &weather.Coordinates{
		Lat: round2(payload.Coords.Latitude),
		Lng: round2(payload.Coords.Longitude),
	}, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
