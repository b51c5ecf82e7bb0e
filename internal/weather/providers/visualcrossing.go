package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"zephyr/internal/weather"
)

// VisualCrossingProvider implements weather.ForecastProvider for the
// Visual Crossing timeline API. It plays the secondary, corroborating
// source; its nulls become missing samples rather than zeros so that
// reconciliation can tell "absent" apart from "disagrees".
type VisualCrossingProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewVisualCrossingProvider(client *http.Client, apiKey string) *VisualCrossingProvider {
	return &VisualCrossingProvider{
		name:    "visual-crossing",
		apiKey:  apiKey,
		baseURL: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("visual-crossing"),
	}
}

func (p *VisualCrossingProvider) Name() string {
	return p.name
}

// vcHour is one hourly record in a timeline response. Visual Crossing
// encodes the hour separately from the day ("HH:MM:SS" under a day's
// "YYYY-MM-DD"), so timestamps are reassembled at decode time.
type vcHour struct {
	Datetime   string   `json:"datetime"`
	Temp       *float64 `json:"temp"`
	FeelsLike  *float64 `json:"feelslike"`
	WindSpeed  *float64 `json:"windspeed"`
	UVIndex    *float64 `json:"uvindex"`
	Precip     *float64 `json:"precip"`
	CloudCover *float64 `json:"cloudcover"`
	Visibility *float64 `json:"visibility"`
}

func (h vcHour) value(field weather.Field) *float64 {
	switch field {
	case weather.FieldAvgTemp, weather.FieldMaxTemp, weather.FieldMinTemp:
		return h.Temp
	case weather.FieldFeelsLike:
		return h.FeelsLike
	case weather.FieldWindSpeed:
		return h.WindSpeed
	case weather.FieldUVIndex:
		return h.UVIndex
	case weather.FieldPrecipitation:
		return h.Precip
	case weather.FieldCloudCover:
		return h.CloudCover
	case weather.FieldVisibility:
		return h.Visibility
	default:
		return nil
	}
}

func (p *VisualCrossingProvider) Forecast(ctx context.Context, coords weather.Coordinates, fields []weather.Field, start, end time.Time) (weather.ForecastSeries, error) {
	if p.apiKey == "" {
		return weather.ForecastSeries{}, fmt.Errorf("visual-crossing: api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("unitGroup", "metric")
		values.Set("include", "hours")
		values.Set("timezone", "Z")

		u := fmt.Sprintf("%s/%f,%f/%s/%s?%s",
			p.baseURL,
			coords.Lat, coords.Lng,
			start.UTC().Format("2006-01-02"),
			end.UTC().Format("2006-01-02"),
			values.Encode(),
		)
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("visual-crossing: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Days []struct {
			Datetime string   `json:"datetime"`
			Hours    []vcHour `json:"hours"`
		} `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("visual-crossing: decode: %w", err)
	}

	series := weather.ForecastSeries{
		Provider: p.name,
		Samples:  make(map[weather.Field][]weather.Sample, len(fields)),
	}

	for _, field := range fields {
		var samples []weather.Sample
		for _, day := range payload.Days {
			for _, hour := range day.Hours {
				ts, err := time.ParseInLocation("2006-01-02 15:04:05", day.Datetime+" "+hour.Datetime, time.UTC)
				if err != nil {
					continue
				}
				s := weather.Sample{Time: ts}
				if v := hour.value(field); v != nil {
					s.Value = *v
				} else {
					s.Missing = true
				}
				samples = append(samples, s)
			}
		}
		if len(samples) == 0 {
			continue
		}
		series.Fields = append(series.Fields, field)
		series.Samples[field] = samples
	}

	return series, nil
}
