package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"zephyr/internal/weather"
)

// openMeteoTimeLayout is the timestamp format Open-Meteo uses when asked
// for UTC timestamps.
const openMeteoTimeLayout = "2006-01-02T15:04"

// openMeteoParams maps requested fields onto Open-Meteo hourly variables.
// Max/min/avg temperature all resolve to the hourly temperature series;
// the synthesis step derives extremes from the raw samples.
var openMeteoParams = map[weather.Field]string{
	weather.FieldAvgTemp:       "temperature_2m",
	weather.FieldMaxTemp:       "temperature_2m",
	weather.FieldMinTemp:       "temperature_2m",
	weather.FieldFeelsLike:     "apparent_temperature",
	weather.FieldWindSpeed:     "wind_speed_10m",
	weather.FieldUVIndex:       "uv_index",
	weather.FieldPrecipitation: "precipitation",
	weather.FieldCloudCover:    "cloud_cover",
	weather.FieldVisibility:    "visibility",
}

// openMeteoDivisor rescales provider-native units to the shared metric
// scale. Visibility is the one hourly variable Open-Meteo reports in
// meters; the corroborating source reports kilometers.
var openMeteoDivisor = map[weather.Field]float64{
	weather.FieldVisibility: 1000,
}

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
// Open-Meteo is keyless and serves as the primary source.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "open-meteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("open-meteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, coords weather.Coordinates, fields []weather.Field, start, end time.Time) (weather.ForecastSeries, error) {
	hourlyVars := dedupeParams(fields, openMeteoParams)
	if len(hourlyVars) == 0 {
		return weather.ForecastSeries{}, fmt.Errorf("open-meteo: no requestable fields")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coords.Lat))
		values.Set("longitude", fmt.Sprintf("%f", coords.Lng))
		values.Set("hourly", strings.Join(hourlyVars, ","))
		values.Set("start_date", start.UTC().Format("2006-01-02"))
		values.Set("end_date", end.UTC().Format("2006-01-02"))
		values.Set("timezone", "UTC")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("open-meteo: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly map[string]json.RawMessage `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("open-meteo: decode: %w", err)
	}

	var rawTimes []string
	if err := json.Unmarshal(payload.Hourly["time"], &rawTimes); err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("open-meteo: time index: %w", err)
	}

	times := make([]time.Time, 0, len(rawTimes))
	for _, raw := range rawTimes {
		ts, err := time.ParseInLocation(openMeteoTimeLayout, raw, time.UTC)
		if err != nil {
			return weather.ForecastSeries{}, fmt.Errorf("open-meteo: bad timestamp %q: %w", raw, err)
		}
		times = append(times, ts)
	}

	series := weather.ForecastSeries{
		Provider: p.name,
		Samples:  make(map[weather.Field][]weather.Sample, len(fields)),
	}

	for _, field := range fields {
		param, ok := openMeteoParams[field]
		if !ok {
			continue
		}
		raw, ok := payload.Hourly[param]
		if !ok {
			continue
		}

		var values []*float64
		if err := json.Unmarshal(raw, &values); err != nil {
			return weather.ForecastSeries{}, fmt.Errorf("open-meteo: series %s: %w", param, err)
		}

		divisor := 1.0
		if d, ok := openMeteoDivisor[field]; ok {
			divisor = d
		}

		samples := make([]weather.Sample, 0, len(values))
		for i, v := range values {
			if i >= len(times) {
				break
			}
			s := weather.Sample{Time: times[i]}
			if v == nil {
				s.Missing = true
			} else {
				s.Value = *v / divisor
			}
			samples = append(samples, s)
		}

		series.Fields = append(series.Fields, field)
		series.Samples[field] = samples
	}

	return series, nil
}

// dedupeParams resolves fields to provider parameters, dropping duplicates
// while keeping first-seen order.
func dedupeParams(fields []weather.Field, mapping map[weather.Field]string) []string {
	seen := make(map[string]bool, len(fields))
	var params []string
	for _, f := range fields {
		p, ok := mapping[f]
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		params = append(params, p)
	}
	return params
}
