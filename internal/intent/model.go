// Package intent classifies a user utterance into a structured weather or
// conversation intent via the text-completion collaborator.
package intent

import (
	"errors"

	"zephyr/internal/weather"
)

// ErrExtraction is returned when the completion service's output cannot be
// parsed as a valid extraction. It is not retried; the caller surfaces it as
// a generic "unable to process" reply.
var ErrExtraction = errors.New("intent: unparsable extraction")

// Intent is the structured outcome of extraction, after the correction
// pass. It is created fresh per incoming message and never mutated after
// correction.
type Intent struct {
	GeneralConversation bool
	WeatherRequested    bool

	UseDeviceLocation       bool
	DeviceLocationAvailable bool
	NamedLocation           string

	// Days holds the raw day phrases ("today", "friday and saturday", ...)
	// that ResolveDays turns into a closed date interval. Never empty after
	// correction; defaults to ["today"].
	Days []string

	Fields []weather.Field

	// Ambiguous is set when the extractor could not reconcile the request.
	Ambiguous bool
}

// rawExtraction mirrors the JSON schema the extraction prompt elicits from
// the model. Field names follow the prompt template verbatim.
type rawExtraction struct {
	WeatherReport rawWeatherReport `json:"weather_report"`
}

type rawWeatherReport struct {
	GeneralConversation     bool     `json:"general_conversation"`
	UseDeviceLocation       bool     `json:"use_device_location"`
	DeviceLocationAvailable bool     `json:"device_location_available"`
	WeatherReportRequested  bool     `json:"weather_report_requested"`
	GeneralWeatherRequest   bool     `json:"general_weather_request"`
	SpecificDays            []string `json:"specific_days"`
	TemperatureAvg          bool     `json:"temperature_avg"`
	TopTemperature          bool     `json:"top_temperature"`
	LowestTemperature       bool     `json:"lowest_temperature"`
	FeelsLikeTemperature    bool     `json:"feels_like_temperature"`
	WindSpeed               bool     `json:"wind_speed"`
	UVIndex                 bool     `json:"uv_index"`
	Rain                    bool     `json:"rain"`
	CloudCoverage           bool     `json:"cloud_coverage"`
	Visibility              bool     `json:"visibility"`
	AskedLocation           string   `json:"asked_location"`
	UserHasMadeMistake      bool     `json:"user_has_made_mistake"`
}

// fields translates the raw boolean flags into the field set, preserving
// canonical order. A general request with no specific flags means "all of
// it".
func (r rawWeatherReport) fields() []weather.Field {
	var out []weather.Field
	add := func(on bool, f weather.Field) {
		if on {
			out = append(out, f)
		}
	}
	add(r.TemperatureAvg, weather.FieldAvgTemp)
	add(r.TopTemperature, weather.FieldMaxTemp)
	add(r.LowestTemperature, weather.FieldMinTemp)
	add(r.FeelsLikeTemperature, weather.FieldFeelsLike)
	add(r.WindSpeed, weather.FieldWindSpeed)
	add(r.UVIndex, weather.FieldUVIndex)
	add(r.Rain, weather.FieldPrecipitation)
	add(r.CloudCoverage, weather.FieldCloudCover)
	add(r.Visibility, weather.FieldVisibility)

	if len(out) == 0 && r.GeneralWeatherRequest {
		out = append(out, weather.AllFields...)
	}
	return out
}
