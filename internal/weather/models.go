package weather

import "time"

// Field identifies one forecastable quantity a user can ask about.
type Field string

const (
	FieldAvgTemp       Field = "avg_temp"
	FieldMaxTemp       Field = "max_temp"
	FieldMinTemp       Field = "min_temp"
	FieldFeelsLike     Field = "feels_like"
	FieldWindSpeed     Field = "wind_speed"
	FieldUVIndex       Field = "uv_index"
	FieldPrecipitation Field = "precipitation"
	FieldCloudCover    Field = "cloud_cover"
	FieldVisibility    Field = "visibility"
)

// AllFields lists every known field in canonical order.
var AllFields = []Field{
	FieldAvgTemp,
	FieldMaxTemp,
	FieldMinTemp,
	FieldFeelsLike,
	FieldWindSpeed,
	FieldUVIndex,
	FieldPrecipitation,
	FieldCloudCover,
	FieldVisibility,
}

// Coordinates is a canonical latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Sample is a single (timestamp, value) point in a provider's series.
// Missing marks samples the provider returned without a usable value;
// they are kept so their slot is visible but never compared.
type Sample struct {
	Time    time.Time
	Value   float64
	Missing bool
}

// ForecastSeries is one provider's structured reply: a mapping from field
// to a time-ordered sequence of samples covering the requested range.
// Fields records the iteration order; a series is immutable once returned.
type ForecastSeries struct {
	Provider string
	Fields   []Field
	Samples  map[Field][]Sample
}
