package weather

import (
	"context"
	"time"
)

// ForecastProvider abstracts a weather data source (e.g. Open-Meteo,
// Visual Crossing) behind a uniform forecast contract.
type ForecastProvider interface {
	Name() string

	// Forecast returns a series for the requested fields over the closed
	// date interval [start, end]. Timestamps in the returned series are
	// normalized to UTC by the adapter.
	Forecast(ctx context.Context, coords Coordinates, fields []Field, start, end time.Time) (ForecastSeries, error)
}
