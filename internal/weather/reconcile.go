package weather

import "time"

// Disagreement records one point where the secondary source contradicts
// the primary. It is reported verbatim to the synthesis step and is never
// auto-resolved in favour of either source.
type Disagreement struct {
	Field     Field
	Time      time.Time
	Primary   float64
	Secondary float64
}

// hourKey identifies a sample by calendar date and hour-of-day in UTC.
// Providers encode timestamps differently, so matching is done on the
// decoded date+hour rather than raw equality.
type hourKey struct {
	year  int
	month time.Month
	day   int
	hour  int
}

func keyFor(t time.Time) hourKey {
	u := t.UTC()
	return hourKey{year: u.Year(), month: u.Month(), day: u.Day(), hour: u.Hour()}
}

// Reconcile compares two forecast series field-by-field and hour-by-hour.
// The output preserves the primary's field and sample order, so two runs
// over the same inputs yield identical lists. A value the secondary does
// not corroborate (no sample for that hour, or a sample marked missing)
// is skipped: absence is not disagreement.
func Reconcile(primary, secondary ForecastSeries) []Disagreement {
	var diffs []Disagreement

	for _, field := range primary.Fields {
		index := indexByHour(secondary.Samples[field])
		if len(index) == 0 {
			continue
		}

		for _, sample := range primary.Samples[field] {
			if sample.Missing {
				continue
			}
			other, ok := index[keyFor(sample.Time)]
			if !ok || other.Missing {
				continue
			}
			if sample.Value != other.Value {
				diffs = append(diffs, Disagreement{
					Field:     field,
					Time:      sample.Time.UTC(),
					Primary:   sample.Value,
					Secondary: other.Value,
				})
			}
		}
	}

	return diffs
}

func indexByHour(samples []Sample) map[hourKey]Sample {
	if len(samples) == 0 {
		return nil
	}
	index := make(map[hourKey]Sample, len(samples))
	for _, s := range samples {
		index[keyFor(s.Time)] = s
	}
	return index
}
