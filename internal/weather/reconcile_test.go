package weather

import (
	"reflect"
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func series(provider string, fields []Field, samples map[Field][]Sample) ForecastSeries {
	return ForecastSeries{Provider: provider, Fields: fields, Samples: samples}
}

func TestReconcileReportsDifferingValues(t *testing.T) {
	primary := series("p", []Field{FieldWindSpeed}, map[Field][]Sample{
		FieldWindSpeed: {{Time: at(14), Value: 12}},
	})
	secondary := series("s", []Field{FieldWindSpeed}, map[Field][]Sample{
		FieldWindSpeed: {{Time: at(14), Value: 15}},
	})

	diffs := Reconcile(primary, secondary)
	if len(diffs) != 1 {
		t.Fatalf("expected 1 disagreement, got %d", len(diffs))
	}
	d := diffs[0]
	if d.Field != FieldWindSpeed || d.Primary != 12 || d.Secondary != 15 {
		t.Errorf("unexpected disagreement: %+v", d)
	}
	if !d.Time.Equal(at(14)) {
		t.Errorf("Time = %s, want %s", d.Time, at(14))
	}
}

func TestReconcileAbsenceIsNotDisagreement(t *testing.T) {
	primary := series("p", []Field{FieldWindSpeed}, map[Field][]Sample{
		FieldWindSpeed: {{Time: at(14), Value: 12}},
	})

	tests := []struct {
		name      string
		secondary ForecastSeries
	}{
		{
			name:      "field entirely absent",
			secondary: series("s", nil, nil),
		},
		{
			name: "no sample for that hour",
			secondary: series("s", []Field{FieldWindSpeed}, map[Field][]Sample{
				FieldWindSpeed: {{Time: at(9), Value: 3}},
			}),
		},
		{
			name: "sample marked missing",
			secondary: series("s", []Field{FieldWindSpeed}, map[Field][]Sample{
				FieldWindSpeed: {{Time: at(14), Missing: true}},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diffs := Reconcile(primary, tt.secondary); len(diffs) != 0 {
				t.Errorf("expected no disagreements, got %v", diffs)
			}
		})
	}
}

func TestReconcileAgreementYieldsNothing(t *testing.T) {
	primary := series("p", []Field{FieldAvgTemp}, map[Field][]Sample{
		FieldAvgTemp: {{Time: at(8), Value: 5.5}, {Time: at(9), Value: 6}},
	})
	secondary := series("s", []Field{FieldAvgTemp}, map[Field][]Sample{
		FieldAvgTemp: {{Time: at(8), Value: 5.5}, {Time: at(9), Value: 6}},
	})

	if diffs := Reconcile(primary, secondary); len(diffs) != 0 {
		t.Errorf("identical series must not disagree, got %v", diffs)
	}
}

func TestReconcileMatchesByDecodedDateAndHour(t *testing.T) {
	// Same instant, different zone encodings: 14:00 UTC == 16:00 +02:00.
	plusTwo := time.FixedZone("CEST", 2*3600)
	primary := series("p", []Field{FieldAvgTemp}, map[Field][]Sample{
		FieldAvgTemp: {{Time: at(14), Value: 10}},
	})
	secondary := series("s", []Field{FieldAvgTemp}, map[Field][]Sample{
		FieldAvgTemp: {{Time: time.Date(2026, 3, 10, 16, 0, 0, 0, plusTwo), Value: 11}},
	})

	diffs := Reconcile(primary, secondary)
	if len(diffs) != 1 {
		t.Fatalf("zone-shifted sample should still corroborate the same hour; got %d diffs", len(diffs))
	}
}

func TestReconcileIsDeterministic(t *testing.T) {
	primary := series("p", []Field{FieldAvgTemp, FieldWindSpeed}, map[Field][]Sample{
		FieldAvgTemp:   {{Time: at(8), Value: 1}, {Time: at(9), Value: 2}},
		FieldWindSpeed: {{Time: at(8), Value: 10}, {Time: at(9), Value: 20}},
	})
	secondary := series("s", []Field{FieldAvgTemp, FieldWindSpeed}, map[Field][]Sample{
		FieldAvgTemp:   {{Time: at(8), Value: 0}, {Time: at(9), Value: 2}},
		FieldWindSpeed: {{Time: at(8), Value: 11}, {Time: at(9), Value: 21}},
	})

	first := Reconcile(primary, secondary)
	second := Reconcile(primary, secondary)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs differ:\n%v\n%v", first, second)
	}

	// Order follows the primary's field then sample order.
	wantOrder := []struct {
		field Field
		hour  int
	}{
		{FieldAvgTemp, 8},
		{FieldWindSpeed, 8},
		{FieldWindSpeed, 9},
	}
	if len(first) != len(wantOrder) {
		t.Fatalf("expected %d disagreements, got %d: %v", len(wantOrder), len(first), first)
	}
	for i, want := range wantOrder {
		if first[i].Field != want.field || first[i].Time.Hour() != want.hour {
			t.Errorf("diffs[%d] = %s@%02d, want %s@%02d",
				i, first[i].Field, first[i].Time.Hour(), want.field, want.hour)
		}
	}
}

func TestReconcileSkipsMissingPrimarySamples(t *testing.T) {
	primary := series("p", []Field{FieldAvgTemp}, map[Field][]Sample{
		FieldAvgTemp: {{Time: at(8), Missing: true}},
	})
	secondary := series("s", []Field{FieldAvgTemp}, map[Field][]Sample{
		FieldAvgTemp: {{Time: at(8), Value: 7}},
	})

	if diffs := Reconcile(primary, secondary); len(diffs) != 0 {
		t.Errorf("missing primary sample cannot disagree, got %v", diffs)
	}
}
