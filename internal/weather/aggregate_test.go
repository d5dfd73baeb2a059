package weather

import (
	"reflect"
	"testing"
	"time"
)

func pt(ts time.Time, temp float64, cond string, pop float64) RawForecastPoint {
	return RawForecastPoint{
		Timestamp:         ts,
		TemperatureC:      temp,
		ConditionCode:     cond,
		PrecipProbability: pop,
	}
}

func TestAggregateBucketsByLocalDate(t *testing.T) {
	// 2024-03-10 22:30 UTC is still March 10 in UTC but already March 11
	// in IST (UTC+5:30).
	nearMidnight := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)

	points := []RawForecastPoint{
		pt(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), 20, "Clear", 0),
		pt(nearMidnight, 15, "Rain", 0.4),
	}

	utc := Aggregate(points, 0, 5)
	if len(utc) != 1 {
		t.Fatalf("expected 1 day with zero offset, got %d", len(utc))
	}

	ist := Aggregate(points, 19800, 5)
	if len(ist) != 2 {
		t.Fatalf("expected 2 days with IST offset, got %d", len(ist))
	}
	if got := ist[1].LocalDate.Format("2006-01-02"); got != "2024-03-11" {
		t.Fatalf("expected near-midnight point on 2024-03-11 local, got %s", got)
	}
}

func TestAggregateMinMaxAndPrecip(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	points := []RawForecastPoint{
		pt(day.Add(3*time.Hour), 18, "Clouds", 0.1),
		pt(day.Add(9*time.Hour), 27, "Clouds", 0.8),
		pt(day.Add(15*time.Hour), 22, "Rain", 0.3),
	}

	got := Aggregate(points, 0, 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 day, got %d", len(got))
	}
	d := got[0]
	if d.MinTempC != 18 || d.MaxTempC != 27 {
		t.Errorf("expected min/max 18/27, got %.1f/%.1f", d.MinTempC, d.MaxTempC)
	}
	if d.PrecipChance != 0.8 {
		t.Errorf("expected worst-case precip 0.8, got %.2f", d.PrecipChance)
	}
	if d.DominantCondition != "Clouds" {
		t.Errorf("expected dominant condition Clouds, got %s", d.DominantCondition)
	}
}

func TestAggregateDominantConditionTieBreak(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	points := []RawForecastPoint{
		pt(day.Add(3*time.Hour), 20, "Rain", 0),
		pt(day.Add(6*time.Hour), 20, "Clear", 0),
		pt(day.Add(9*time.Hour), 20, "Clear", 0),
		pt(day.Add(12*time.Hour), 20, "Rain", 0),
	}

	got := Aggregate(points, 0, 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 day, got %d", len(got))
	}
	// Rain and Clear both occur twice; Rain was seen first.
	if got[0].DominantCondition != "Rain" {
		t.Errorf("expected earliest-seen code to win the tie, got %s", got[0].DominantCondition)
	}
}

func TestAggregateTruncatesToHorizon(t *testing.T) {
	var points []RawForecastPoint
	start := time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC)
	for i := 0; i < 4*8; i++ {
		points = append(points, pt(start.Add(time.Duration(i)*3*time.Hour), 20, "Clear", 0))
	}

	got := Aggregate(points, 0, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i].LocalDate.After(got[i-1].LocalDate) {
			t.Errorf("days not in ascending order: %v before %v", got[i-1].LocalDate, got[i].LocalDate)
		}
	}
}

func TestAggregateFewerDaysThanHorizon(t *testing.T) {
	points := []RawForecastPoint{
		pt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), 20, "Clear", 0),
	}
	got := Aggregate(points, 0, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 day when input covers 1 date, got %d", len(got))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if got := Aggregate(nil, 0, 5); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %d entries", len(got))
	}
}

func TestAggregateIdempotent(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	points := []RawForecastPoint{
		pt(day.Add(3*time.Hour), 18, "Clouds", 0.1),
		pt(day.Add(26*time.Hour), 27, "Rain", 0.8),
	}

	first := Aggregate(points, 3600, 5)
	second := Aggregate(points, 3600, 5)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation is not deterministic:\n%v\n%v", first, second)
	}
}
