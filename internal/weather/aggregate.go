package weather

import (
	"time"
)

// Aggregate collapses a sub-daily forecast series into per-day summaries in
// the location's timezone. Points are bucketed by the calendar date of
// (timestamp + offset) — never the server's local date and never the raw UTC
// date. Distinct dates keep their first-seen order, which for a
// chronologically ordered series is ascending, and the result is truncated
// to the first horizonDays dates. An empty input yields an empty result.
func Aggregate(points []RawForecastPoint, timezoneOffsetSeconds int, horizonDays int) []DailyForecastSummary {
	if len(points) == 0 || horizonDays <= 0 {
		return nil
	}

	zone := time.FixedZone("local", timezoneOffsetSeconds)

	type bucket struct {
		localDate time.Time
		minTemp   float64
		maxTemp   float64
		precip    float64
		// condition tallies; firstSeen breaks ties in favor of the
		// earliest-occurring code
		counts    map[string]int
		firstSeen map[string]int
		nextOrder int
	}

	buckets := make(map[string]*bucket)
	var order []string

	for _, p := range points {
		local := p.Timestamp.In(zone)
		key := local.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			if len(order) >= horizonDays {
				// Past the horizon; later dates are dropped but
				// existing buckets still accumulate.
				continue
			}
			b = &bucket{
				localDate: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone),
				minTemp:   p.TemperatureC,
				maxTemp:   p.TemperatureC,
				counts:    make(map[string]int),
				firstSeen: make(map[string]int),
			}
			buckets[key] = b
			order = append(order, key)
		}

		if p.TemperatureC < b.minTemp {
			b.minTemp = p.TemperatureC
		}
		if p.TemperatureC > b.maxTemp {
			b.maxTemp = p.TemperatureC
		}
		if p.PrecipProbability > b.precip {
			b.precip = p.PrecipProbability
		}

		if _, seen := b.firstSeen[p.ConditionCode]; !seen {
			b.firstSeen[p.ConditionCode] = b.nextOrder
			b.nextOrder++
		}
		b.counts[p.ConditionCode]++
	}

	summaries := make([]DailyForecastSummary, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		summaries = append(summaries, DailyForecastSummary{
			LocalDate:         b.localDate,
			MinTempC:          b.minTemp,
			MaxTempC:          b.maxTemp,
			DominantCondition: dominantCondition(b.counts, b.firstSeen),
			PrecipChance:      b.precip,
		})
	}
	return summaries
}

// dominantCondition picks the most frequent code; on a tie the code seen
// earliest in the day wins.
func dominantCondition(counts map[string]int, firstSeen map[string]int) string {
	best := ""
	bestCount := -1
	for code, count := range counts {
		switch {
		case count > bestCount:
			best, bestCount = code, count
		case count == bestCount && firstSeen[code] < firstSeen[best]:
			best = code
		}
	}
	return best
}
