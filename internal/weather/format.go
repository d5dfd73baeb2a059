package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/Anilkaram/AI-weather-chat-bot/internal/common"
)

// The formatter produces the fixed text layout the chat workflow relays to
// the user. Field order is stable and missing optional fields render as a
// placeholder line instead of disappearing, so downstream consumers that
// parse the text never see the shape change.

const missingValue = "N/A"

// FormatCurrent renders current conditions for a resolved location.
func FormatCurrent(loc GeoLocation, obs RawObservation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌤️ Current Weather for %s:\n\n", loc.DisplayName())
	fmt.Fprintf(&b, "🌡️ Temperature: %.1f°C (feels like %s)\n", obs.TemperatureC, floatOrNA(obs.FeelsLikeC, "%.1f°C"))
	fmt.Fprintf(&b, "%s Condition: %s\n", conditionEmoji(obs.Condition), conditionText(obs))
	fmt.Fprintf(&b, "💧 Humidity: %s\n", floatOrNA(obs.HumidityPct, "%.0f%%"))
	fmt.Fprintf(&b, "💨 Wind Speed: %s\n", floatOrNA(obs.WindSpeedMS, "%.1f m/s"))
	fmt.Fprintf(&b, "🌪️ Pressure: %s\n", floatOrNA(obs.PressureHpa, "%.0f hPa"))

	if !obs.Timestamp.IsZero() {
		local := obs.Timestamp.In(fixedZone(obs.TimezoneOffsetSeconds))
		fmt.Fprintf(&b, "\nData updated: %s (local time)", local.Format("2006-01-02 15:04:05"))
	}

	return b.String()
}

// FormatForecast renders one line per summarized day. An empty summary list
// is rendered as an explicit "no data" message, not an error.
func FormatForecast(loc GeoLocation, days []DailyForecastSummary) string {
	if len(days) == 0 {
		return fmt.Sprintf("📅 Forecast for %s:\n\nNo forecast data available for this location.", loc.DisplayName())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %d-Day Forecast for %s:\n\n", len(days), loc.DisplayName())

	for _, d := range days {
		cond := d.DominantCondition
		if cond == "" {
			cond = missingValue
		}
		fmt.Fprintf(&b, "🗓️ %s (%s): %.1f°C to %.1f°C, %s, %.0f%% chance of rain\n",
			d.LocalDate.Format("Monday"),
			d.LocalDate.Format("2006-01-02"),
			d.MinTempC,
			d.MaxTempC,
			cond,
			d.PrecipChance*100,
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func conditionText(obs RawObservation) string {
	if obs.Description != "" {
		return titleCase(obs.Description)
	}
	if obs.Condition != "" {
		return obs.Condition
	}
	return missingValue
}

func conditionEmoji(condition string) string {
	c := strings.ToLower(condition)
	switch {
	case common.HasAny(c, "thunder", "storm"):
		return "⛈️"
	case common.HasAny(c, "rain", "drizzle", "shower"):
		return "🌧️"
	case common.HasAny(c, "snow", "sleet"):
		return "❄️"
	case common.HasAny(c, "cloud"):
		return "☁️"
	case common.HasAny(c, "mist", "fog", "haze"):
		return "🌫️"
	case common.HasAny(c, "clear", "sun"):
		return "☀️"
	default:
		return "☁️"
	}
}

func floatOrNA(v *float64, format string) string {
	if v == nil {
		return missingValue
	}
	return fmt.Sprintf(format, *v)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func fixedZone(offsetSeconds int) *time.Location {
	return time.FixedZone("local", offsetSeconds)
}
