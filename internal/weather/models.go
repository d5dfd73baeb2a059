package weather

import (
	"time"
)

// Intent says whether a query asks for current conditions or a forecast.
type Intent string

const (
	IntentCurrent  Intent = "current"
	IntentForecast Intent = "forecast"
)

// WeatherQuery is one inbound structured question. It is built per request
// and never outlives it.
type WeatherQuery struct {
	Location    string `json:"location"`
	Intent      Intent `json:"intent"`
	HorizonDays int    `json:"horizonDays,omitempty"` // forecast only; 0 means "use default"
}

// GeoLocation is a resolved place. TimezoneOffsetSeconds is seconds east of
// UTC as reported by the weather provider; the geocoding lookup itself does
// not know it, so it is backfilled after the first weather fetch.
type GeoLocation struct {
	Name                  string  `json:"name"`
	Country               string  `json:"country,omitempty"`
	Lat                   float64 `json:"lat"`
	Lon                   float64 `json:"lon"`
	TimezoneOffsetSeconds int     `json:"timezoneOffsetSeconds"`
}

// DisplayName renders "City, CC" or just the city when the country is unknown.
func (g GeoLocation) DisplayName() string {
	if g.Country == "" {
		return g.Name
	}
	return g.Name + ", " + g.Country
}

// RawObservation is the provider's current-conditions payload, already
// decoded into typed fields. Optional fields are pointers so the formatter
// can tell "absent" from zero.
type RawObservation struct {
	Timestamp             time.Time `json:"timestamp"` // always UTC
	TemperatureC          float64   `json:"temperatureC"`
	FeelsLikeC            *float64  `json:"feelsLikeC,omitempty"`
	HumidityPct           *float64  `json:"humidityPercent,omitempty"`
	WindSpeedMS           *float64  `json:"windSpeedMs,omitempty"`
	PressureHpa           *float64  `json:"pressureHpa,omitempty"`
	Condition             string    `json:"condition"`             // e.g. "Clear"
	Description           string    `json:"description,omitempty"` // e.g. "clear sky"
	TimezoneOffsetSeconds int       `json:"timezoneOffsetSeconds"`
}

// RawForecastPoint is a single sample of the provider's sub-daily forecast
// series (3-hourly for OpenWeatherMap).
type RawForecastPoint struct {
	Timestamp         time.Time `json:"timestamp"` // always UTC
	TemperatureC      float64   `json:"temperatureC"`
	ConditionCode     string    `json:"condition"`
	PrecipProbability float64   `json:"precipProbability"` // 0..1
}

// ForecastSeries is the ordered forecast samples plus the provider-reported
// UTC offset for the location, which day bucketing depends on.
type ForecastSeries struct {
	Points                []RawForecastPoint `json:"points"`
	TimezoneOffsetSeconds int                `json:"timezoneOffsetSeconds"`
}

// DailyForecastSummary collapses all samples sharing one local calendar date.
type DailyForecastSummary struct {
	LocalDate         time.Time `json:"localDate"` // midnight in the location's zone
	MinTempC          float64   `json:"minTempC"`
	MaxTempC          float64   `json:"maxTempC"`
	DominantCondition string    `json:"dominantCondition"`
	PrecipChance      float64   `json:"precipChance"` // 0..1, worst case over the day
}

// WeatherReply is the terminal artifact handed back to the caller. A failed
// request still produces a well-formed reply, never a bare error.
type WeatherReply struct {
	Text      string    `json:"text"`
	OK        bool      `json:"ok"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
}
