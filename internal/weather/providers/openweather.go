package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather"
)

// OpenWeatherMap samples its forecast every 3 hours, 8 samples per day.
const forecastSamplesPerDay = 8

// OpenWeatherClient talks to OpenWeatherMap: the geocoding API for location
// resolution and the current/forecast APIs for weather data. It implements
// weather.LocationResolver, weather.Provider and weather.Pinger.
type OpenWeatherClient struct {
	name    string
	apiKey  string
	baseURL string // e.g. https://api.openweathermap.org
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherClient(client *http.Client, baseURL, apiKey string) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}
	return &OpenWeatherClient{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherClient) Name() string {
	return p.name
}

// Resolve geocodes a free-text place name. Zero matches is
// ErrLocationNotFound; with several matches the provider's first-ranked one
// wins.
func (p *OpenWeatherClient) Resolve(ctx context.Context, locationText string) (weather.GeoLocation, error) {
	if p.apiKey == "" {
		return weather.GeoLocation{}, fmt.Errorf("%w: api key not configured", weather.ErrProviderUnavailable)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", locationText)
		values.Set("limit", "5")
		values.Set("appid", p.apiKey)
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/geo/1.0/direct?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.GeoLocation{}, err
	}
	defer resp.Body.Close()

	var payload []struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.GeoLocation{}, fmt.Errorf("%w: malformed geocoding response", weather.ErrProviderUnavailable)
	}
	if len(payload) == 0 {
		return weather.GeoLocation{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, locationText)
	}

	first := payload[0]
	return weather.GeoLocation{
		Name:    first.Name,
		Country: first.Country,
		Lat:     first.Lat,
		Lon:     first.Lon,
	}, nil
}

// FetchCurrent returns current conditions by coordinates. The payload's
// timezone field (seconds east of UTC) rides along for local-time rendering.
func (p *OpenWeatherClient) FetchCurrent(ctx context.Context, loc weather.GeoLocation) (weather.RawObservation, error) {
	if p.apiKey == "" {
		return weather.RawObservation{}, fmt.Errorf("%w: api key not configured", weather.ErrProviderUnavailable)
	}

	buildRequest := func() (*http.Request, error) {
		values := p.coordValues(loc)
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/data/2.5/weather?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.RawObservation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64  `json:"temp"`
			FeelsLike *float64 `json:"feels_like"`
			Humidity  *float64 `json:"humidity"`
			Pressure  *float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Timezone int `json:"timezone"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.RawObservation{}, fmt.Errorf("%w: malformed current-weather response", weather.ErrProviderUnavailable)
	}

	ts := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		ts = time.Now().UTC()
	}

	obs := weather.RawObservation{
		Timestamp:             ts,
		TemperatureC:          payload.Main.Temp,
		FeelsLikeC:            payload.Main.FeelsLike,
		HumidityPct:           payload.Main.Humidity,
		WindSpeedMS:           payload.Wind.Speed,
		PressureHpa:           payload.Main.Pressure,
		TimezoneOffsetSeconds: payload.Timezone,
	}
	if len(payload.Weather) > 0 {
		obs.Condition = payload.Weather[0].Main
		obs.Description = payload.Weather[0].Description
	}
	return obs, nil
}

// FetchForecast returns the 3-hourly forecast series by coordinates, capped
// to cover horizonDays. Upstream may cover fewer days than requested; the
// caller aggregates whatever comes back.
func (p *OpenWeatherClient) FetchForecast(ctx context.Context, loc weather.GeoLocation, horizonDays int) (weather.ForecastSeries, error) {
	if p.apiKey == "" {
		return weather.ForecastSeries{}, fmt.Errorf("%w: api key not configured", weather.ErrProviderUnavailable)
	}

	buildRequest := func() (*http.Request, error) {
		values := p.coordValues(loc)
		// One extra day of samples so the horizon survives the shift
		// into the location's timezone.
		values.Set("cnt", strconv.Itoa((horizonDays+1)*forecastSamplesPerDay))
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/data/2.5/forecast?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastSeries{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Main string `json:"main"`
			} `json:"weather"`
			Pop float64 `json:"pop"`
		} `json:"list"`
		City struct {
			Timezone int `json:"timezone"`
		} `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastSeries{}, fmt.Errorf("%w: malformed forecast response", weather.ErrProviderUnavailable)
	}

	points := make([]weather.RawForecastPoint, 0, len(payload.List))
	for _, item := range payload.List {
		point := weather.RawForecastPoint{
			Timestamp:         time.Unix(item.Dt, 0).UTC(),
			TemperatureC:      item.Main.Temp,
			PrecipProbability: item.Pop,
		}
		if len(item.Weather) > 0 {
			point.ConditionCode = item.Weather[0].Main
		}
		points = append(points, point)
	}

	return weather.ForecastSeries{
		Points:                points,
		TimezoneOffsetSeconds: payload.City.Timezone,
	}, nil
}

// Ping issues a minimal geocoding lookup so the health probe can tell
// whether the upstream is reachable.
func (p *OpenWeatherClient) Ping(ctx context.Context) error {
	_, err := p.Resolve(ctx, "London")
	return err
}

func (p *OpenWeatherClient) coordValues(loc weather.GeoLocation) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	values.Set("units", "metric")
	values.Set("appid", p.apiKey)
	return values
}
