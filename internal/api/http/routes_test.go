package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather"
)

type fakeResolver struct {
	err error
}

func (f fakeResolver) Resolve(ctx context.Context, locationText string) (weather.GeoLocation, error) {
	if f.err != nil {
		return weather.GeoLocation{}, f.err
	}
	return weather.GeoLocation{Name: "Mumbai", Country: "IN", Lat: 19.07, Lon: 72.87}, nil
}

type fakeProvider struct{}

func (fakeProvider) Name() string { return "fake" }

func (fakeProvider) FetchCurrent(ctx context.Context, loc weather.GeoLocation) (weather.RawObservation, error) {
	return weather.RawObservation{
		Timestamp:    time.Now().UTC(),
		TemperatureC: 30,
		Condition:    "Clear",
	}, nil
}

func (fakeProvider) FetchForecast(ctx context.Context, loc weather.GeoLocation, horizonDays int) (weather.ForecastSeries, error) {
	return weather.ForecastSeries{
		Points: []weather.RawForecastPoint{
			{Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), TemperatureC: 28, ConditionCode: "Clouds"},
		},
	}, nil
}

func newTestApp(resolver weather.LocationResolver) *fiber.App {
	app := fiber.New()
	svc := weather.NewService(resolver, fakeProvider{}, 5)
	RegisterRoutes(app, svc)
	return app
}

func TestExecuteGetWeather(t *testing.T) {
	app := newTestApp(fakeResolver{})

	body := `{"tool_name":"get_weather","parameters":{"city":"Mumbai"}}`
	req := httptest.NewRequest(http.MethodPost, "/tools/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var out struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !out.Success || !strings.Contains(out.Response, "Mumbai") {
		t.Errorf("unexpected reply: %+v", out)
	}
}

func TestExecuteGetForecast(t *testing.T) {
	app := newTestApp(fakeResolver{})

	body := `{"tool_name":"get_forecast","parameters":{"city":"Delhi","days":3}}`
	req := httptest.NewRequest(http.MethodPost, "/tools/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "Forecast") {
		t.Errorf("expected a forecast reply, got: %s", raw)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	app := newTestApp(fakeResolver{})

	body := `{"tool_name":"get_horoscope","parameters":{"city":"Mumbai"}}`
	req := httptest.NewRequest(http.MethodPost, "/tools/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestWeatherQueryValidation(t *testing.T) {
	app := newTestApp(fakeResolver{})

	// Missing location should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range days value should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather?location=Paris&forecast=true&days=8", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestLocationNotFoundStatus(t *testing.T) {
	app := newTestApp(fakeResolver{err: fmt.Errorf("%w: no match", weather.ErrLocationNotFound)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?location=Nowhereville", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out.Success || out.Error != string(weather.KindLocationNotFound) {
		t.Errorf("unexpected error envelope: %+v", out)
	}
}

func TestListTools(t *testing.T) {
	app := newTestApp(fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"get_weather", "get_forecast"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("expected manifest to list %q: %s", want, raw)
		}
	}
}
