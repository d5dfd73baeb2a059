package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/Anilkaram/AI-weather-chat-bot/internal/common"
	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather"
)

// GoogleResolver resolves place names through the Google Geocoding API, for
// deployments that already hold a Google key. It is an alternative to the
// OpenWeatherMap geocoder, selected by configuration; only one resolver is
// ever active.
type GoogleResolver struct{}

// NewGoogleResolver configures the geocoder package. The kelvins/geocoder
// API key is package-global, so construct this once at startup.
func NewGoogleResolver(apiKey string) *GoogleResolver {
	geocoder.ApiKey = apiKey
	return &GoogleResolver{}
}

func (r *GoogleResolver) Resolve(ctx context.Context, locationText string) (weather.GeoLocation, error) {
	address := geocoder.Address{City: locationText}

	location, err := geocoder.Geocoding(address)
	if err != nil {
		if common.HasAny(strings.ToLower(err.Error()), "not found", "zero_results", "no results") {
			return weather.GeoLocation{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, locationText)
		}
		return weather.GeoLocation{}, fmt.Errorf("%w: geocoding failed", weather.ErrProviderUnavailable)
	}

	return weather.GeoLocation{
		Name: displayName(locationText),
		Lat:  location.Latitude,
		Lon:  location.Longitude,
	}, nil
}

// displayName title-cases the user's input since the forward lookup does not
// return a canonical city name.
func displayName(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
