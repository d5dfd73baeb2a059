package weather

import (
	"context"
)

// LocationResolver turns a free-text place name into coordinates.
// Implementations return ErrLocationNotFound when nothing matches and pick
// the first match when the lookup returns several.
type LocationResolver interface {
	Resolve(ctx context.Context, locationText string) (GeoLocation, error)
}

// Provider abstracts the upstream weather source (OpenWeatherMap in
// production, mocks in tests). Errors are one of the package sentinels.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, loc GeoLocation) (RawObservation, error)
	FetchForecast(ctx context.Context, loc GeoLocation, horizonDays int) (ForecastSeries, error)
}

// Pinger is implemented by providers that can be probed for reachability.
// The scheduler uses it to feed the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}
