package weather

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

// requestState tracks where a request is in its lifecycle, for logging.
type requestState string

const (
	stateReceived         requestState = "RECEIVED"
	stateLocationResolved requestState = "LOCATION_RESOLVED"
	stateDataFetched      requestState = "DATA_FETCHED"
	stateFormatted        requestState = "FORMATTED"
	stateReplied          requestState = "REPLIED"
	stateFailed           requestState = "FAILED"
)

// Service is the request dispatcher: it resolves the location, fetches
// current or forecast data depending on the query intent, and formats the
// reply. It holds no per-request state, so one instance serves all requests
// concurrently.
type Service struct {
	resolver    LocationResolver
	provider    Provider
	defaultDays int
}

// NewService creates a dispatcher. defaultDays is used when a forecast query
// does not carry a horizon.
func NewService(resolver LocationResolver, provider Provider, defaultDays int) *Service {
	if defaultDays <= 0 {
		defaultDays = 5
	}
	return &Service{
		resolver:    resolver,
		provider:    provider,
		defaultDays: defaultDays,
	}
}

// Handle answers one query. It never returns an error: every failure is
// folded into a WeatherReply with ok=false and a user-facing message, so the
// caller always receives a well-formed reply.
func (s *Service) Handle(ctx context.Context, query WeatherQuery) WeatherReply {
	reqID := uuid.NewString()[:8]
	log.Printf("[%s] %s intent=%s location=%q", reqID, stateReceived, query.Intent, query.Location)

	query.Location = strings.TrimSpace(query.Location)
	if query.Location == "" {
		return s.fail(reqID, query, fmt.Errorf("%w: location is required", ErrMalformedQuery))
	}
	if query.Intent != IntentCurrent && query.Intent != IntentForecast {
		return s.fail(reqID, query, fmt.Errorf("%w: unknown intent %q", ErrMalformedQuery, query.Intent))
	}
	if query.HorizonDays < 0 {
		return s.fail(reqID, query, fmt.Errorf("%w: horizon must be at least one day", ErrMalformedQuery))
	}
	if query.HorizonDays == 0 {
		query.HorizonDays = s.defaultDays
	}

	loc, err := s.resolver.Resolve(ctx, query.Location)
	if err != nil {
		return s.fail(reqID, query, err)
	}
	log.Printf("[%s] %s %s (%.4f, %.4f)", reqID, stateLocationResolved, loc.DisplayName(), loc.Lat, loc.Lon)

	// The branch is driven by the query intent. Current and forecast are
	// distinct upstream operations with distinct formatting.
	var text string
	switch query.Intent {
	case IntentForecast:
		series, err := s.provider.FetchForecast(ctx, loc, query.HorizonDays)
		if err != nil {
			return s.fail(reqID, query, err)
		}
		loc.TimezoneOffsetSeconds = series.TimezoneOffsetSeconds
		log.Printf("[%s] %s %d forecast points, offset=%ds", reqID, stateDataFetched, len(series.Points), loc.TimezoneOffsetSeconds)

		days := Aggregate(series.Points, loc.TimezoneOffsetSeconds, query.HorizonDays)
		text = FormatForecast(loc, days)
	default:
		obs, err := s.provider.FetchCurrent(ctx, loc)
		if err != nil {
			return s.fail(reqID, query, err)
		}
		loc.TimezoneOffsetSeconds = obs.TimezoneOffsetSeconds
		log.Printf("[%s] %s current conditions, offset=%ds", reqID, stateDataFetched, loc.TimezoneOffsetSeconds)

		text = FormatCurrent(loc, obs)
	}
	log.Printf("[%s] %s", reqID, stateFormatted)

	log.Printf("[%s] %s", reqID, stateReplied)
	return WeatherReply{Text: text, OK: true}
}

func (s *Service) fail(reqID string, query WeatherQuery, err error) WeatherReply {
	kind := KindOf(err)
	log.Printf("[%s] %s kind=%s: %v", reqID, stateFailed, kind, err)
	return WeatherReply{
		Text:      userMessage(kind, query.Location),
		OK:        false,
		ErrorKind: kind,
	}
}

// userMessage maps an error kind to reply text. Upstream error details never
// reach the caller.
func userMessage(kind ErrorKind, location string) string {
	switch kind {
	case KindLocationNotFound:
		return fmt.Sprintf("Sorry, I couldn't find a place called %q. Please check the city name and try again.", location)
	case KindProviderRateLimited:
		return "The weather service is receiving too many requests right now. Please try again in a minute."
	case KindMalformedQuery:
		return "I couldn't understand that request. Please tell me which city you're asking about."
	default:
		return "Sorry, the weather service is temporarily unavailable. Please try again later."
	}
}
