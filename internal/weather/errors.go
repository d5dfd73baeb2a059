package weather

import (
	"errors"
)

// ErrorKind classifies a failed request for the caller.
type ErrorKind string

const (
	KindNone                ErrorKind = ""
	KindLocationNotFound    ErrorKind = "location_not_found"
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindProviderRateLimited ErrorKind = "provider_rate_limited"
	KindMalformedQuery      ErrorKind = "malformed_query"
)

var (
	// ErrLocationNotFound means the place name resolved to zero matches.
	ErrLocationNotFound = errors.New("location not found")
	// ErrProviderUnavailable covers timeouts, network failures and 5xx
	// responses from the upstream provider.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	// ErrProviderRateLimited maps an upstream 429.
	ErrProviderRateLimited = errors.New("weather provider rate limited")
	// ErrMalformedQuery means the inbound request is missing or has
	// invalid fields.
	ErrMalformedQuery = errors.New("malformed query")
)

// KindOf maps an error to its ErrorKind. Anything unrecognized is treated
// as a provider failure so no internal detail leaks to the caller.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrLocationNotFound):
		return KindLocationNotFound
	case errors.Is(err, ErrProviderRateLimited):
		return KindProviderRateLimited
	case errors.Is(err, ErrMalformedQuery):
		return KindMalformedQuery
	default:
		return KindProviderUnavailable
	}
}
