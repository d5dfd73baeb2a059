package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

// doRequest executes one upstream HTTP call through the circuit breaker and
// maps the outcome onto the weather error taxonomy:
//
//	404                      -> ErrLocationNotFound
//	429                      -> ErrProviderRateLimited
//	5xx, network, timeout,
//	open circuit             -> ErrProviderUnavailable
//
// There is deliberately no retry loop here; retries belong to the
// orchestration layer calling this service.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, fmt.Errorf("%w: request failed", weather.ErrProviderUnavailable)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			drain(resp)
			return nil, weather.ErrLocationNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			drain(resp)
			return nil, weather.ErrProviderRateLimited
		case resp.StatusCode >= 500:
			drain(resp)
			return nil, fmt.Errorf("%w: upstream status %d", weather.ErrProviderUnavailable, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			drain(resp)
			return nil, fmt.Errorf("%w: unexpected status %d", weather.ErrProviderUnavailable, resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", weather.ErrProviderUnavailable)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type", weather.ErrProviderUnavailable)
	}
	return resp, nil
}

// drain discards and closes a response body we are not going to decode, so
// the underlying connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}
