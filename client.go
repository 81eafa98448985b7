// Package n3rgy retrieves smart-meter consumption and tariff readings from the
// n3rgy consumer API.
//
// Retrieval is deliberately lopsided about bad data. An element of the
// response that cannot be decoded into the expected shape is dropped and the
// rest of the window is still returned. An element that decodes but carries an
// unparsable timestamp fails the whole call with ErrTimestampParse.
package n3rgy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
)

// DefaultBaseURL is the production consumer API.
const DefaultBaseURL = "https://consumer-api.data.n3rgy.com"

// Client retrieves readings for one consumer. It holds no mutable state and
// may be shared between goroutines.
type Client struct {
	auth      AuthorizationProvider
	baseURL   string
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another environment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTransport sets the round tripper used for requests. Timeouts, proxies
// and instrumentation are configured here.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// NewClient creates a Client. A nil auth reads the key from N3RGY__APIKEY.
func NewClient(auth AuthorizationProvider, opts ...Option) *Client {
	if auth == nil {
		auth = EnvironmentAuthorization{}
	}
	c := &Client{
		auth:    auth,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newRuntime builds a go-openapi runtime for a single request.
func (c *Client) newRuntime() (*httptransport.Runtime, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: unsupported scheme %q", c.baseURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q: missing host", c.baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("base URL %q: must not carry a query or fragment", c.baseURL)
	}

	rt := httptransport.New(u.Host, u.Path, []string{u.Scheme})
	if c.transport != nil {
		rt.Transport = c.transport
	}
	// the envelope is decoded by hand, whatever the content type claims
	rt.Consumers["*/*"] = runtime.ByteStreamConsumer()
	return rt, nil
}

// GetElectricityConsumption returns electricity consumption between start and end.
func (c *Client) GetElectricityConsumption(ctx context.Context, start, end time.Time) ([]ConsumptionRecord, error) {
	return getRecords(ctx, c, Electricity, Consumption, start, end, ConsumptionDTO.Record)
}

// GetGasConsumption returns gas consumption between start and end.
func (c *Client) GetGasConsumption(ctx context.Context, start, end time.Time) ([]ConsumptionRecord, error) {
	return getRecords(ctx, c, Gas, Consumption, start, end, ConsumptionDTO.Record)
}

// GetElectricityTariff returns the electricity tariff between start and end.
func (c *Client) GetElectricityTariff(ctx context.Context, start, end time.Time) ([]TariffRecord, error) {
	return getRecords(ctx, c, Electricity, Tariff, start, end, TariffDTO.Record)
}

// GetGasTariff returns the gas tariff between start and end.
func (c *Client) GetGasTariff(ctx context.Context, start, end time.Time) ([]TariffRecord, error) {
	return getRecords(ctx, c, Gas, Tariff, start, end, TariffDTO.Record)
}

func getRecords[D WireRecord, R any](ctx context.Context, c *Client, energy EnergyType, reading ReadingType, start, end time.Time, convert func(D) (R, error)) ([]R, error) {
	dtos, err := FetchRecords[D](ctx, c, energy, reading, start, end)
	if err != nil {
		return nil, err
	}
	records, err := convertAll(dtos, convert)
	if err != nil {
		return nil, &Error{Kind: ErrTimestampParse, Op: requestPath(energy, reading), Err: err}
	}
	return records, nil
}
