// Package fx talks to the upstream exchange-rate provider
// (exchangeratesapi.io wire shape). All quotes are EUR-based.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/guttosm/fxgate/config"
)

// Latest is the pseudo-date accepted by FetchRate for the most recent quote.
const Latest = "latest"

// Snapshot is the normalized result of one upstream fetch.
//
// Date is the date the provider actually priced. Around market holidays it
// may differ from the requested date: the provider substitutes the nearest
// prior trading day, and we surface what it reports rather than what we
// asked for.
type Snapshot struct {
	Rates map[string]float64
	Date  string
}

// UpstreamError tags failures that originate at the provider (network,
// non-2xx status, undecodable body, provider-level error object) so callers
// can distinguish them from caller mistakes.
type UpstreamError struct {
	Status int   // HTTP status from the provider, 0 if the request never completed
	Err    error // underlying cause
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream returned status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("upstream request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// RatesClient fetches EUR-based quotes from the upstream provider.
// Implemented by *Client; handlers and services depend on the interface so
// tests can inject fakes.
type RatesClient interface {
	// FetchRate retrieves the quote for one currency on one date.
	// date is either "latest" or a YYYY-MM-DD calendar date.
	FetchRate(ctx context.Context, date, quote string) (*Snapshot, error)

	// Ping checks that the provider is reachable. Used by the readiness probe.
	Ping(ctx context.Context) error
}

// Client is the HTTP implementation of RatesClient.
type Client struct {
	cfg        config.FXConfig
	httpClient *http.Client
}

var _ RatesClient = (*Client)(nil)

// NewClient constructs a Client for the given provider configuration.
// Passing a nil httpClient installs a default one with the configured timeout.
func NewClient(cfg config.FXConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// apiResponse mirrors the provider's wire format.
type apiResponse struct {
	Rates map[string]float64 `json:"rates"`
	Date  string             `json:"date"`
	Error *apiError          `json:"error"`
}

// apiError is the provider's error object, present when a request is
// rejected (bad key, unsupported date, quota exceeded).
type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// FetchRate retrieves the EUR-based quote for one currency on one date.
//
// Every failure mode is wrapped in *UpstreamError: transport errors,
// non-2xx statuses, bodies that do not decode, provider error objects, and
// responses that carry no rates at all. Callers never see a partially
// decoded body.
func (c *Client) FetchRate(ctx context.Context, date, quote string) (*Snapshot, error) {
	reqURL := fmt.Sprintf("%s/v1/%s?access_key=%s&symbols=%s",
		c.cfg.BaseURL,
		url.PathEscape(date),
		url.QueryEscape(c.cfg.APIKey),
		url.QueryEscape(quote),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("fetching %s rate for %s", date, quote)}
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if body.Error != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("provider error %d (%s): %s", body.Error.Code, body.Error.Type, body.Error.Info)}
	}
	if len(body.Rates) == 0 {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("no rates in response for %s", quote)}
	}

	return &Snapshot{Rates: body.Rates, Date: body.Date}, nil
}

// Ping fetches the latest EUR/USD quote and discards it.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.FetchRate(ctx, Latest, "USD")
	return err
}
