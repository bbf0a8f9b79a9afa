package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/guttosm/fxgate/internal/fx"
)

// fakeClient implements fx.RatesClient. Rates are keyed by requested date
// ("latest" included); a date listed in failOn returns an upstream error.
type fakeClient struct {
	rates  map[string]float64
	dates  map[string]string // optional: response body date per requested date
	failOn map[string]bool

	mu    sync.Mutex
	calls []string
}

var _ fx.RatesClient = (*fakeClient)(nil)

func (f *fakeClient) FetchRate(_ context.Context, date, quote string) (*fx.Snapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, date)
	f.mu.Unlock()

	if f.failOn[date] {
		return nil, &fx.UpstreamError{Status: 500, Err: fmt.Errorf("stubbed failure for %s", date)}
	}
	rate, ok := f.rates[date]
	if !ok {
		return nil, &fx.UpstreamError{Err: fmt.Errorf("unexpected date %s", date)}
	}
	bodyDate := date
	if d, ok := f.dates[date]; ok {
		bodyDate = d
	}
	return &fx.Snapshot{Rates: map[string]float64{quote: rate}, Date: bodyDate}, nil
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func TestGetRange_WeekOfFetches(t *testing.T) {
	client := &fakeClient{rates: map[string]float64{
		"2024-01-01": 1.10,
		"2024-01-02": 1.11,
		"2024-01-03": 1.12,
		"2024-01-04": 1.13,
		"2024-01-05": 1.14,
	}}
	svc := NewRateService(client)

	points, err := svc.GetRange(context.Background(), "USD", "2024-01-01", "2024-01-08")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("got %d points, want 5", len(points))
	}
	if len(client.calls) != 5 {
		t.Fatalf("issued %d fetches, want 5", len(client.calls))
	}

	// ascending date order, regardless of goroutine completion order
	wantDates := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	wantRates := []float64{1.10, 1.11, 1.12, 1.13, 1.14}
	for i, p := range points {
		if p.Symbol != "EUR/USD" {
			t.Fatalf("point[%d].Symbol=%q", i, p.Symbol)
		}
		if p.Date != wantDates[i] || p.Rate != wantRates[i] {
			t.Fatalf("point[%d]=%+v, want date %s rate %v", i, p, wantDates[i], wantRates[i])
		}
		if p.Equals != "" {
			t.Fatalf("point[%d] has equals set: %+v", i, p)
		}
	}
}

func TestGetRange_DateFromProviderBody(t *testing.T) {
	// Provider prices a holiday with the prior trading day; the response
	// carries the provider's date, not the requested one.
	client := &fakeClient{
		rates: map[string]float64{"2024-01-01": 1.10},
		dates: map[string]string{"2024-01-01": "2023-12-29"},
	}
	svc := NewRateService(client)

	points, err := svc.GetRange(context.Background(), "USD", "2024-01-01", "2024-01-02")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if points[0].Date != "2023-12-29" {
		t.Fatalf("date=%q, want provider body date", points[0].Date)
	}
}

func TestGetRange_SingleFailureFailsAll(t *testing.T) {
	client := &fakeClient{
		rates: map[string]float64{
			"2024-01-01": 1.10,
			"2024-01-02": 1.11,
			"2024-01-04": 1.13,
			"2024-01-05": 1.14,
		},
		failOn: map[string]bool{"2024-01-03": true},
	}
	svc := NewRateService(client)

	points, err := svc.GetRange(context.Background(), "USD", "2024-01-01", "2024-01-08")
	if err == nil {
		t.Fatalf("expected error, got %d points", len(points))
	}
	if points != nil {
		t.Fatalf("expected no partial results, got %v", points)
	}
	var ue *fx.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
}

func TestGetRange_BadDates(t *testing.T) {
	svc := NewRateService(&fakeClient{})
	cases := []struct{ start, end string }{
		{"01-01-2024", "2024-01-08"},
		{"2024-01-01", "08/01/2024"},
		{"", "2024-01-08"},
		{"2024-01-01", ""},
	}
	for _, tc := range cases {
		if _, err := svc.GetRange(context.Background(), "USD", tc.start, tc.end); !errors.Is(err, ErrBadDate) {
			t.Fatalf("start=%q end=%q: expected ErrBadDate, got %v", tc.start, tc.end, err)
		}
	}
}

func TestConvert(t *testing.T) {
	client := &fakeClient{
		rates: map[string]float64{"latest": 1.1},
		dates: map[string]string{"latest": "2024-03-15"},
	}
	svc := NewRateService(client)

	point, err := svc.Convert(context.Background(), "USD", 10)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if point.Symbol != "EUR/USD" || point.Rate != 1.1 || point.Date != "2024-03-15" {
		t.Fatalf("unexpected point: %+v", point)
	}
	// 10 * 1.1 is 11.000000000000002 in float64; formatting must still give 11.00
	if point.Equals != "11.00" {
		t.Fatalf("equals=%q, want 11.00", point.Equals)
	}
}

func TestConvert_Rounding(t *testing.T) {
	client := &fakeClient{rates: map[string]float64{"latest": 0.8567}}
	svc := NewRateService(client)

	point, err := svc.Convert(context.Background(), "GBP", 100)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if point.Equals != "85.67" {
		t.Fatalf("equals=%q, want 85.67", point.Equals)
	}
}

func TestConvert_UpstreamFailure(t *testing.T) {
	client := &fakeClient{failOn: map[string]bool{"latest": true}}
	svc := NewRateService(client)

	_, err := svc.Convert(context.Background(), "USD", 10)
	var ue *fx.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
}

func TestHistorical(t *testing.T) {
	// Body date differs from the requested one; the requested date wins
	// for this endpoint.
	client := &fakeClient{
		rates: map[string]float64{"2024-01-02": 0.85},
		dates: map[string]string{"2024-01-02": "2024-01-01"},
	}
	svc := NewRateService(client)

	point, err := svc.Historical(context.Background(), "GBP", "2024-01-02")
	if err != nil {
		t.Fatalf("historical: %v", err)
	}
	if point.Symbol != "EUR/GBP" || point.Rate != 0.85 || point.Date != "2024-01-02" {
		t.Fatalf("unexpected point: %+v", point)
	}
	if point.Equals != "" {
		t.Fatalf("equals should be empty, got %q", point.Equals)
	}
}

func TestHistorical_BadDate(t *testing.T) {
	svc := NewRateService(&fakeClient{})
	if _, err := svc.Historical(context.Background(), "GBP", "02/01/2024"); !errors.Is(err, ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
}

func TestHistorical_UpstreamFailureShortCircuits(t *testing.T) {
	client := &fakeClient{failOn: map[string]bool{"2024-01-02": true}}
	svc := NewRateService(client)

	_, err := svc.Historical(context.Background(), "GBP", "2024-01-02")
	var ue *fx.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
}

func TestPointFrom_MissingSymbol(t *testing.T) {
	_, err := pointFrom("JPY", &fx.Snapshot{Rates: map[string]float64{"USD": 1.1}, Date: "2024-01-02"})
	var ue *fx.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
}
