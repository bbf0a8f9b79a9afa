package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/fxgate/internal/domain/models"
	"github.com/guttosm/fxgate/internal/fx"
	"github.com/guttosm/fxgate/internal/logger"
)

// ErrBadDate is returned when a date parameter is not a YYYY-MM-DD calendar date.
var ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD")

// RateService defines the business logic behind the rate endpoints.
//
// All quotes are priced against a fixed EUR base; quote is the target
// currency code (e.g., "USD").
type RateService interface {
	// GetRange returns one RatePoint per business day in [start, end),
	// ascending by date.
	GetRange(ctx context.Context, quote, start, end string) ([]models.RatePoint, error)

	// Convert prices an amount of EUR in the quote currency at the latest rate.
	Convert(ctx context.Context, quote string, amount float64) (models.RatePoint, error)

	// Historical returns the quote for a single past date.
	Historical(ctx context.Context, quote, date string) (models.RatePoint, error)
}

type rateService struct {
	client fx.RatesClient
}

// NewRateService constructs a RateService over the given upstream client.
func NewRateService(client fx.RatesClient) RateService {
	return &rateService{client: client}
}

// GetRange fans out one upstream fetch per business day between start
// (inclusive) and end (exclusive), weekends skipped.
//
// The fetches run concurrently with join-all semantics: the first failure
// cancels the siblings and fails the whole call, and no partial result is
// returned. Results are written into an index-addressed slice so the output
// order is ascending by date regardless of fetch completion order.
//
// Each point's Date comes from the provider's response body, not the locally
// computed request date; around holidays the provider substitutes the
// nearest prior trading day and we report what it actually priced.
func (s *rateService) GetRange(ctx context.Context, quote, start, end string) ([]models.RatePoint, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start=%q", ErrBadDate, start)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end=%q", ErrBadDate, end)
	}

	days := BusinessDays(startDate, endDate)
	results := make([]models.RatePoint, len(days))

	logger.L().Debug().
		Str("quote", quote).
		Str("start", start).
		Str("end", end).
		Int("fetches", len(days)).
		Msg("range fan-out")

	// errgroup cancels siblings on the first error.
	g, gctx := errgroup.WithContext(ctx)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			snap, err := s.client.FetchRate(gctx, day.Format(dateLayout), quote)
			if err != nil {
				return err
			}
			point, err := pointFrom(quote, snap)
			if err != nil {
				return err
			}
			results[i] = point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Convert fetches the latest quote and prices the given EUR amount in it.
// Equals is formatted to exactly two decimals.
func (s *rateService) Convert(ctx context.Context, quote string, amount float64) (models.RatePoint, error) {
	snap, err := s.client.FetchRate(ctx, fx.Latest, quote)
	if err != nil {
		return models.RatePoint{}, err
	}
	point, err := pointFrom(quote, snap)
	if err != nil {
		return models.RatePoint{}, err
	}

	rounded := math.Round(amount*point.Rate*100) / 100
	point.Equals = fmt.Sprintf("%.2f", rounded)
	return point, nil
}

// Historical returns the quote for one past date.
//
// Unlike GetRange, the returned Date is the requested one: this endpoint is
// a lookup by date, so the caller's key is echoed back even if the provider
// priced an adjacent trading day.
func (s *rateService) Historical(ctx context.Context, quote, date string) (models.RatePoint, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return models.RatePoint{}, fmt.Errorf("%w: date=%q", ErrBadDate, date)
	}

	snap, err := s.client.FetchRate(ctx, date, quote)
	if err != nil {
		return models.RatePoint{}, err
	}
	point, err := pointFrom(quote, snap)
	if err != nil {
		return models.RatePoint{}, err
	}
	point.Date = date
	return point, nil
}

// pointFrom maps a provider snapshot into the response model. A snapshot
// that lacks the requested symbol counts as a provider fault.
func pointFrom(quote string, snap *fx.Snapshot) (models.RatePoint, error) {
	rate, ok := snap.Rates[quote]
	if !ok {
		return models.RatePoint{}, &fx.UpstreamError{Err: fmt.Errorf("no %s rate in response", quote)}
	}
	return models.RatePoint{
		Symbol: "EUR/" + quote,
		Rate:   rate,
		Date:   snap.Date,
	}, nil
}
