package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/vvadla/upi-tracker/internal/domain"
)

// DefaultForecastHorizon is how many months beyond the last observed month
// the forecast extrapolates when the caller does not say otherwise.
const DefaultForecastHorizon = 3

// ErrInsufficientHistory is returned when the ledger does not span enough
// distinct months to fit a trend line. Callers should surface it as a
// "not enough data yet" state rather than rendering a degenerate forecast.
var ErrInsufficientHistory = errors.New("insufficient history: need at least two distinct months")

// ForecastPoint is one month of the combined actual-plus-forecast series.
type ForecastPoint struct {
	Month      string  `json:"month"` // "YYYY-MM"
	Amount     float64 `json:"amount"`
	IsForecast bool    `json:"is_forecast"`
}

// SpendingForecast fits an ordinary least squares line over the monthly
// totals (independent variable: zero-based month index) and extrapolates
// horizon further months. The result is the observed buckets followed by
// the predicted ones, forecast months continuing calendar-wise from the
// last observed month. A horizon below one falls back to
// DefaultForecastHorizon.
func SpendingForecast(ledger *domain.Ledger, horizon int) ([]ForecastPoint, error) {
	if horizon < 1 {
		horizon = DefaultForecastHorizon
	}

	buckets, _ := MonthlyComparison(ledger)
	if len(buckets) < 2 {
		return nil, fmt.Errorf("spending forecast over %d month(s): %w", len(buckets), ErrInsufficientHistory)
	}

	slope, intercept := fitLine(buckets)

	points := make([]ForecastPoint, 0, len(buckets)+horizon)
	for _, b := range buckets {
		points = append(points, ForecastPoint{Month: b.Month, Amount: b.Total})
	}

	last, err := time.Parse("2006-01", buckets[len(buckets)-1].Month)
	if err != nil {
		return nil, fmt.Errorf("spending forecast: bad month key %q: %w", buckets[len(buckets)-1].Month, err)
	}
	for i := 1; i <= horizon; i++ {
		idx := float64(len(buckets) - 1 + i)
		points = append(points, ForecastPoint{
			Month:      last.AddDate(0, i, 0).Format("2006-01"),
			Amount:     intercept + slope*idx,
			IsForecast: true,
		})
	}
	return points, nil
}

// fitLine computes the least-squares slope and intercept of the bucket
// totals against their zero-based index. Requires len(buckets) >= 2.
func fitLine(buckets []domain.MonthlyBucket) (slope, intercept float64) {
	n := float64(len(buckets))

	var sumX, sumY float64
	for i, b := range buckets {
		sumX += float64(i)
		sumY += b.Total
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX float64
	for i, b := range buckets {
		dx := float64(i) - meanX
		cov += dx * (b.Total - meanY)
		varX += dx * dx
	}

	slope = cov / varX
	intercept = meanY - slope*meanX
	return slope, intercept
}
