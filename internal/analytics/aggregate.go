// Package analytics computes the dashboard metrics from a ledger snapshot.
// Every function here is a pure transform: it takes an in-memory ledger,
// returns a derived value, and holds no state between calls. Callers load
// the ledger fresh from the repository on every request.
package analytics

import (
	"fmt"
	"sort"

	"github.com/vvadla/upi-tracker/internal/domain"
)

const (
	// SavingsThreshold is the category total above which a savings
	// suggestion is emitted.
	SavingsThreshold = 1000.0

	// SavingsRate is the suggested fraction of a category's total.
	SavingsRate = 0.10
)

// CategoryTotals sums amounts grouped by payee type over the combined
// ledger. The totals partition the ledger exactly: summing the returned map
// equals summing every transaction amount.
func CategoryTotals(ledger *domain.Ledger) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range ledger.All() {
		totals[t.PayeeType] += t.Amount
	}
	return totals
}

// SavingsSuggestions suggests saving SavingsRate of the total for every
// category whose total strictly exceeds SavingsThreshold. Categories at or
// below the threshold are omitted.
func SavingsSuggestions(ledger *domain.Ledger) map[string]float64 {
	suggestions := make(map[string]float64)
	for category, total := range CategoryTotals(ledger) {
		if total > SavingsThreshold {
			suggestions[category] = total * SavingsRate
		}
	}
	return suggestions
}

// MonthlyComparison groups the combined ledger by calendar month and sums
// amounts, sorted ascending by month. Transactions without a usable
// timestamp are excluded from the buckets; the second result reports how
// many were skipped.
func MonthlyComparison(ledger *domain.Ledger) ([]domain.MonthlyBucket, int) {
	totals := make(map[string]float64)
	excluded := 0
	for _, t := range ledger.All() {
		month := t.Month()
		if month == "" {
			excluded++
			continue
		}
		totals[month] += t.Amount
	}

	buckets := make([]domain.MonthlyBucket, 0, len(totals))
	for month, total := range totals {
		buckets = append(buckets, domain.MonthlyBucket{Month: month, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})

	return buckets, excluded
}

// CashFlow holds the two sides of the cash-flow summary. Both totals are
// non-negative: amounts are positive magnitudes and direction comes from
// subset membership.
type CashFlow struct {
	Inflow  float64 `json:"inflows"`
	Outflow float64 `json:"outflows"`
}

// CashFlowAnalysis sums the credits subset as inflow and the debits subset
// as outflow. Subset membership is authoritative here, not the amount's
// sign: stored amounts carry no sign to classify by.
func CashFlowAnalysis(ledger *domain.Ledger) CashFlow {
	var cf CashFlow
	for _, t := range ledger.Credits {
		cf.Inflow += t.Amount
	}
	for _, t := range ledger.Debits {
		cf.Outflow += t.Amount
	}
	return cf
}

// HourBucket counts transactions falling in one hour-of-day bucket.
type HourBucket struct {
	Hour  string `json:"hour"` // "HH:00"
	Count int    `json:"count"`
}

// TopTimeIntervals buckets transactions by hour of day and returns the k
// busiest buckets, most frequent first. Equal counts are broken by the
// earlier hour so the result is deterministic. Buckets that saw no
// transactions never appear. The second result counts records excluded for
// missing timestamps.
func TopTimeIntervals(ledger *domain.Ledger, k int) ([]HourBucket, int) {
	var counts [24]int
	excluded := 0
	for _, t := range ledger.All() {
		if !t.HasTimestamp() {
			excluded++
			continue
		}
		counts[t.Timestamp.Hour()]++
	}

	buckets := make([]HourBucket, 0, 24)
	for hour, count := range counts {
		if count == 0 {
			continue
		}
		buckets = append(buckets, HourBucket{
			Hour:  fmt.Sprintf("%02d:00", hour),
			Count: count,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Hour < buckets[j].Hour
	})

	if k >= 0 && len(buckets) > k {
		buckets = buckets[:k]
	}
	return buckets, excluded
}
