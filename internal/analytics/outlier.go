package analytics

import (
	"fmt"
	"sort"

	"github.com/vvadla/upi-tracker/internal/domain"
)

// HighSpendAlertCount is how many top categories produce a spending alert.
const HighSpendAlertCount = 3

// DetectOutliers flags transactions whose amount falls outside the IQR
// fence [Q1 - 1.5*IQR, Q3 + 1.5*IQR] computed over the combined ledger.
// Flagged transactions are returned unmodified in input order. When every
// amount is equal the IQR is zero and nothing is flagged.
func DetectOutliers(ledger *domain.Ledger) []domain.Transaction {
	all := ledger.All()
	if len(all) == 0 {
		return nil
	}

	amounts := make([]float64, len(all))
	for i, t := range all {
		amounts[i] = t.Amount
	}
	sort.Float64s(amounts)

	q1 := quantile(amounts, 0.25)
	q3 := quantile(amounts, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	var flagged []domain.Transaction
	for _, t := range all {
		if t.Amount < lower || t.Amount > upper {
			flagged = append(flagged, t)
		}
	}
	return flagged
}

// quantile returns the q-th quantile of a sorted sample using linear
// interpolation between closest ranks, the same method the original
// dashboard's quartiles used.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// SpendingAlerts emits one human-readable alert for each of the top
// HighSpendAlertCount categories by total amount, largest first. Equal
// totals are broken by category name. Each message carries the category and
// its total so it reads standalone.
func SpendingAlerts(ledger *domain.Ledger) []string {
	totals := CategoryTotals(ledger)

	type categoryTotal struct {
		category string
		total    float64
	}
	ranked := make([]categoryTotal, 0, len(totals))
	for category, total := range totals {
		ranked = append(ranked, categoryTotal{category: category, total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].total != ranked[j].total {
			return ranked[i].total > ranked[j].total
		}
		return ranked[i].category < ranked[j].category
	})

	if len(ranked) > HighSpendAlertCount {
		ranked = ranked[:HighSpendAlertCount]
	}

	alerts := make([]string, 0, len(ranked))
	for _, ct := range ranked {
		alerts = append(alerts, fmt.Sprintf("High spending detected in %s: %.2f", ct.category, ct.total))
	}
	return alerts
}
