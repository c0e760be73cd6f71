package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/vvadla/upi-tracker/internal/domain"
)

// DefaultTopIntervals is how many peak hour buckets the dashboard shows.
const DefaultTopIntervals = 3

// ChartSeries is one subset's plot data: parallel date and amount slices in
// submission order, skipping records without a usable timestamp.
type ChartSeries struct {
	Dates   []string  `json:"dates"`
	Amounts []float64 `json:"amounts"`
}

// Dashboard is the full analytics payload served to the frontend. All
// amounts are rounded here, at the serialization boundary, never inside the
// aggregation functions.
type Dashboard struct {
	MonthlyComparison  []domain.MonthlyBucket `json:"monthly_comparison"`
	SavingsSuggestions map[string]float64     `json:"savings_suggestions"`
	CashFlow           CashFlow               `json:"cash_flow"`
	Outliers           []domain.Transaction   `json:"outliers"`
	Alerts             []string               `json:"alerts"`
	TopTimeIntervals   []HourBucket           `json:"top_time_intervals"`
	SpendingClusters   []CategoryCluster      `json:"spending_clusters"`
	CreditChartData    ChartSeries            `json:"credit_chart_data"`
	DebitChartData     ChartSeries            `json:"debit_chart_data"`

	// ExcludedRecords counts transactions left out of time-keyed
	// aggregations because their stored timestamp was unparseable.
	ExcludedRecords int `json:"excluded_records"`
}

// BuildDashboard runs every aggregation over one ledger snapshot and
// assembles the response payload.
func BuildDashboard(ledger *domain.Ledger) *Dashboard {
	monthly, excluded := MonthlyComparison(ledger)
	for i := range monthly {
		monthly[i].Total = Round(monthly[i].Total)
	}

	suggestions := SavingsSuggestions(ledger)
	for category, amount := range suggestions {
		suggestions[category] = Round(amount)
	}

	cf := CashFlowAnalysis(ledger)
	cf.Inflow = Round(cf.Inflow)
	cf.Outflow = Round(cf.Outflow)

	clusters := ClusterSpendingBehavior(ledger, 2)
	for i := range clusters {
		clusters[i].Total = Round(clusters[i].Total)
	}

	intervals, _ := TopTimeIntervals(ledger, DefaultTopIntervals)

	return &Dashboard{
		MonthlyComparison:  monthly,
		SavingsSuggestions: suggestions,
		CashFlow:           cf,
		Outliers:           DetectOutliers(ledger),
		Alerts:             SpendingAlerts(ledger),
		TopTimeIntervals:   intervals,
		SpendingClusters:   clusters,
		CreditChartData:    chartSeries(ledger.Credits),
		DebitChartData:     chartSeries(ledger.Debits),
		ExcludedRecords:    excluded,
	}
}

func chartSeries(txns []domain.Transaction) ChartSeries {
	series := ChartSeries{
		Dates:   make([]string, 0, len(txns)),
		Amounts: make([]float64, 0, len(txns)),
	}
	for _, t := range txns {
		if !t.HasTimestamp() {
			continue
		}
		series.Dates = append(series.Dates, t.Timestamp.Format("2006-01-02"))
		series.Amounts = append(series.Amounts, Round(t.Amount))
	}
	return series
}

// Round applies the output rounding rule: round-half-even to two decimal
// places.
func Round(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).RoundBank(2).Float64()
	return out
}
