package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vvadla/upi-tracker/internal/domain"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return parsed
}

func debit(amount float64, payeeType string, when time.Time) domain.Transaction {
	return domain.Transaction{
		Amount:    amount,
		PayeeType: payeeType,
		Direction: domain.DirectionDebit,
		Timestamp: when,
	}
}

func credit(amount float64, payeeType string, when time.Time) domain.Transaction {
	return domain.Transaction{
		Amount:    amount,
		PayeeType: payeeType,
		Direction: domain.DirectionCredit,
		Timestamp: when,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ledgerWithDebits builds a debit-only ledger with one transaction per
// amount, all in the "Misc" category.
func ledgerWithDebits(amounts []float64, when time.Time) *domain.Ledger {
	ledger := &domain.Ledger{}
	for _, amount := range amounts {
		ledger.Debits = append(ledger.Debits, debit(amount, "Misc", when))
	}
	return ledger
}

// ledgerWithCategories builds a debit-only ledger with one transaction per
// category carrying that category's whole total.
func ledgerWithCategories(totals map[string]float64, when time.Time) *domain.Ledger {
	ledger := &domain.Ledger{}
	for category, total := range totals {
		ledger.Debits = append(ledger.Debits, debit(total, category, when))
	}
	return ledger
}

func TestCategoryTotals(t *testing.T) {
	when := ts(t, "2024-03-10 14:30")
	ledger := &domain.Ledger{
		Debits: []domain.Transaction{
			debit(1200, "Food", when),
			debit(300, "Food", when),
			debit(5000, "Rent", when),
		},
	}

	totals := CategoryTotals(ledger)

	want := map[string]float64{"Food": 1500, "Rent": 5000}
	if len(totals) != len(want) {
		t.Fatalf("CategoryTotals() has %d categories, want %d", len(totals), len(want))
	}
	for category, total := range want {
		if !almostEqual(totals[category], total) {
			t.Errorf("CategoryTotals()[%q] = %v, want %v", category, totals[category], total)
		}
	}
}

func TestCategoryTotals_PartitionLedger(t *testing.T) {
	when := ts(t, "2024-03-10 14:30")
	ledger := &domain.Ledger{
		Credits: []domain.Transaction{
			credit(19.99, "Salary", when),
			credit(250.50, "Refund", when),
		},
		Debits: []domain.Transaction{
			debit(42.42, "Food", when),
			debit(100, "Food", when),
			debit(1337, "Travel", when),
		},
	}

	var sumAll float64
	for _, txn := range ledger.All() {
		sumAll += txn.Amount
	}

	var sumTotals float64
	for _, total := range CategoryTotals(ledger) {
		sumTotals += total
	}

	if !almostEqual(sumAll, sumTotals) {
		t.Errorf("category totals sum to %v, ledger sums to %v", sumTotals, sumAll)
	}
}

func TestCategoryTotals_EmptyLedger(t *testing.T) {
	totals := CategoryTotals(&domain.Ledger{})
	if len(totals) != 0 {
		t.Errorf("CategoryTotals(empty) = %v, want empty map", totals)
	}
}

func TestSavingsSuggestions(t *testing.T) {
	when := ts(t, "2024-03-10 14:30")

	tests := []struct {
		name   string
		debits []domain.Transaction
		want   map[string]float64
	}{
		{
			name: "categories above threshold get 10 percent",
			debits: []domain.Transaction{
				debit(1200, "Food", when),
				debit(300, "Food", when),
				debit(5000, "Rent", when),
			},
			want: map[string]float64{"Food": 150, "Rent": 500},
		},
		{
			name: "category exactly at threshold is omitted",
			debits: []domain.Transaction{
				debit(1000, "Food", when),
			},
			want: map[string]float64{},
		},
		{
			name: "category just above threshold is included",
			debits: []domain.Transaction{
				debit(1000.10, "Food", when),
			},
			want: map[string]float64{"Food": 100.01},
		},
		{
			name:   "empty ledger",
			debits: nil,
			want:   map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsSuggestions(&domain.Ledger{Debits: tt.debits})
			if len(got) != len(tt.want) {
				t.Fatalf("SavingsSuggestions() = %v, want %v", got, tt.want)
			}
			for category, amount := range tt.want {
				if !almostEqual(got[category], amount) {
					t.Errorf("SavingsSuggestions()[%q] = %v, want %v", category, got[category], amount)
				}
			}
		})
	}
}

func TestMonthlyComparison(t *testing.T) {
	ledger := &domain.Ledger{
		Credits: []domain.Transaction{
			credit(100, "Salary", ts(t, "2024-02-01 09:00")),
		},
		Debits: []domain.Transaction{
			debit(50, "Food", ts(t, "2024-01-15 12:00")),
			debit(25, "Food", ts(t, "2024-01-20 18:00")),
			debit(200, "Rent", ts(t, "2024-03-01 08:00")),
			debit(999, "Food", time.Time{}), // unparseable timestamp
		},
	}

	buckets, excluded := MonthlyComparison(ledger)

	if excluded != 1 {
		t.Errorf("excluded = %d, want 1", excluded)
	}

	wantMonths := []string{"2024-01", "2024-02", "2024-03"}
	if len(buckets) != len(wantMonths) {
		t.Fatalf("got %d buckets, want %d", len(buckets), len(wantMonths))
	}
	for i, month := range wantMonths {
		if buckets[i].Month != month {
			t.Errorf("buckets[%d].Month = %q, want %q", i, buckets[i].Month, month)
		}
	}

	wantTotals := []float64{75, 100, 200}
	for i, total := range wantTotals {
		if !almostEqual(buckets[i].Total, total) {
			t.Errorf("buckets[%d].Total = %v, want %v", i, buckets[i].Total, total)
		}
	}

	// Months strictly increasing, and the bucket sum equals the sum of all
	// amounts with parseable timestamps.
	var sumBuckets float64
	for i, b := range buckets {
		sumBuckets += b.Total
		if i > 0 && buckets[i-1].Month >= b.Month {
			t.Errorf("months not strictly increasing at %d: %q >= %q", i, buckets[i-1].Month, b.Month)
		}
	}
	if !almostEqual(sumBuckets, 375) {
		t.Errorf("bucket sum = %v, want 375", sumBuckets)
	}
}

func TestMonthlyComparison_EmptyLedger(t *testing.T) {
	buckets, excluded := MonthlyComparison(&domain.Ledger{})
	if len(buckets) != 0 || excluded != 0 {
		t.Errorf("MonthlyComparison(empty) = %v, %d; want empty, 0", buckets, excluded)
	}
}

func TestCashFlowAnalysis(t *testing.T) {
	when := ts(t, "2024-03-10 14:30")
	ledger := &domain.Ledger{
		Credits: []domain.Transaction{
			credit(300, "Salary", when),
			credit(200, "Refund", when),
		},
		Debits: []domain.Transaction{
			debit(150, "Food", when),
			debit(50, "Travel", when),
		},
	}

	cf := CashFlowAnalysis(ledger)

	if !almostEqual(cf.Inflow, 500) {
		t.Errorf("Inflow = %v, want 500", cf.Inflow)
	}
	if !almostEqual(cf.Outflow, 200) {
		t.Errorf("Outflow = %v, want 200", cf.Outflow)
	}
	if cf.Inflow < 0 || cf.Outflow < 0 {
		t.Errorf("cash flow must be non-negative, got %+v", cf)
	}
}

func TestTopTimeIntervals(t *testing.T) {
	ledger := &domain.Ledger{
		Debits: []domain.Transaction{
			debit(10, "Food", ts(t, "2024-01-01 09:15")),
			debit(10, "Food", ts(t, "2024-01-02 09:45")),
			debit(10, "Food", ts(t, "2024-01-03 09:05")),
			debit(10, "Food", ts(t, "2024-01-01 18:30")),
			debit(10, "Food", ts(t, "2024-01-02 18:00")),
			debit(10, "Food", ts(t, "2024-01-01 07:00")),
			debit(10, "Food", ts(t, "2024-01-04 22:10")),
			debit(10, "Food", time.Time{}),
		},
	}

	buckets, excluded := TopTimeIntervals(ledger, 3)

	if excluded != 1 {
		t.Errorf("excluded = %d, want 1", excluded)
	}
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	if buckets[0].Hour != "09:00" || buckets[0].Count != 3 {
		t.Errorf("buckets[0] = %+v, want 09:00 x3", buckets[0])
	}
	if buckets[1].Hour != "18:00" || buckets[1].Count != 2 {
		t.Errorf("buckets[1] = %+v, want 18:00 x2", buckets[1])
	}
	// 07:00 and 22:00 both have one hit; the earlier hour wins the tie.
	if buckets[2].Hour != "07:00" || buckets[2].Count != 1 {
		t.Errorf("buckets[2] = %+v, want 07:00 x1", buckets[2])
	}
	for _, b := range buckets {
		if b.Count == 0 {
			t.Errorf("bucket %q has zero count", b.Hour)
		}
	}
}

func TestTopTimeIntervals_FewerBucketsThanK(t *testing.T) {
	ledger := &domain.Ledger{
		Debits: []domain.Transaction{
			debit(10, "Food", ts(t, "2024-01-01 09:15")),
		},
	}

	buckets, _ := TopTimeIntervals(ledger, 3)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
}

func TestAggregations_Idempotent(t *testing.T) {
	ledger := &domain.Ledger{
		Credits: []domain.Transaction{
			credit(300, "Salary", ts(t, "2024-01-05 10:00")),
		},
		Debits: []domain.Transaction{
			debit(1200, "Food", ts(t, "2024-01-10 12:30")),
			debit(5000, "Rent", ts(t, "2024-02-01 09:00")),
			debit(75, "Travel", time.Time{}),
		},
	}

	first := BuildDashboard(ledger)
	second := BuildDashboard(ledger)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("dashboard not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
