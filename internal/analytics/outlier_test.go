package analytics

import (
	"testing"
)

func TestDetectOutliers(t *testing.T) {
	when := ts(t, "2024-03-10 14:30")

	tests := []struct {
		name        string
		amounts     []float64
		wantAmounts []float64
	}{
		{
			name:        "single large outlier",
			amounts:     []float64{100, 110, 95, 105, 102, 98, 5000},
			wantAmounts: []float64{5000},
		},
		{
			name:        "all amounts equal yields no outliers",
			amounts:     []float64{250, 250, 250, 250, 250},
			wantAmounts: nil,
		},
		{
			name:        "tight cluster yields no outliers",
			amounts:     []float64{90, 95, 100, 105, 110},
			wantAmounts: nil,
		},
		{
			name:        "empty ledger",
			amounts:     nil,
			wantAmounts: nil,
		},
		{
			name:        "order preserved when several flagged",
			amounts:     []float64{9000, 100, 102, 98, 101, 99, 103, 97, 8000},
			wantAmounts: []float64{9000, 8000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := ledgerWithDebits(tt.amounts, when)
			got := DetectOutliers(ledger)

			if len(got) != len(tt.wantAmounts) {
				t.Fatalf("DetectOutliers() flagged %d, want %d", len(got), len(tt.wantAmounts))
			}
			for i, amount := range tt.wantAmounts {
				if !almostEqual(got[i].Amount, amount) {
					t.Errorf("flagged[%d].Amount = %v, want %v", i, got[i].Amount, amount)
				}
			}
		})
	}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		q      float64
		want   float64
	}{
		{"median of odd sample", []float64{1, 2, 3, 4, 5}, 0.5, 3},
		{"median interpolates even sample", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"first quartile", []float64{1, 2, 3, 4, 5}, 0.25, 2},
		{"interpolated quartile", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"single element", []float64{7}, 0.75, 7},
		{"maximum", []float64{1, 2, 3}, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quantile(tt.sorted, tt.q)
			if !almostEqual(got, tt.want) {
				t.Errorf("quantile(%v, %v) = %v, want %v", tt.sorted, tt.q, got, tt.want)
			}
		})
	}
}

func TestSpendingAlerts(t *testing.T) {
	when := ts(t, "2024-03-10 14:30")

	t.Run("top three categories, largest first", func(t *testing.T) {
		ledger := ledgerWithCategories(map[string]float64{
			"Rent":    5000,
			"Food":    1500,
			"Travel":  800,
			"Hobbies": 50,
		}, when)

		alerts := SpendingAlerts(ledger)

		want := []string{
			"High spending detected in Rent: 5000.00",
			"High spending detected in Food: 1500.00",
			"High spending detected in Travel: 800.00",
		}
		if len(alerts) != len(want) {
			t.Fatalf("got %d alerts, want %d: %v", len(alerts), len(want), alerts)
		}
		for i := range want {
			if alerts[i] != want[i] {
				t.Errorf("alerts[%d] = %q, want %q", i, alerts[i], want[i])
			}
		}
	})

	t.Run("fewer categories than three", func(t *testing.T) {
		ledger := ledgerWithCategories(map[string]float64{"Food": 100}, when)
		alerts := SpendingAlerts(ledger)
		if len(alerts) != 1 {
			t.Fatalf("got %d alerts, want 1", len(alerts))
		}
		if alerts[0] != "High spending detected in Food: 100.00" {
			t.Errorf("alerts[0] = %q", alerts[0])
		}
	})

	t.Run("equal totals break ties by category name", func(t *testing.T) {
		ledger := ledgerWithCategories(map[string]float64{
			"Zoo":    100,
			"Apple":  100,
			"Mango":  100,
			"Banana": 100,
		}, when)

		alerts := SpendingAlerts(ledger)
		want := []string{
			"High spending detected in Apple: 100.00",
			"High spending detected in Banana: 100.00",
			"High spending detected in Mango: 100.00",
		}
		for i := range want {
			if alerts[i] != want[i] {
				t.Errorf("alerts[%d] = %q, want %q", i, alerts[i], want[i])
			}
		}
	})

	t.Run("empty ledger", func(t *testing.T) {
		if alerts := SpendingAlerts(ledgerWithCategories(nil, when)); len(alerts) != 0 {
			t.Errorf("SpendingAlerts(empty) = %v, want none", alerts)
		}
	})
}
