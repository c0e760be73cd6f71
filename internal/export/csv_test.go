package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/vvadla/upi-tracker/internal/domain"
)

func TestBuildCSV(t *testing.T) {
	when := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	ledger := &domain.Ledger{
		Credits: []domain.Transaction{
			{
				UID:           "c1",
				Name:          "Employer",
				TransactionID: "UPI001",
				Timestamp:     when,
				Amount:        3000,
				Direction:     domain.DirectionCredit,
				PayeeType:     "Salary",
			},
		},
		Debits: []domain.Transaction{
			{
				UID:       "d1",
				Name:      "Grocery Mart",
				Amount:    123.456,
				Direction: domain.DirectionDebit,
				PayeeType: "Food",
			},
		},
	}

	data, err := BuildCSV(ledger)
	if err != nil {
		t.Fatalf("BuildCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "uid" || records[0][5] != "amount" {
		t.Errorf("unexpected header: %v", records[0])
	}

	// Credits come before debits.
	if records[1][0] != "c1" || records[2][0] != "d1" {
		t.Errorf("row order = %s, %s; want c1, d1", records[1][0], records[2][0])
	}
	if records[1][4] != "2024-03-10 14:30" {
		t.Errorf("timestamp column = %q", records[1][4])
	}
	// Missing timestamp renders empty, row still exported.
	if records[2][4] != "" {
		t.Errorf("empty timestamp column = %q, want empty", records[2][4])
	}
	if records[2][5] != "123.46" {
		t.Errorf("amount column = %q, want 123.46", records[2][5])
	}
}

func TestBuildCSV_EmptyLedger(t *testing.T) {
	data, err := BuildCSV(&domain.Ledger{})
	if err != nil {
		t.Fatalf("BuildCSV() error = %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want header only", len(records))
	}
}

func TestObjectName(t *testing.T) {
	got := ObjectName("2024/03/10", "abc")
	if got != "exports/2024/03/10/abc.csv" {
		t.Errorf("ObjectName() = %q", got)
	}
}
