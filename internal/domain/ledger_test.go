package domain

import (
	"testing"
	"time"
)

func TestLedgerAll_OrderAndSize(t *testing.T) {
	ledger := &Ledger{
		Credits: []Transaction{{UID: "c1"}, {UID: "c2"}},
		Debits:  []Transaction{{UID: "d1"}},
	}

	all := ledger.All()
	if len(all) != 3 || ledger.Size() != 3 {
		t.Fatalf("len(All()) = %d, Size() = %d; want 3", len(all), ledger.Size())
	}

	wantOrder := []string{"c1", "c2", "d1"}
	for i, uid := range wantOrder {
		if all[i].UID != uid {
			t.Errorf("All()[%d].UID = %q, want %q", i, all[i].UID, uid)
		}
	}
}

func TestTransactionTimestampHelpers(t *testing.T) {
	when := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	withTS := Transaction{Timestamp: when}
	if !withTS.HasTimestamp() {
		t.Error("HasTimestamp() = false for a set timestamp")
	}
	if got := withTS.Month(); got != "2024-03" {
		t.Errorf("Month() = %q, want 2024-03", got)
	}

	withoutTS := Transaction{}
	if withoutTS.HasTimestamp() {
		t.Error("HasTimestamp() = true for zero timestamp")
	}
	if got := withoutTS.Month(); got != "" {
		t.Errorf("Month() = %q, want empty", got)
	}
}
