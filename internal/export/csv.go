// Package export renders ledger snapshots as CSV and uploads them to GCS.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/vvadla/upi-tracker/internal/domain"
)

var csvHeader = []string{
	"uid",
	"direction",
	"name",
	"transaction_id",
	"timestamp",
	"amount",
	"payee_type",
	"personal_reference",
	"transaction_rating",
}

// BuildCSV renders the full ledger as CSV, credits first then debits, one
// row per transaction. Records without a usable timestamp get an empty
// timestamp column; they are still exported.
func BuildCSV(ledger *domain.Ledger) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("BuildCSV: header: %w", err)
	}

	for _, t := range ledger.All() {
		timestamp := ""
		if t.HasTimestamp() {
			timestamp = t.Timestamp.Format("2006-01-02 15:04")
		}
		record := []string{
			t.UID,
			string(t.Direction),
			t.Name,
			t.TransactionID,
			timestamp,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.PayeeType,
			t.PersonalReference,
			t.Rating,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("BuildCSV: row %s: %w", t.UID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("BuildCSV: flush: %w", err)
	}
	return buf.Bytes(), nil
}

// ObjectName returns the GCS object path for an export created now, dated
// so exports shard by day: exports/YYYY/MM/DD/<id>.csv.
func ObjectName(date, id string) string {
	return fmt.Sprintf("exports/%s/%s.csv", date, id)
}
