package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/vvadla/upi-tracker/internal/domain"
)

// TransactionRow is one row of upi.credit_transactions or
// upi.debit_transactions. Which table a row lives in determines its
// direction; the row itself does not carry one.
type TransactionRow struct {
	TransactionUID string `bigquery:"transaction_uid"` // REQUIRED

	Name          string `bigquery:"name"`           // REQUIRED
	TransactionID string `bigquery:"transaction_id"` // REQUIRED, external reference, not unique across tables

	BookingDatetime bigquery.NullDateTime `bigquery:"booking_datetime"` // NULLABLE

	Amount *big.Rat `bigquery:"amount"` // REQUIRED NUMERIC, positive magnitude

	PayeeType         string              `bigquery:"payee_type"`         // REQUIRED
	PersonalReference bigquery.NullString `bigquery:"personal_reference"` // NULLABLE
	Rating            bigquery.NullString `bigquery:"transaction_rating"` // NULLABLE

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED
}

// NewTransactionRow maps a domain transaction into its storage row.
func NewTransactionRow(t domain.Transaction) *TransactionRow {
	row := &TransactionRow{
		TransactionUID: t.UID,
		Name:           t.Name,
		TransactionID:  t.TransactionID,
		Amount:         new(big.Rat).SetFloat64(t.Amount),
		PayeeType:      t.PayeeType,
		CreatedTS:      time.Now().UTC(),
	}
	if t.HasTimestamp() {
		row.BookingDatetime = bigquery.NullDateTime{
			DateTime: civil.DateTimeOf(t.Timestamp),
			Valid:    true,
		}
	}
	if t.PersonalReference != "" {
		row.PersonalReference = bigquery.NullString{StringVal: t.PersonalReference, Valid: true}
	}
	if t.Rating != "" {
		row.Rating = bigquery.NullString{StringVal: t.Rating, Valid: true}
	}
	return row
}

// ToDomain maps a storage row back into a domain transaction. A null or
// unusable booking datetime maps to the zero time rather than an error so a
// single malformed row never aborts a ledger load.
func (r *TransactionRow) ToDomain(direction domain.Direction) domain.Transaction {
	t := domain.Transaction{
		UID:           r.TransactionUID,
		Name:          r.Name,
		TransactionID: r.TransactionID,
		Direction:     direction,
		PayeeType:     r.PayeeType,
	}
	if r.Amount != nil {
		t.Amount, _ = r.Amount.Float64()
	}
	if r.BookingDatetime.Valid {
		t.Timestamp = r.BookingDatetime.DateTime.In(time.UTC)
	}
	if r.PersonalReference.Valid {
		t.PersonalReference = r.PersonalReference.StringVal
	}
	if r.Rating.Valid {
		t.Rating = r.Rating.StringVal
	}
	return t
}

// ToLedger maps the two row subsets into a domain ledger, preserving row
// order within each subset.
func ToLedger(credits, debits []*TransactionRow) *domain.Ledger {
	ledger := &domain.Ledger{
		Credits: make([]domain.Transaction, 0, len(credits)),
		Debits:  make([]domain.Transaction, 0, len(debits)),
	}
	for _, row := range credits {
		ledger.Credits = append(ledger.Credits, row.ToDomain(domain.DirectionCredit))
	}
	for _, row := range debits {
		ledger.Debits = append(ledger.Debits, row.ToDomain(domain.DirectionDebit))
	}
	return ledger
}
