package domain

import (
	"time"
)

// Direction tells which subset a transaction was submitted into. Membership
// is assigned at submission time and never re-derived from the amount's sign;
// amounts are stored as positive magnitudes.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Transaction represents one recorded UPI payment event.
type Transaction struct {
	UID           string    `json:"uid"`
	Name          string    `json:"name"`
	TransactionID string    `json:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"` // zero value = missing/unparseable
	Amount        float64   `json:"amount"`    // positive magnitude, see Direction
	Direction     Direction `json:"direction"`

	PayeeType         string `json:"payee_type"`
	PersonalReference string `json:"personal_reference,omitempty"`
	Rating            string `json:"transaction_rating,omitempty"`
}

// HasTimestamp reports whether the transaction carries a usable timestamp.
// Records whose stored timestamp could not be parsed come through with the
// zero time; they stay in amount-only aggregations but are excluded (and
// counted) by time-keyed ones.
func (t Transaction) HasTimestamp() bool {
	return !t.Timestamp.IsZero()
}

// Month returns the calendar month key ("YYYY-MM") of the transaction, or
// the empty string when the timestamp is unusable.
func (t Transaction) Month() string {
	if !t.HasTimestamp() {
		return ""
	}
	return t.Timestamp.Format("2006-01")
}
