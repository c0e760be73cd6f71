package domain

// Ledger is the full working set of transactions available to the analytics
// layer at request time, partitioned by how each transaction was submitted.
// Every transaction belongs to exactly one subset.
type Ledger struct {
	Credits []Transaction `json:"credits"`
	Debits  []Transaction `json:"debits"`
}

// All returns the combined working set, credits followed by debits. This
// concatenation order is the input order that order-preserving consumers
// (outlier detection) rely on.
func (l *Ledger) All() []Transaction {
	out := make([]Transaction, 0, len(l.Credits)+len(l.Debits))
	out = append(out, l.Credits...)
	out = append(out, l.Debits...)
	return out
}

// Size returns the number of transactions across both subsets.
func (l *Ledger) Size() int {
	return len(l.Credits) + len(l.Debits)
}

// MonthlyBucket is one (month, total) pair of the time-series aggregation.
// Month keys are "YYYY-MM", which sort lexicographically in calendar order.
type MonthlyBucket struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}
