package bigquery

import (
	"context"

	"github.com/vvadla/upi-tracker/internal/domain"
)

// LedgerRepository is the ledger provider contract consumed by the handlers
// and the CLI. Implementations own their client lifecycle: constructed
// before first use, closed on shutdown.
type LedgerRepository interface {
	// InsertTransaction writes one row into the subset table matching
	// the direction.
	InsertTransaction(ctx context.Context, direction domain.Direction, row *TransactionRow) error

	// LoadAllTransactions returns both subsets in stored order.
	LoadAllTransactions(ctx context.Context) (credits, debits []*TransactionRow, err error)

	// Close releases the underlying client.
	Close() error
}

// LoadLedger loads both subsets and maps them into a domain ledger.
func LoadLedger(ctx context.Context, repo LedgerRepository) (*domain.Ledger, error) {
	credits, debits, err := repo.LoadAllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return ToLedger(credits, debits), nil
}
