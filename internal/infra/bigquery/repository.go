package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/vvadla/upi-tracker/internal/domain"
)

// BigQueryLedgerRepository is the concrete LedgerRepository backed by the
// upi dataset. It holds a shared BigQuery client so every operation reuses
// one connection.
type BigQueryLedgerRepository struct {
	client  *bigquery.Client
	dataset string
}

// NewLedgerRepository creates a repository with its own BigQuery client.
// The caller owns the lifecycle and must Close it on shutdown.
func NewLedgerRepository(ctx context.Context, projectID, dataset string) (*BigQueryLedgerRepository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewLedgerRepository: creating client: %w", err)
	}
	return &BigQueryLedgerRepository{client: client, dataset: dataset}, nil
}

// InsertTransaction implements LedgerRepository.
func (r *BigQueryLedgerRepository) InsertTransaction(ctx context.Context, direction domain.Direction, row *TransactionRow) error {
	return InsertTransactionWithClient(ctx, r.client, r.dataset, direction, row)
}

// LoadAllTransactions implements LedgerRepository.
func (r *BigQueryLedgerRepository) LoadAllTransactions(ctx context.Context) ([]*TransactionRow, []*TransactionRow, error) {
	credits, err := QueryTransactionsWithClient(ctx, r.client, r.dataset, domain.DirectionCredit)
	if err != nil {
		return nil, nil, fmt.Errorf("LoadAllTransactions: credits: %w", err)
	}
	debits, err := QueryTransactionsWithClient(ctx, r.client, r.dataset, domain.DirectionDebit)
	if err != nil {
		return nil, nil, fmt.Errorf("LoadAllTransactions: debits: %w", err)
	}
	return credits, debits, nil
}

// Close implements LedgerRepository.
func (r *BigQueryLedgerRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

var _ LedgerRepository = (*BigQueryLedgerRepository)(nil)
