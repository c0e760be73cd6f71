package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/vvadla/upi-tracker/internal/domain"
)

const (
	creditTable = "credit_transactions"
	debitTable  = "debit_transactions"
)

func tableFor(direction domain.Direction) (string, error) {
	switch direction {
	case domain.DirectionCredit:
		return creditTable, nil
	case domain.DirectionDebit:
		return debitTable, nil
	default:
		return "", fmt.Errorf("unknown direction %q", direction)
	}
}

// InsertTransactionWithClient inserts one row into the subset table matching
// the direction using the provided BigQuery client.
func InsertTransactionWithClient(ctx context.Context, client *bigquery.Client, dataset string, direction domain.Direction, row *TransactionRow) error {
	tableName, err := tableFor(direction)
	if err != nil {
		return fmt.Errorf("InsertTransaction: %w", err)
	}

	inserter := client.Dataset(dataset).Table(tableName).Inserter()
	if err := inserter.Put(ctx, []*TransactionRow{row}); err != nil {
		return fmt.Errorf("InsertTransaction: inserting into %s: %w", tableName, err)
	}
	return nil
}

// QueryTransactionsWithClient reads every row of one subset table in stored
// order using the provided BigQuery client.
func QueryTransactionsWithClient(ctx context.Context, client *bigquery.Client, dataset string, direction domain.Direction) ([]*TransactionRow, error) {
	tableName, err := tableFor(direction)
	if err != nil {
		return nil, fmt.Errorf("QueryTransactions: %w", err)
	}

	q := client.Query(fmt.Sprintf(`
		SELECT
			transaction_uid,
			name,
			transaction_id,
			booking_datetime,
			amount,
			payee_type,
			personal_reference,
			transaction_rating,
			created_ts
		FROM %s.%s
		ORDER BY created_ts, transaction_uid
	`, dataset, tableName))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("QueryTransactions: query read: %w", err)
	}

	var rows []*TransactionRow
	for {
		var r TransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("QueryTransactions: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}
