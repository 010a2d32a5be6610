// Package ledger is the submission boundary to the remote budgeting ledger.
// It receives one finished batch per run and reports how many transactions
// the ledger created versus recognized as duplicates by import id.
package ledger

import (
	"context"

	"github.com/brunomvsouza/ynab.go/api/transaction"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// Result is the ledger's answer to one submission.
type Result struct {
	Created    int // transactions newly created
	Duplicates int // transactions already present, matched by import id
}

// Submitter accepts one batch of canonical transactions per call.
// Implementations make at most one remote call and never retry; a failure
// aborts the whole run.
type Submitter interface {
	Submit(ctx context.Context, batch []domain.Transaction) (Result, error)
}

// TransactionWriter is the slice of the YNAB SDK the submitter needs.
// This interface enables mocking the remote API in tests.
type TransactionWriter interface {
	CreateTransactions(budgetID string, ps []transaction.PayloadTransaction) (*transaction.OperationSummary, error)
}
