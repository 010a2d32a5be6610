package ledger

import (
	"context"
	"fmt"

	ynab "github.com/brunomvsouza/ynab.go"
	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// YNAB submits batches to a YNAB budget through the official API.
type YNAB struct {
	writer   TransactionWriter
	budgetID string
}

// NewYNAB creates a submitter authenticated with a personal access token.
func NewYNAB(accessToken, budgetID string) *YNAB {
	return &YNAB{
		writer:   ynab.NewClient(accessToken).Transaction(),
		budgetID: budgetID,
	}
}

// NewYNABWithWriter creates a submitter over a custom writer (for tests).
func NewYNABWithWriter(writer TransactionWriter, budgetID string) *YNAB {
	return &YNAB{writer: writer, budgetID: budgetID}
}

// Submit maps the batch to API payloads and creates them in a single call.
func (y *YNAB) Submit(ctx context.Context, batch []domain.Transaction) (Result, error) {
	payloads := make([]transaction.PayloadTransaction, 0, len(batch))
	for i := range batch {
		p, err := payloadFromTransaction(&batch[i])
		if err != nil {
			return Result{}, fmt.Errorf("Submit: %w", err)
		}
		payloads = append(payloads, p)
	}

	summary, err := y.writer.CreateTransactions(y.budgetID, payloads)
	if err != nil {
		return Result{}, fmt.Errorf("Submit: create transactions: %w", err)
	}

	return Result{
		Created:    len(summary.TransactionIDs),
		Duplicates: len(summary.DuplicateImportIDs),
	}, nil
}

// payloadFromTransaction converts a canonical transaction to the API
// payload. A transaction without an import id or account id must never
// reach the boundary; both are programming or configuration errors.
func payloadFromTransaction(t *domain.Transaction) (transaction.PayloadTransaction, error) {
	if t.ImportID == "" {
		return transaction.PayloadTransaction{}, fmt.Errorf("payloadFromTransaction: transaction on %s (%d) has no import id", t.DateISO(), t.AmountMilli)
	}
	if t.AccountID == "" {
		return transaction.PayloadTransaction{}, fmt.Errorf("payloadFromTransaction: transaction %s has no account id", t.ImportID)
	}

	importID := t.ImportID
	p := transaction.PayloadTransaction{
		AccountID: t.AccountID,
		Date:      api.Date{Time: t.Date},
		Amount:    t.AmountMilli,
		Cleared:   clearingStatus(t.Cleared),
		ImportID:  &importID,
	}
	if t.Payee != "" {
		payee := t.Payee
		p.PayeeName = &payee
	}
	return p, nil
}

func clearingStatus(s domain.ClearedStatus) transaction.ClearingStatus {
	if s == domain.Cleared {
		return transaction.ClearingStatusCleared
	}
	return transaction.ClearingStatusUncleared
}
