package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

const (
	// Only the main current account is imported; pockets, savings and crypto
	// products live outside the budget.
	revolutProductCurrent = "Current"

	revolutStateCompleted = "COMPLETED"
	revolutTypeTransfer   = "Transfer"

	// Internal transfers that must not show up as spending.
	pocketTransferPrefix  = "To pocket "
	balanceMigrationPayee = "Balance migration to another region or legal entity"
)

// ReadRevolut parses a Revolut account statement CSV into canonical
// transactions, oldest first (the file's native order; the caller reverses
// before import ids are assigned).
//
// The booked amount is Amount minus Fee, with the fee always subtracted
// whatever the sign of the amount.
//
// TODO: the fee probably should not be deducted; this matches how the rows
// have been written down manually so far.
func ReadRevolut(r io.Reader, accountID string) ([]domain.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ReadRevolut: read header: %w", err)
	}
	idx, err := newHeaderIndex(header, "Product", "Type", "Description", "Started Date", "Amount", "Fee", "State")
	if err != nil {
		return nil, fmt.Errorf("ReadRevolut: %w", err)
	}

	var txs []domain.Transaction
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadRevolut: read row: %w", err)
		}

		if idx.get(row, "Product") != revolutProductCurrent {
			continue
		}

		description := idx.get(row, "Description")
		if idx.get(row, "Type") == revolutTypeTransfer &&
			(strings.HasPrefix(description, pocketTransferPrefix) || description == balanceMigrationPayee) {
			continue
		}

		date, err := domain.ParseDate("2006-01-02", idx.get(row, "Started Date"))
		if err != nil {
			return nil, fmt.Errorf("ReadRevolut: %w", err)
		}

		amount, err := domain.ParseMilliunits(idx.get(row, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("ReadRevolut: amount: %w", err)
		}
		fee, err := domain.ParseMilliunits(idx.get(row, "Fee"))
		if err != nil {
			return nil, fmt.Errorf("ReadRevolut: fee: %w", err)
		}

		cleared := domain.Uncleared
		if idx.get(row, "State") == revolutStateCompleted {
			cleared = domain.Cleared
		}

		txs = append(txs, domain.Transaction{
			AccountID:   accountID,
			Date:        date,
			Payee:       description,
			AmountMilli: amount - fee,
			Cleared:     cleared,
		})
	}

	return txs, nil
}
