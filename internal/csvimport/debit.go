package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// debitInfoLines is the number of account-metadata lines a UBS debit account
// export carries before the actual table header.
const debitInfoLines = 9

// ReadDebit parses a UBS debit account CSV export into canonical
// transactions, newest first (the file's native order).
//
// Amounts are already signed by the source: Credit holds positive inflows,
// Debit negative outflows, exactly one of the two is set per row. Every row
// is settled.
func ReadDebit(r io.Reader, accountID string) ([]domain.Transaction, error) {
	br := bufio.NewReader(r)
	for i := 0; i < debitInfoLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("ReadDebit: skip info line %d: %w", i+1, err)
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ReadDebit: read header: %w", err)
	}
	idx, err := newHeaderIndex(header, "Trade date", "Description1", "Credit", "Debit")
	if err != nil {
		return nil, fmt.Errorf("ReadDebit: %w", err)
	}

	var txs []domain.Transaction
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadDebit: read row: %w", err)
		}

		date, err := domain.ParseDate("2006-01-02", idx.get(row, "Trade date"))
		if err != nil {
			return nil, fmt.Errorf("ReadDebit: %w", err)
		}

		strAmount := idx.get(row, "Credit")
		if strAmount == "" {
			strAmount = idx.get(row, "Debit")
		}
		amount, err := domain.ParseMilliunits(strAmount)
		if err != nil {
			return nil, fmt.Errorf("ReadDebit: amount: %w", err)
		}

		txs = append(txs, domain.Transaction{
			AccountID:   accountID,
			Date:        date,
			Payee:       idx.get(row, "Description1"),
			AmountMilli: amount,
			Cleared:     domain.Cleared,
		})
	}

	return txs, nil
}
