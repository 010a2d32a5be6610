package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// incomingTransferPayee is the booking text UBS uses for transfers from a
// linked debit account onto the credit card. It is the only case where the
// bare "Amount" column means an inflow.
const incomingTransferPayee = "TRANSFER FROM ACCOUNT"

// ReadCredit parses a UBS credit card CSV export into canonical
// transactions, newest first (the file's native order).
//
// The export starts with a "sep=;" hint line, is ;-delimited, and ends with
// a few summary rows that carry no account number; scanning stops at the
// first such row. Amount priority per row: an explicit Credit field books a
// cleared inflow, an explicit Debit field a cleared outflow; otherwise the
// bare Amount field books an uncleared outflow, flipped to an inflow when
// the booking text is the incoming-transfer marker.
func ReadCredit(r io.Reader, accountID string) ([]domain.Transaction, error) {
	br := bufio.NewReader(r)
	if _, err := br.ReadString('\n'); err != nil {
		return nil, fmt.Errorf("ReadCredit: read sep line: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ReadCredit: read header: %w", err)
	}
	idx, err := newHeaderIndex(header, "Account number", "Purchase date", "Booking text", "Credit", "Debit", "Amount")
	if err != nil {
		return nil, fmt.Errorf("ReadCredit: %w", err)
	}

	var txs []domain.Transaction
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadCredit: read row: %w", err)
		}
		// The last rows hold a summary and have no account number.
		if idx.get(row, "Account number") == "" {
			break
		}

		date, err := domain.ParseDate("02.01.2006", idx.get(row, "Purchase date"))
		if err != nil {
			return nil, fmt.Errorf("ReadCredit: %w", err)
		}

		t := domain.Transaction{
			AccountID: accountID,
			Date:      date,
			Payee:     idx.get(row, "Booking text"),
		}

		switch {
		case idx.get(row, "Credit") != "":
			amount, err := domain.ParseMilliunits(idx.get(row, "Credit"))
			if err != nil {
				return nil, fmt.Errorf("ReadCredit: credit field: %w", err)
			}
			t.AmountMilli = amount
			t.Cleared = domain.Cleared
		case idx.get(row, "Debit") != "":
			amount, err := domain.ParseMilliunits(idx.get(row, "Debit"))
			if err != nil {
				return nil, fmt.Errorf("ReadCredit: debit field: %w", err)
			}
			t.AmountMilli = -amount
			t.Cleared = domain.Cleared
		default:
			// Direction is not stated for pending rows: assume an outflow
			// unless the booking text marks a transfer from a debit account.
			amount, err := domain.ParseMilliunits(idx.get(row, "Amount"))
			if err != nil {
				return nil, fmt.Errorf("ReadCredit: amount field: %w", err)
			}
			t.AmountMilli = -amount
			if t.Payee == incomingTransferPayee {
				t.AmountMilli = -t.AmountMilli
			}
			t.Cleared = domain.Uncleared
		}

		txs = append(txs, t)
	}

	return txs, nil
}
