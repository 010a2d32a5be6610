package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClearedStatus reflects whether the source considers a transaction settled.
type ClearedStatus string

const (
	Cleared   ClearedStatus = "cleared"
	Uncleared ClearedStatus = "uncleared"
)

// Transaction is the canonical model every source converges to before
// submission to the ledger. Amounts are milliunits (1 major currency unit =
// 1000 milliunits), signed: positive = inflow, negative = outflow. No float
// ever reaches the ledger boundary.
type Transaction struct {
	AccountID   string    // destination ledger account, assigned by the normalizer
	Date        time.Time // booking date, time-of-day truncated
	Payee       string    // free text, may be empty for notification-derived rows
	AmountMilli int64     // signed milliunits
	Cleared     ClearedStatus
	ImportID    string // dedup identifier; empty until importid.Populate runs
}

// DateISO returns the booking date in ISO format (YYYY-MM-DD).
func (t *Transaction) DateISO() string {
	return t.Date.Format("2006-01-02")
}

// thousandsSeparators are stripped before amounts are parsed. UBS uses the
// typographic apostrophe in notification and CSV amounts.
var thousandsSeparators = strings.NewReplacer("’", "", "'", "", ",", "", " ", "")

// ParseMilliunits converts a decimal amount string (e.g. "1’234.56") to
// signed milliunits using exact decimal arithmetic.
func ParseMilliunits(s string) (int64, error) {
	cleaned := thousandsSeparators.Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("ParseMilliunits: parse %q: %w", s, err)
	}
	return d.Shift(3).IntPart(), nil
}

// ParseDate parses a calendar date in the given layout and truncates any
// time-of-day the source may carry after the date itself.
func ParseDate(layout, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(layout) {
		s = s[:len(layout)]
	}
	d, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate: parse %q: %w", s, err)
	}
	return d, nil
}

// Reverse flips a batch in place between newest-first and oldest-first
// orientation.
func Reverse(txs []Transaction) {
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}
}
