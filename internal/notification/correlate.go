package notification

import (
	"fmt"
	"time"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// MaxTransferWindow bounds how far apart a card inflow notification and the
// funding account's debit notification may arrive and still describe the
// same transfer. The boundary is exclusive: exactly one minute apart does
// not qualify.
const MaxTransferWindow = time.Minute

// Notification is one extracted email payload with its delivery timestamp.
type Notification struct {
	Date time.Time
	Body string
}

// Outcome records what became of a single notification: either a canonical
// transaction or a drop with its reason. Keeping the reason here lets the
// pipeline log drops without the correlation logic knowing about logging.
type Outcome struct {
	Notification Notification
	Kind         Kind
	Transaction  *domain.Transaction // nil when the notification was dropped
	DropReason   string              // non-empty when Transaction is nil
}

// Dropped reports whether the notification produced no transaction.
func (o *Outcome) Dropped() bool {
	return o.Transaction == nil
}

// Correlate classifies every notification and converts it to a canonical
// transaction where possible. The input must be in arrival order, oldest
// first, because card inflows are resolved against their immediate
// neighbors only: first the preceding notification, then the following one.
// A qualifying neighbor is an account debit within MaxTransferWindow of the
// inflow. Inflows with no qualifying neighbor are dropped (never emitted
// with a made-up amount); the companion debit itself still converts in its
// own right.
//
// Every alias seen must resolve through accounts; an unmapped alias is a
// configuration error that aborts the whole run.
func Correlate(notifs []Notification, accounts map[string]string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(notifs))

	for i, n := range notifs {
		c := Classify(n.Body)
		out := Outcome{Notification: n, Kind: c.Kind}

		switch c.Kind {
		case KindCardOutflow:
			accountID, err := resolveAlias(accounts, "card", c.Alias)
			if err != nil {
				return nil, err
			}
			out.Transaction = &domain.Transaction{
				AccountID:   accountID,
				Date:        dateOnly(n.Date),
				Payee:       c.Payee,
				AmountMilli: -c.AmountMilli, // charge notifications are always outflows
				Cleared:     domain.Uncleared,
			}

		case KindCardInflow:
			amount := resolveInflowAmount(notifs, i)
			if amount == 0 {
				out.DropReason = "no companion debit notification within the transfer window"
				break
			}
			accountID, err := resolveAlias(accounts, "card", c.Alias)
			if err != nil {
				return nil, err
			}
			out.Transaction = &domain.Transaction{
				AccountID:   accountID,
				Date:        dateOnly(n.Date),
				AmountMilli: amount, // a credit to the card, sign positive
				Cleared:     domain.Uncleared,
			}

		case KindAccountMove:
			accountID, err := resolveAlias(accounts, "account", c.Alias)
			if err != nil {
				return nil, err
			}
			amount := c.AmountMilli
			if c.Debited {
				amount = -amount
			}
			out.Transaction = &domain.Transaction{
				AccountID:   accountID,
				Date:        dateOnly(n.Date),
				AmountMilli: amount,
				Cleared:     domain.Uncleared,
			}

		default:
			out.DropReason = "unrecognized notification"
		}

		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// Transactions filters the emitted transactions out of a slice of outcomes,
// preserving the relative order of the triggering notifications.
func Transactions(outcomes []Outcome) []domain.Transaction {
	var txs []domain.Transaction
	for i := range outcomes {
		if outcomes[i].Transaction != nil {
			txs = append(txs, *outcomes[i].Transaction)
		}
	}
	return txs
}

// resolveInflowAmount recovers the amount of a card inflow from a
// neighboring account-debit notification. At most one lookback and one
// lookahead; the preceding neighbor wins when both would qualify.
func resolveInflowAmount(notifs []Notification, i int) int64 {
	if i > 0 {
		if amount := companionDebitAmount(notifs[i-1], notifs[i].Date); amount > 0 {
			return amount
		}
	}
	if i < len(notifs)-1 {
		if amount := companionDebitAmount(notifs[i+1], notifs[i].Date); amount > 0 {
			return amount
		}
	}
	return 0
}

// companionDebitAmount returns the candidate's magnitude when it is an
// account debit delivered strictly within MaxTransferWindow of `at`.
func companionDebitAmount(candidate Notification, at time.Time) int64 {
	c := Classify(candidate.Body)
	if c.Kind != KindAccountMove || !c.Debited {
		return 0
	}
	gap := candidate.Date.Sub(at)
	if gap < 0 {
		gap = -gap
	}
	if gap >= MaxTransferWindow {
		return 0
	}
	return c.AmountMilli
}

func resolveAlias(accounts map[string]string, kind, alias string) (string, error) {
	accountID, ok := accounts[alias]
	if !ok || accountID == "" {
		return "", fmt.Errorf("Correlate: %s %q not present in account map", kind, alias)
	}
	return accountID, nil
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
