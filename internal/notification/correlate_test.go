package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

var testAccounts = map[string]string{
	"1234":             "ynab-card",
	"Personal Account": "ynab-account",
}

func at(sec int) time.Time {
	return time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func debitNotif(sec int, amount string) Notification {
	return Notification{Date: at(sec), Body: `Your account "Personal Account" has been debited CHF ` + amount + `.`}
}

func inflowNotif(sec int) Notification {
	return Notification{Date: at(sec), Body: `Amount available on card "1234": CHF 2’000.00.`}
}

func TestCorrelate_DirectConversions(t *testing.T) {
	notifs := []Notification{
		{Date: at(0), Body: `CHF 12.50 have been charged to card "1234". COFFEE SHOP. Available amount: CHF 1.00.`},
		{Date: at(10), Body: `Your account "Personal Account" has been credited CHF 3’000.00.`},
		{Date: at(20), Body: `Your account "Personal Account" has been debited CHF 99.95.`},
	}

	outcomes, err := Correlate(notifs, testAccounts)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	txs := Transactions(outcomes)
	require.Len(t, txs, 3)

	assert.Equal(t, domain.Transaction{
		AccountID:   "ynab-card",
		Date:        time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Payee:       "COFFEE SHOP",
		AmountMilli: -12500,
		Cleared:     domain.Uncleared,
	}, txs[0])
	assert.Equal(t, int64(3000000), txs[1].AmountMilli)
	assert.Equal(t, int64(-99950), txs[2].AmountMilli)
	assert.Equal(t, "ynab-account", txs[1].AccountID)
}

func TestCorrelate_InflowResolvedFromPrecedingDebit(t *testing.T) {
	notifs := []Notification{
		debitNotif(0, "750.00"),
		inflowNotif(30),
	}

	outcomes, err := Correlate(notifs, testAccounts)
	require.NoError(t, err)

	txs := Transactions(outcomes)
	// The debit converts in its own right AND funds the card inflow.
	require.Len(t, txs, 2)
	assert.Equal(t, int64(-750000), txs[0].AmountMilli)
	assert.Equal(t, "ynab-account", txs[0].AccountID)
	assert.Equal(t, int64(750000), txs[1].AmountMilli)
	assert.Equal(t, "ynab-card", txs[1].AccountID)
	assert.Empty(t, txs[1].Payee)
}

func TestCorrelate_InflowSymmetry(t *testing.T) {
	before := []Notification{debitNotif(0, "750.00"), inflowNotif(30)}
	after := []Notification{inflowNotif(30), debitNotif(59, "750.00")}

	fromBefore, err := Correlate(before, testAccounts)
	require.NoError(t, err)
	fromAfter, err := Correlate(after, testAccounts)
	require.NoError(t, err)

	var inflowBefore, inflowAfter *domain.Transaction
	for i := range fromBefore {
		if fromBefore[i].Kind == KindCardInflow {
			inflowBefore = fromBefore[i].Transaction
		}
	}
	for i := range fromAfter {
		if fromAfter[i].Kind == KindCardInflow {
			inflowAfter = fromAfter[i].Transaction
		}
	}

	require.NotNil(t, inflowBefore)
	require.NotNil(t, inflowAfter)
	assert.Equal(t, *inflowBefore, *inflowAfter)
}

func TestCorrelate_WindowBoundary(t *testing.T) {
	tests := []struct {
		name    string
		gapSec  int
		matched bool
	}{
		{name: "59s qualifies", gapSec: 59, matched: true},
		{name: "exactly 60s does not", gapSec: 60, matched: false},
		{name: "61s does not", gapSec: 61, matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifs := []Notification{
				debitNotif(0, "100.00"),
				inflowNotif(tt.gapSec),
			}

			outcomes, err := Correlate(notifs, testAccounts)
			require.NoError(t, err)

			inflow := outcomes[1]
			assert.Equal(t, KindCardInflow, inflow.Kind)
			if tt.matched {
				require.NotNil(t, inflow.Transaction)
				assert.Equal(t, int64(100000), inflow.Transaction.AmountMilli)
			} else {
				assert.True(t, inflow.Dropped())
				assert.Contains(t, inflow.DropReason, "no companion")
			}
		})
	}
}

func TestCorrelate_PrecedingNeighborWins(t *testing.T) {
	notifs := []Notification{
		debitNotif(0, "111.00"),
		inflowNotif(10),
		debitNotif(20, "222.00"),
	}

	outcomes, err := Correlate(notifs, testAccounts)
	require.NoError(t, err)

	inflow := outcomes[1]
	require.NotNil(t, inflow.Transaction)
	assert.Equal(t, int64(111000), inflow.Transaction.AmountMilli)
}

func TestCorrelate_LookaheadOnlyAfterLookbackFails(t *testing.T) {
	notifs := []Notification{
		// Preceding neighbor is a credit, not a debit: does not qualify.
		{Date: at(0), Body: `Your account "Personal Account" has been credited CHF 111.00.`},
		inflowNotif(10),
		debitNotif(20, "222.00"),
	}

	outcomes, err := Correlate(notifs, testAccounts)
	require.NoError(t, err)

	inflow := outcomes[1]
	require.NotNil(t, inflow.Transaction)
	assert.Equal(t, int64(222000), inflow.Transaction.AmountMilli)
}

func TestCorrelate_UnresolvedInflowDropsWithoutTransaction(t *testing.T) {
	notifs := []Notification{inflowNotif(0)}

	outcomes, err := Correlate(notifs, testAccounts)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.True(t, outcomes[0].Dropped())
	assert.Empty(t, Transactions(outcomes))
}

func TestCorrelate_NeighborSearchIsNotUnbounded(t *testing.T) {
	// A qualifying debit two positions away must be ignored.
	notifs := []Notification{
		debitNotif(0, "750.00"),
		{Date: at(5), Body: "something unrecognized"},
		inflowNotif(10),
	}

	outcomes, err := Correlate(notifs, testAccounts)
	require.NoError(t, err)

	assert.True(t, outcomes[2].Dropped())
}

func TestCorrelate_UnrecognizedDroppedWithReason(t *testing.T) {
	notifs := []Notification{{Date: at(0), Body: "Your e-banking contract was updated."}}

	outcomes, err := Correlate(notifs, testAccounts)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Dropped())
	assert.Equal(t, "unrecognized notification", outcomes[0].DropReason)
}

func TestCorrelate_UnmappedAliasIsFatal(t *testing.T) {
	notifs := []Notification{
		{Date: at(0), Body: `CHF 5.00 have been charged to card "9999". SHOP. Available amount: CHF 1.00.`},
	}

	_, err := Correlate(notifs, testAccounts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"9999"`)
}
