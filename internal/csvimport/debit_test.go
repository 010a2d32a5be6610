package csvimport

import (
	"strings"
	"testing"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

func debitFile(rows ...string) string {
	var b strings.Builder
	// The export starts with 9 account-metadata lines.
	for i := 0; i < debitInfoLines; i++ {
		b.WriteString("Account info line\n")
	}
	b.WriteString("Trade date;Description1;Credit;Debit\n")
	for _, row := range rows {
		b.WriteString(row + "\n")
	}
	return b.String()
}

func TestReadDebit(t *testing.T) {
	in := debitFile(
		"2025-02-03;SALARY;5000.00;",
		"2025-02-01;GROCERIES;;-81.35",
	)

	txs, err := ReadDebit(strings.NewReader(in), "acct-debit")
	if err != nil {
		t.Fatalf("ReadDebit failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}

	if txs[0].AmountMilli != 5000000 || txs[0].Payee != "SALARY" {
		t.Errorf("row 0 = %+v, want SALARY +5000000", txs[0])
	}
	// The source signs debits itself; the sign is preserved as given.
	if txs[1].AmountMilli != -81350 || txs[1].DateISO() != "2025-02-01" {
		t.Errorf("row 1 = %+v, want GROCERIES -81350 on 2025-02-01", txs[1])
	}
	for _, tx := range txs {
		if tx.Cleared != domain.Cleared {
			t.Errorf("%s: cleared = %q, want cleared", tx.Payee, tx.Cleared)
		}
	}
}

func TestReadDebit_DatetimeTradeDate(t *testing.T) {
	in := debitFile("2025-02-03 14:22:00;CARD PAYMENT;;-10.00")

	txs, err := ReadDebit(strings.NewReader(in), "acct")
	if err != nil {
		t.Fatalf("ReadDebit failed: %v", err)
	}
	if txs[0].DateISO() != "2025-02-03" {
		t.Errorf("date = %s, want 2025-02-03 (time of day discarded)", txs[0].DateISO())
	}
}

func TestReadDebit_MalformedAmountIsFatal(t *testing.T) {
	in := debitFile("2025-02-03;BROKEN;;abc")
	if _, err := ReadDebit(strings.NewReader(in), "acct"); err == nil {
		t.Fatal("ReadDebit succeeded, want fatal parse error")
	}
}

func TestReadDebit_TruncatedFileIsFatal(t *testing.T) {
	in := "only one line\n"
	if _, err := ReadDebit(strings.NewReader(in), "acct"); err == nil {
		t.Fatal("ReadDebit succeeded, want error for missing info lines")
	}
}
