package domain

import (
	"testing"
	"time"
)

func TestParseMilliunits(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "plain amount", in: "150.00", want: 150000},
		{name: "negative amount", in: "-50.00", want: -50000},
		{name: "typographic thousands separator", in: "1’234.56", want: 1234560},
		{name: "comma thousands separator", in: "1,234.56", want: 1234560},
		{name: "integer amount", in: "7", want: 7000},
		{name: "surrounding whitespace", in: " 12.30 ", want: 12300},
		{name: "not a number", in: "12.3O", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMilliunits(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMilliunits(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMilliunits(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		in      string
		want    string
		wantErr bool
	}{
		{name: "swiss format", layout: "02.01.2006", in: "31.12.2024", want: "2024-12-31"},
		{name: "iso date", layout: "2006-01-02", in: "2025-01-15", want: "2025-01-15"},
		{name: "iso datetime truncated", layout: "2006-01-02", in: "2025-01-15 10:30:45", want: "2025-01-15"},
		{name: "garbage", layout: "2006-01-02", in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.layout, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q, %q) error = %v, wantErr %v", tt.layout, tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q, %q) = %s, want %s", tt.layout, tt.in, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	txs := []Transaction{
		{Date: day(3), Payee: "newest"},
		{Date: day(2), Payee: "middle"},
		{Date: day(1), Payee: "oldest"},
	}

	Reverse(txs)

	if txs[0].Payee != "oldest" || txs[2].Payee != "newest" {
		t.Errorf("Reverse order = [%s %s %s], want oldest first", txs[0].Payee, txs[1].Payee, txs[2].Payee)
	}
}
