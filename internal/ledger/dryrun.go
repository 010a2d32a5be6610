package ledger

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// DryRun logs the batch it would submit and never calls the remote API.
// The rest of the run is identical to a real one.
type DryRun struct {
	Log zerolog.Logger
}

// Submit logs every would-be payload at debug level.
func (d *DryRun) Submit(ctx context.Context, batch []domain.Transaction) (Result, error) {
	for i := range batch {
		t := &batch[i]
		d.Log.Debug().
			Str("import_id", t.ImportID).
			Str("account_id", t.AccountID).
			Str("date", t.DateISO()).
			Int64("amount_milli", t.AmountMilli).
			Str("payee", t.Payee).
			Str("cleared", string(t.Cleared)).
			Msg("dry run: would submit transaction")
	}
	d.Log.Info().Int("transactions", len(batch)).Msg("dry run: submission call skipped")
	return Result{}, nil
}
