// Package pipeline orchestrates one import run: normalize a source into
// canonical transactions, put the batch into the order the id assigner
// expects, assign import ids and hand the result to the ledger. Each run is
// a pure function from (source data, configuration) to a submitted batch or
// a fatal error; recoverable drops are logged, never silently swallowed.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/FlasH-RUS/ubs2ynab/internal/csvimport"
	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
	"github.com/FlasH-RUS/ubs2ynab/internal/importid"
	"github.com/FlasH-RUS/ubs2ynab/internal/ledger"
	"github.com/FlasH-RUS/ubs2ynab/internal/mailbox"
	"github.com/FlasH-RUS/ubs2ynab/internal/notification"
)

// DefaultFetchDays is how far back the notification import looks by default.
const DefaultFetchDays = 1

// Importer runs import modes against a single ledger submitter.
type Importer struct {
	submitter ledger.Submitter
	log       zerolog.Logger
}

// New creates an Importer; every log line of the run carries a fresh run id.
func New(submitter ledger.Submitter, log zerolog.Logger) *Importer {
	return &Importer{
		submitter: submitter,
		log:       log.With().Str("run_id", uuid.NewString()).Logger(),
	}
}

// ImportCreditCSV imports a credit card CSV export. The file is natively
// newest-first, which is exactly the orientation id assignment needs.
func (imp *Importer) ImportCreditCSV(ctx context.Context, r io.Reader, accountID string) error {
	txs, err := csvimport.ReadCredit(r, accountID)
	if err != nil {
		return fmt.Errorf("ImportCreditCSV: %w", err)
	}
	return imp.finish(ctx, "credit_csv", txs)
}

// ImportDebitCSV imports a debit account CSV export (natively newest-first).
func (imp *Importer) ImportDebitCSV(ctx context.Context, r io.Reader, accountID string) error {
	txs, err := csvimport.ReadDebit(r, accountID)
	if err != nil {
		return fmt.Errorf("ImportDebitCSV: %w", err)
	}
	return imp.finish(ctx, "debit_csv", txs)
}

// ImportRevolutCSV imports a Revolut statement. Revolut exports oldest
// first, so the batch is reversed before ids are assigned; getting this
// wrong would silently flip the ordinal of every same-day same-amount
// transaction.
func (imp *Importer) ImportRevolutCSV(ctx context.Context, r io.Reader, accountID string) error {
	txs, err := csvimport.ReadRevolut(r, accountID)
	if err != nil {
		return fmt.Errorf("ImportRevolutCSV: %w", err)
	}
	domain.Reverse(txs)
	return imp.finish(ctx, "revolut_csv", txs)
}

// ImportNotifications fetches the last `days` days of bank notification
// emails, correlates them into transactions and submits the result. Drops
// (unrecognized messages, card inflows with no companion debit) are logged
// one by one and never abort the run; an alias missing from accounts does.
func (imp *Importer) ImportNotifications(ctx context.Context, src mailbox.Source, accounts map[string]string, days int) error {
	if days <= 0 {
		days = DefaultFetchDays
	}
	since := time.Now().AddDate(0, 0, -days)

	msgs, err := src.Fetch(ctx, since)
	if err != nil {
		return fmt.Errorf("ImportNotifications: %w", err)
	}
	imp.log.Info().Int("messages", len(msgs)).Msg("fetched notification emails")

	var notifs []notification.Notification
	for _, m := range msgs {
		payload, ok := notification.ExtractPayload(m.HTML)
		if !ok {
			imp.log.Warn().Time("delivered", m.Date).Msg("message carries no notification payload")
			continue
		}
		notifs = append(notifs, notification.Notification{Date: m.Date, Body: payload})
	}
	if len(notifs) == 0 {
		imp.log.Info().Msg("no notifications to import")
		return nil
	}

	outcomes, err := notification.Correlate(notifs, accounts)
	if err != nil {
		return fmt.Errorf("ImportNotifications: %w", err)
	}
	for i := range outcomes {
		o := &outcomes[i]
		if o.Dropped() {
			imp.log.Warn().
				Time("delivered", o.Notification.Date).
				Stringer("kind", o.Kind).
				Str("reason", o.DropReason).
				Msg("notification dropped")
			continue
		}
		imp.log.Debug().
			Time("delivered", o.Notification.Date).
			Stringer("kind", o.Kind).
			Str("account_id", o.Transaction.AccountID).
			Int64("amount_milli", o.Transaction.AmountMilli).
			Msg("notification converted")
	}

	txs := notification.Transactions(outcomes)
	// Arrival order is oldest first; id assignment wants newest first.
	domain.Reverse(txs)
	return imp.finish(ctx, "email_notifications", txs)
}

// finish assigns import ids to a newest-first batch and submits it oldest
// first. The second reversal only changes presentation order; the ids are
// already fixed.
func (imp *Importer) finish(ctx context.Context, source string, txs []domain.Transaction) error {
	log := imp.log.With().Str("source", source).Logger()

	if len(txs) == 0 {
		log.Info().Msg("no transactions to submit")
		return nil
	}

	importid.Populate(txs)
	domain.Reverse(txs)

	res, err := imp.submitter.Submit(ctx, txs)
	if err != nil {
		return fmt.Errorf("finish: submit %d transactions: %w", len(txs), err)
	}

	log.Info().
		Int("transactions", len(txs)).
		Int("saved", res.Created).
		Int("duplicates", res.Duplicates).
		Msg("batch submitted")
	return nil
}
