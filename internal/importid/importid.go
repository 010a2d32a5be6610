// Package importid assigns deterministic deduplication identifiers so that
// re-running an import never creates duplicate transactions in the ledger.
package importid

import (
	"fmt"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// Namespace prefixes every generated identifier.
const Namespace = "UBS2YNAB"

// groupKey identifies the set of transactions that compete for ordinals:
// same booking date, same signed amount. Payee deliberately does not
// contribute, so institution-side retries keep a stable ordinal position
// across re-imports.
type groupKey struct {
	date   string
	amount int64
}

// Populate assigns an import id to every transaction that lacks one.
//
// Identifier format: "UBS2YNAB:<amount_milli>:<date ISO>:<ordinal>" where
// ordinal is the 0-based position among all transactions sharing the same
// (date, amount), counted oldest-first.
//
// The input must be ordered newest-first (the native scan order of the UBS
// CSV exports); see the per-source normalizers for which feeds get reversed
// beforehand. Previously assigned transactions are never revisited, which
// makes a second pass over a fully assigned batch a no-op.
func Populate(txs []domain.Transaction) {
	groups := make(map[groupKey][]int, len(txs))
	for i := range txs {
		k := groupKey{date: txs[i].DateISO(), amount: txs[i].AmountMilli}
		groups[k] = append(groups[k], i)
	}

	for i := range txs {
		if txs[i].ImportID != "" {
			continue
		}

		k := groupKey{date: txs[i].DateISO(), amount: txs[i].AmountMilli}
		indices := groups[k]
		// Input is newest-first; walking the group back-to-front yields
		// ordinal 0 for the oldest member.
		for ordinal := 0; ordinal < len(indices); ordinal++ {
			member := &txs[indices[len(indices)-1-ordinal]]
			member.ImportID = fmt.Sprintf("%s:%d:%s:%d", Namespace, member.AmountMilli, member.DateISO(), ordinal)
		}
	}
}
