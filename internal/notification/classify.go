// Package notification reconstructs canonical transactions from the bank's
// email notifications. The hard part is card inflows: the bank never states
// the credited amount, so it has to be recovered from the debit notification
// of the funding account delivered around the same moment.
package notification

import (
	"regexp"
	"strings"

	"github.com/FlasH-RUS/ubs2ynab/internal/domain"
)

// Kind is the closed set of notification shapes the bank sends.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindCardOutflow       // charge on a card: alias, amount, payee
	KindCardInflow        // credit to a card: alias only, no amount
	KindAccountMove       // account debited/credited: alias, direction, amount
)

// String implements fmt.Stringer for log output.
func (k Kind) String() string {
	switch k {
	case KindCardOutflow:
		return "card_outflow"
	case KindCardInflow:
		return "card_inflow"
	case KindAccountMove:
		return "account_move"
	default:
		return "unrecognized"
	}
}

const (
	payloadBegin = "<!-- NOTIFICATION_CONTENT_BEGIN -->"
	payloadEnd   = "<!-- NOTIFICATION_CONTENT_END -->"
)

var (
	payloadRE     = regexp.MustCompile(`(?s)` + payloadBegin + `(.*)` + payloadEnd)
	cardOutflowRE = regexp.MustCompile(`^CHF ([\d’]+\.\d\d) have been charged to card "(\d\d\d\d)"\. (.+)\. Available amount:`)
	cardInflowRE  = regexp.MustCompile(`^Amount available on card "(\d\d\d\d)": CHF`)
	accountMoveRE = regexp.MustCompile(`^Your account "(.+)" has been (debited|credited) CHF ([\d’]+\.\d\d)\.`)
)

// ExtractPayload pulls the notification text out of the email HTML body.
// The bank wraps the interesting part in literal sentinel comments; anything
// outside them is layout noise.
func ExtractPayload(html string) (string, bool) {
	m := payloadRE.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Classified is the result of pattern-matching one notification payload.
// AmountMilli is a positive magnitude; direction is carried by Kind and
// Debited. Card inflows never carry an amount.
type Classified struct {
	Kind        Kind
	Alias       string // card number or account label found in the text
	Debited     bool   // direction for KindAccountMove
	AmountMilli int64  // positive magnitude, 0 for KindCardInflow
	Payee       string // merchant text, KindCardOutflow only
}

// Classify matches a notification payload against the known shapes. A
// payload that matches none of them, or whose amount does not parse, is
// KindUnrecognized.
func Classify(text string) Classified {
	if m := cardOutflowRE.FindStringSubmatch(text); m != nil {
		amount, err := domain.ParseMilliunits(m[1])
		if err != nil {
			return Classified{Kind: KindUnrecognized}
		}
		return Classified{
			Kind:        KindCardOutflow,
			Alias:       m[2],
			AmountMilli: amount,
			Payee:       m[3],
		}
	}

	if m := cardInflowRE.FindStringSubmatch(text); m != nil {
		return Classified{Kind: KindCardInflow, Alias: m[1]}
	}

	if m := accountMoveRE.FindStringSubmatch(text); m != nil {
		amount, err := domain.ParseMilliunits(m[3])
		if err != nil {
			return Classified{Kind: KindUnrecognized}
		}
		return Classified{
			Kind:        KindAccountMove,
			Alias:       m[1],
			Debited:     m[2] == "debited",
			AmountMilli: amount,
		}
	}

	return Classified{Kind: KindUnrecognized}
}
