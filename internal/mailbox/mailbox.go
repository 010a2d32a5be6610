// Package mailbox is the notification transport boundary: it delivers the
// bank's notification emails as dated HTML bodies and knows nothing about
// their content.
package mailbox

import (
	"context"
	"time"
)

// Message is one delivered email.
type Message struct {
	Date time.Time // delivery timestamp, used for correlation
	HTML string    // raw HTML body
}

// Source fetches messages delivered on or after a given date.
// Implementations return messages in arrival order, oldest first.
type Source interface {
	Fetch(ctx context.Context, since time.Time) ([]Message, error)
}
