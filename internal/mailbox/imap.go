package mailbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

// IMAPSource fetches notification emails over IMAP with TLS. Folder should
// be a mailbox that server-side filtering rules keep limited to the bank's
// notifications.
type IMAPSource struct {
	Server   string // host:port
	Address  string
	Password string
	Folder   string
}

// Fetch connects, selects the folder read-only and returns every message
// delivered since the given date. Sequence numbers ascend with arrival, so
// the result is oldest first, which is the order the correlator expects.
func (s *IMAPSource) Fetch(ctx context.Context, since time.Time) ([]Message, error) {
	c, err := client.DialTLS(s.Server, nil)
	if err != nil {
		return nil, fmt.Errorf("mailbox: dial %s: %w", s.Server, err)
	}
	defer c.Logout()

	if deadline, ok := ctx.Deadline(); ok {
		c.Timeout = time.Until(deadline)
	}

	if err := c.Login(s.Address, s.Password); err != nil {
		return nil, fmt.Errorf("mailbox: login %s: %w", s.Address, err)
	}
	if _, err := c.Select(s.Folder, true); err != nil {
		return nil, fmt.Errorf("mailbox: select %q: %w", s.Folder, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	ids, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("mailbox: search since %s: %w", since.Format("2006-01-02"), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchInternalDate, section.FetchItem()}

	fetched := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, fetched)
	}()

	var msgs []Message
	for raw := range fetched {
		body := raw.GetBody(section)
		if body == nil {
			continue
		}
		m, err := readMessage(body, raw.InternalDate)
		if err != nil {
			// A MIME body this code cannot parse is not a bank notification;
			// the pipeline reports it as an unrecognized message.
			msgs = append(msgs, Message{Date: raw.InternalDate})
			continue
		}
		msgs = append(msgs, m)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("mailbox: fetch: %w", err)
	}

	return msgs, nil
}

// readMessage extracts the delivery date and the HTML part of one email.
func readMessage(r io.Reader, fallbackDate time.Time) (Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return Message{}, fmt.Errorf("readMessage: %w", err)
	}

	date, err := mr.Header.Date()
	if err != nil || date.IsZero() {
		date = fallbackDate
	}

	var html string
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Message{}, fmt.Errorf("readMessage: next part: %w", err)
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil || !strings.EqualFold(contentType, "text/html") {
			continue
		}

		b, err := io.ReadAll(part.Body)
		if err != nil {
			return Message{}, fmt.Errorf("readMessage: read html part: %w", err)
		}
		html = string(b)
		break
	}

	return Message{Date: date, HTML: html}, nil
}
