package mailbox

import (
	"strings"
	"testing"
	"time"
)

const multipartEmail = "Date: Thu, 10 Apr 2025 12:00:30 +0200\r\n" +
	"From: notifications@bank.example\r\n" +
	"To: me@example.com\r\n" +
	"Subject: Notification\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=b1\r\n" +
	"\r\n" +
	"--b1\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"plain text rendering\r\n" +
	"--b1\r\n" +
	"Content-Type: text/html\r\n" +
	"\r\n" +
	"<html><!-- NOTIFICATION_CONTENT_BEGIN -->payload<!-- NOTIFICATION_CONTENT_END --></html>\r\n" +
	"--b1--\r\n"

func TestReadMessage(t *testing.T) {
	fallback := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	m, err := readMessage(strings.NewReader(multipartEmail), fallback)
	if err != nil {
		t.Fatalf("readMessage failed: %v", err)
	}

	if !strings.Contains(m.HTML, "NOTIFICATION_CONTENT_BEGIN") {
		t.Errorf("HTML part not extracted, got %q", m.HTML)
	}
	want := time.Date(2025, 4, 10, 12, 0, 30, 0, time.FixedZone("", 2*3600))
	if !m.Date.Equal(want) {
		t.Errorf("date = %s, want %s", m.Date, want)
	}
}

func TestReadMessage_FallbackDate(t *testing.T) {
	email := "From: a@b.c\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<html>x</html>\r\n"
	fallback := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

	m, err := readMessage(strings.NewReader(email), fallback)
	if err != nil {
		t.Fatalf("readMessage failed: %v", err)
	}
	if !m.Date.Equal(fallback) {
		t.Errorf("date = %s, want internal-date fallback %s", m.Date, fallback)
	}
	if m.HTML != "<html>x</html>\r\n" && !strings.Contains(m.HTML, "<html>x</html>") {
		t.Errorf("HTML = %q", m.HTML)
	}
}
