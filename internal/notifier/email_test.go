package notifier

import (
	"context"
	"strings"
	"testing"
)

func TestNotifySends(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	n := NewEmailNotifier(EmailConfig{From: "rfq@example.com"}, sender)

	err := n.Notify(context.Background(), "sales@dell.com", "Request for quotation", "Dear team")
	if err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.From != "rfq@example.com" {
		t.Fatalf("unexpected from %q", msg.From)
	}
	if len(msg.To) != 1 || msg.To[0] != "sales@dell.com" {
		t.Fatalf("unexpected to %v", msg.To)
	}
	if msg.Subject != "Request for quotation" || msg.Body != "Dear team" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestNotifySkipsEmptyRecipient(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	n := NewEmailNotifier(EmailConfig{From: "rfq@example.com"}, sender)

	if err := n.Notify(context.Background(), "  ", "subject", "body"); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no send for empty recipient, got %d", len(sender.sent))
	}
}

func TestBuildEmailData(t *testing.T) {
	t.Parallel()

	data := buildEmailData(EmailMessage{
		From:    "rfq@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Quotation",
		Body:    "Hello",
	})
	for _, want := range []string{
		"From: rfq@example.com\r\n",
		"To: a@example.com,b@example.com\r\n",
		"Subject: Quotation\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n\r\nHello",
	} {
		if !strings.Contains(data, want) {
			t.Fatalf("expected %q in message data:\n%s", want, data)
		}
	}
}

// --- stubs ---

type stubSender struct {
	sent []EmailMessage
}

func (s *stubSender) Send(ctx context.Context, msg EmailMessage) error {
	s.sent = append(s.sent, msg)
	return nil
}
