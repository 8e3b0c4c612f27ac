package email

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeEmailSender struct {
	mu         sync.Mutex
	recipients []string
	done       chan error
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{done: make(chan error, 4)}
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	f.recipients = append(f.recipients, recipient)
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		f.done <- ctx.Err()
		return ctx.Err()
	case <-time.After(20 * time.Millisecond):
		f.done <- nil
		return nil
	}
}

func waitForResult(t *testing.T, ch <-chan error) error {
	t.Helper()

	select {
	case err := <-ch:
		return err
	case <-time.After(time.Second):
		t.Fatal("expected send to finish")
		return nil
	}
}

func TestSendAsyncSurvivesRequestCancellation(t *testing.T) {
	sender := newFakeEmailSender()

	ctx, cancel := context.WithCancel(context.Background())
	SendAsync(ctx, sender, []string{"admin@example.com"}, Message{Subject: "Subject", Body: "Body"}, nil)
	cancel()

	if err := waitForResult(t, sender.done); err != nil {
		t.Fatalf("expected send to complete after request cancellation, got %v", err)
	}
}

func TestSendAsyncSkipsBlankRecipients(t *testing.T) {
	sender := newFakeEmailSender()

	SendAsync(context.Background(), sender, []string{" ", "a@example.com", "b@example.com"}, Message{Subject: "Subject", Body: "Body"}, nil)
	waitForResult(t, sender.done)
	waitForResult(t, sender.done)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.recipients) != 2 || sender.recipients[0] != "a@example.com" {
		t.Fatalf("unexpected recipients %v", sender.recipients)
	}
}

func TestSendAsyncIgnoresEmptyMessage(t *testing.T) {
	sender := newFakeEmailSender()
	SendAsync(context.Background(), sender, []string{"a@example.com"}, Message{}, nil)

	select {
	case <-sender.done:
		t.Fatal("expected no send for an empty message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBuildVerificationCode(t *testing.T) {
	msg := BuildVerificationCode("", "123456", 15*time.Minute)
	if !strings.Contains(msg.Body, "123456") || !strings.Contains(msg.Body, "15 minutes") {
		t.Fatalf("unexpected body %q", msg.Body)
	}
	if msg.Subject != "Touchline verification code" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
}

func TestBuildSeasonArchived(t *testing.T) {
	msg := BuildSeasonArchived(SeasonSummary{
		SeasonNumber: 3,
		StartDate:    time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		LeagueWinner: "Rovers",
		MatchCount:   33,
	})
	if msg.Subject != "Season 3 archived" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{"League winner: Rovers", "Cup winner: none", "Matches archived: 33"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("expected body to contain %q, got %q", want, msg.Body)
		}
	}
}

var _ EmailSender = (*SESClient)(nil)

func TestSESClientSendValidation(t *testing.T) {
	var missing *SESClient
	if err := missing.Send(context.Background(), "admin@example.com", "Subject", "Body"); err == nil {
		t.Fatalf("expected error from an uninitialized client")
	}

	client, err := NewSESClient("key", "secret", "eu-west-1", "league@example.com")
	if err != nil {
		t.Fatalf("new ses client: %v", err)
	}
	err = client.Send(context.Background(), "  ", "Subject", "Body")
	if err == nil || !strings.Contains(err.Error(), "recipient is required") {
		t.Fatalf("expected missing recipient error, got %v", err)
	}

	if _, err := NewSESClient("key", "secret", "eu-west-1", ""); err == nil {
		t.Fatalf("expected error without a sender")
	}
}

