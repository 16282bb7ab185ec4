package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

type captureSender struct {
	to, subject, text, html string
	err                     error
}

func (c *captureSender) Send(_ context.Context, to, subject, text, html string) error {
	c.to, c.subject, c.text, c.html = to, subject, text, html
	return c.err
}

func TestNotifyRendersDeletionNotice(t *testing.T) {
	s := &captureSender{}
	n := &Notifier{AppName: "ledger-admin", To: "audit@x.com", Sender: s}
	e := entity.DeletionEvent{
		Kind:                entity.DeletedUser,
		RecordID:            "u1",
		Actor:               "root@x.com",
		Deleted:             1,
		BudgetsDeleted:      2,
		TransactionsDeleted: 3,
		At:                  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := n.Notify(context.Background(), e); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if s.to != "audit@x.com" {
		t.Fatalf("to = %q", s.to)
	}
	if s.subject != "[ledger-admin] user deleted" {
		t.Fatalf("subject = %q", s.subject)
	}
	for _, want := range []string{"root@x.com", "Budgets deleted:      2", "Transactions deleted: 3", "01 June 2024"} {
		if !strings.Contains(s.text, want) {
			t.Fatalf("text missing %q:\n%s", want, s.text)
		}
	}
	if !strings.Contains(s.html, "<strong>Record</strong></td><td>u1") {
		t.Fatalf("html missing record id:\n%s", s.html)
	}
}

func TestNotifyPartialSubjectAndSendError(t *testing.T) {
	s := &captureSender{err: errors.New("mailgun down")}
	n := &Notifier{To: "audit@x.com", Sender: s}
	e := entity.DeletionEvent{Kind: entity.DeletedUserTransactions, UserEmail: "a@x.com", Deleted: 2, FailedIDs: []string{"t2"}}
	err := n.Notify(context.Background(), e)
	if err == nil || !strings.Contains(err.Error(), "mailgun down") {
		t.Fatalf("err = %v", err)
	}
	if s.subject != "[ledger-admin] user_transactions deleted (partial)" {
		t.Fatalf("subject = %q", s.subject)
	}
	if !strings.Contains(s.text, "Failed:     t2") {
		t.Fatalf("text missing failures:\n%s", s.text)
	}
}
