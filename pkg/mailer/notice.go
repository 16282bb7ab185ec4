package mailer

import (
	"context"
	"fmt"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	mailtpl "github.com/tpremraj1312/ledger-admin/pkg/mailer/templates"
)

// Notifier emails a rendered deletion notice to a fixed audit recipient.
type Notifier struct {
	AppName string
	To      string
	Sender  Sender
}

func NoticeData(appName string, e entity.DeletionEvent) mailtpl.NoticeData {
	return mailtpl.NoticeData{
		AppName:             appName,
		Kind:                string(e.Kind),
		RecordID:            e.RecordID,
		UserEmail:           e.UserEmail,
		Actor:               e.Actor,
		RequestID:           e.RequestID,
		Deleted:             e.Deleted,
		BudgetsDeleted:      e.BudgetsDeleted,
		TransactionsDeleted: e.TransactionsDeleted,
		FailedIDs:           e.FailedIDs,
		At:                  e.At,
	}
}

func (n *Notifier) Notify(ctx context.Context, e entity.DeletionEvent) error {
	subject, text, html, err := mailtpl.Render(mailtpl.DeletionNotice, NoticeData(n.AppName, e))
	if err != nil {
		return fmt.Errorf("render notice: %w", err)
	}
	if err := n.Sender.Send(ctx, n.To, subject, text, html); err != nil {
		return fmt.Errorf("send notice: %w", err)
	}
	return nil
}
