package messaging

import (
	"context"
	"testing"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

type capture struct {
	msgType string
	body    any
}

func (c *capture) PublishJSON(_ context.Context, msgType string, body any) error {
	c.msgType, c.body = msgType, body
	return nil
}

func TestPublishDeletionType(t *testing.T) {
	c := &capture{}
	p := NewAuditPublisher(c)
	e := entity.DeletionEvent{Kind: entity.DeletedBudget, RecordID: "b1", Deleted: 1}
	if err := p.PublishDeletion(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if c.msgType != DeletionMessageType {
		t.Fatalf("type = %q", c.msgType)
	}
	got, ok := c.body.(entity.DeletionEvent)
	if !ok || got.RecordID != "b1" {
		t.Fatalf("body = %#v", c.body)
	}
}
