// Package messaging publishes deletion audit events to RabbitMQ.
package messaging

import (
	"context"

	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
)

// DeletionMessageType is the AMQP type property of deletion events.
const DeletionMessageType = "deletion"

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

type AuditPublisher struct {
	Pub JSONPublisher
}

func NewAuditPublisher(pub JSONPublisher) *AuditPublisher {
	return &AuditPublisher{Pub: pub}
}

func (p *AuditPublisher) PublishDeletion(ctx context.Context, e entity.DeletionEvent) error {
	return p.Pub.PublishJSON(ctx, DeletionMessageType, e)
}
