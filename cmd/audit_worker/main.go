package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/config"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	"github.com/tpremraj1312/ledger-admin/internal/infrastructure/messaging"
	"github.com/tpremraj1312/ledger-admin/pkg/helpers"
	"github.com/tpremraj1312/ledger-admin/pkg/mailer"
)

// notifier is satisfied by *mailer.Notifier.
type notifier interface {
	Notify(ctx context.Context, e entity.DeletionEvent) error
}

type worker struct {
	notify  notifier // nil logs events without emailing
	logger  logrus.FieldLogger
	timeout time.Duration
}

// handle processes one delivery. Undecodable or unknown messages are dropped;
// a failed send is requeued once and dropped on redelivery.
func (w *worker) handle(ctx context.Context, msg amqp.Delivery) {
	if msg.Type != "" && msg.Type != messaging.DeletionMessageType {
		w.logger.WithField("type", msg.Type).Warn("unknown message type")
		_ = msg.Nack(false, false)
		return
	}
	var e entity.DeletionEvent
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		helpers.LogError(w.logger, "bad message", err, nil)
		_ = msg.Nack(false, false)
		return
	}
	log := w.logger.WithFields(logrus.Fields{
		"kind":       e.Kind,
		"record_id":  e.RecordID,
		"user_email": e.UserEmail,
		"actor":      e.Actor,
		"request_id": e.RequestID,
		"deleted":    e.Deleted,
	})
	if e.Partial() {
		log = log.WithField("failed_ids", e.FailedIDs)
	}
	log.Info("deletion recorded")

	if w.notify == nil {
		_ = msg.Ack(false)
		return
	}
	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.notify.Notify(c, e); err != nil {
		log.WithError(err).Warn("notice send failed")
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	_ = msg.Ack(false)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-audit", cfg.Env, cfg.LogLevel)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQAuditQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQAuditQueue, 16)
	if err != nil {
		logger.WithError(err).Fatal("amqp connect")
	}
	defer consumer.Close()
	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	w := &worker{logger: logger, timeout: 15 * time.Second}
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" && cfg.AuditNotifyEmail != "" {
		w.notify = &mailer.Notifier{
			AppName: cfg.AppName,
			To:      cfg.AuditNotifyEmail,
			Sender:  mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		}
	} else {
		logger.Warn("Mailgun or AUDIT_NOTIFY_EMAIL not configured; events are logged only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			w.handle(ctx, msg)
		}
	}()

	helpers.LogInfo(logger, "audit worker listening", logrus.Fields{"queue": cfg.RabbitMQAuditQueue})
	<-ctx.Done()
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
