package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	"github.com/tpremraj1312/ledger-admin/internal/infrastructure/search"
)

// EventPublisher announces completed deletions to the audit queue.
type EventPublisher interface {
	PublishDeletion(ctx context.Context, e entity.DeletionEvent) error
}

// Cache stores JSON-serialisable dashboard payloads.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// UserSearch is the full-text user index.
type UserSearch interface {
	Put(ctx context.Context, u entity.User) error
	Remove(ctx context.Context, id string) error
	Reindex(ctx context.Context, users []entity.User) (int, error)
	Search(ctx context.Context, q string, size int) ([]search.UserDoc, error)
}

// ObjectUploader stores report files and returns their URL.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// Actor identifies the admin performing a request, for audit events.
type Actor struct {
	AdminID   string
	Email     string
	RequestID string
}

const defaultStoreTimeout = 5 * time.Second

// withTimeout bounds one store call. A zero timeout uses the default.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}

// storeErr classifies context expiry that reached us unclassified.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Transient("store timeout", err)
	}
	return err
}
