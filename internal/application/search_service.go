package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	repo "github.com/tpremraj1312/ledger-admin/internal/domain/repository"
	"github.com/tpremraj1312/ledger-admin/internal/infrastructure/search"
)

// SearchService answers the admin user lookup from the search index.
type SearchService struct {
	Users   repo.UserRepository
	Index   UserSearch // nil when Elasticsearch is not configured
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

func NewSearchService(users repo.UserRepository, index UserSearch, timeout time.Duration, logger logrus.FieldLogger) *SearchService {
	return &SearchService{Users: users, Index: index, Timeout: timeout, Logger: logger}
}

// SearchUsers returns an empty result when no index is configured.
func (s *SearchService) SearchUsers(ctx context.Context, q string, size int) ([]search.UserDoc, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperr.Validation("Query is required")
	}
	if s.Index == nil {
		return []search.UserDoc{}, nil
	}
	docs, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, apperr.Transient("search unavailable", err)
	}
	return docs, nil
}

// Reindex loads every user from the store and writes them to the index.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, apperr.Validation("Search is not configured")
	}
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	users, err := s.Users.List(c)
	if err != nil {
		return 0, storeErr(err)
	}
	n, err := s.Index.Reindex(ctx, users)
	if err != nil {
		return 0, apperr.Transient("search unavailable", err)
	}
	s.Logger.WithFields(logrus.Fields{"users": len(users), "indexed": n}).Info("user index rebuilt")
	return n, nil
}
