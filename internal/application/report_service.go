package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	repo "github.com/tpremraj1312/ledger-admin/internal/domain/repository"
)

type ReportKind string

const (
	ReportTransactions ReportKind = "transactions"
	ReportBudgets      ReportKind = "budgets"
)

func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(s) {
	case ReportTransactions, ReportBudgets:
		return ReportKind(s), nil
	}
	return "", apperr.Validation("Unknown report kind %q", s)
}

// ReportService exports per-user summaries as CSV into object storage.
type ReportService struct {
	Store    repo.Store
	Uploader ObjectUploader // nil disables exports
	Timeout  time.Duration
	Logger   logrus.FieldLogger
	Now      func() time.Time
}

func NewReportService(store repo.Store, uploader ObjectUploader, timeout time.Duration, logger logrus.FieldLogger) *ReportService {
	return &ReportService{Store: store, Uploader: uploader, Timeout: timeout, Logger: logger, Now: time.Now}
}

var reportHeader = []string{"name", "email", "first_record_at", "records", "total"}

func writeSummaries[R aggregation.Record](w io.Writer, summaries []aggregation.UserSummary[R]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		first := ""
		if !s.CreatedAt.IsZero() {
			first = s.CreatedAt.UTC().Format(time.RFC3339)
		}
		row := []string{s.Name, s.Email, first, strconv.Itoa(len(s.Records)), s.Total.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Build renders the report of kind, sorted by total descending.
func (s *ReportService) Build(ctx context.Context, kind ReportKind) ([]byte, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	users, err := s.Store.Users.List(c)
	if err != nil {
		return nil, storeErr(err)
	}
	index := aggregation.IndexUsers(users)

	var buf bytes.Buffer
	switch kind {
	case ReportTransactions:
		txns, err := s.Store.Transactions.List(c)
		if err != nil {
			return nil, storeErr(err)
		}
		sums := aggregation.SortSummaries(aggregation.GroupByUser(txns, index).Summaries(), aggregation.SortByTotal, aggregation.Desc)
		err = writeSummaries(&buf, sums)
		if err != nil {
			return nil, err
		}
	case ReportBudgets:
		budgets, err := s.Store.Budgets.List(c)
		if err != nil {
			return nil, storeErr(err)
		}
		sums := aggregation.SortSummaries(aggregation.GroupByUser(budgets, index).Summaries(), aggregation.SortByTotal, aggregation.Desc)
		err = writeSummaries(&buf, sums)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperr.Validation("Unknown report kind %q", kind)
	}
	return buf.Bytes(), nil
}

// Export builds the report and uploads it, returning the object URL.
func (s *ReportService) Export(ctx context.Context, kind ReportKind) (string, error) {
	if s.Uploader == nil {
		return "", apperr.Validation("Report storage is not configured")
	}
	data, err := s.Build(ctx, kind)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("reports/%s/%s-%s.csv", kind, s.Now().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
	url, err := s.Uploader.Upload(ctx, path, "text/csv", bytes.NewReader(data))
	if err != nil {
		return "", apperr.Transient("report upload failed", err)
	}
	s.Logger.WithFields(logrus.Fields{"kind": kind, "object": path, "bytes": len(data)}).Info("report exported")
	return url, nil
}
