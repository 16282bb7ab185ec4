package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	repo "github.com/tpremraj1312/ledger-admin/internal/domain/repository"
)

// RecordsService is the read and delete surface over users, transactions and
// budgets. Every store call runs under Timeout.
type RecordsService struct {
	Store   repo.Store
	Timeout time.Duration
	Logger  logrus.FieldLogger
	Events  EventPublisher // optional
	Search  UserSearch     // optional
	Cache   Cache          // optional, invalidated after deletes
	Now     func() time.Time
}

func NewRecordsService(store repo.Store, timeout time.Duration, logger logrus.FieldLogger) *RecordsService {
	return &RecordsService{Store: store, Timeout: timeout, Logger: logger, Now: time.Now}
}

type UserDetails struct {
	User         *entity.User         `json:"user"`
	Budgets      []entity.Budget      `json:"budgets"`
	Transactions []entity.Transaction `json:"transactions"`
}

// CascadeResult reports what a user delete removed.
type CascadeResult struct {
	BudgetsDeleted      int64 `json:"budgets_deleted"`
	TransactionsDeleted int64 `json:"transactions_deleted"`
}

// BulkResult reports a sequential per-record delete.
type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids"`
}

func (r BulkResult) Partial() bool { return r.Failed > 0 }

func (s *RecordsService) ListUsers(ctx context.Context) ([]entity.User, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	users, err := s.Store.Users.List(c)
	return users, storeErr(err)
}

func (s *RecordsService) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	txns, err := s.Store.Transactions.List(c)
	return txns, storeErr(err)
}

func (s *RecordsService) ListBudgets(ctx context.Context) ([]entity.Budget, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	budgets, err := s.Store.Budgets.List(c)
	return budgets, storeErr(err)
}

// GetUserDetails returns the user with every budget and transaction it owns.
func (s *RecordsService) GetUserDetails(ctx context.Context, id string) (*UserDetails, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	u, err := s.Store.Users.GetByID(c, id)
	if err != nil {
		return nil, storeErr(err)
	}
	budgets, err := s.Store.Budgets.ListByUser(c, id)
	if err != nil {
		return nil, storeErr(err)
	}
	txns, err := s.Store.Transactions.ListByUser(c, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return &UserDetails{User: u, Budgets: budgets, Transactions: txns}, nil
}

// DeleteUser removes the user row, then its budgets, then its transactions.
// The steps are not atomic: when a dependent step fails the user is already
// gone and the counts reflect what was removed before the failure.
func (s *RecordsService) DeleteUser(ctx context.Context, actor Actor, id string) (CascadeResult, error) {
	var res CascadeResult
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	u, err := s.Store.Users.GetByID(c, id)
	if err != nil {
		return res, storeErr(err)
	}
	if err := s.Store.Users.Delete(c, id); err != nil {
		return res, storeErr(err)
	}
	log := s.Logger.WithField("user_id", id)

	n, err := s.Store.Budgets.DeleteByUser(c, id)
	if err != nil {
		log.WithError(err).Error("cascade: delete budgets failed, records orphaned")
		return res, storeErr(err)
	}
	res.BudgetsDeleted = n

	n, err = s.Store.Transactions.DeleteByUser(c, id)
	if err != nil {
		log.WithError(err).Error("cascade: delete transactions failed, records orphaned")
		return res, storeErr(err)
	}
	res.TransactionsDeleted = n

	log.WithFields(logrus.Fields{"budgets": res.BudgetsDeleted, "transactions": res.TransactionsDeleted}).Info("user deleted")
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			log.WithError(err).Warn("search index remove failed")
		}
	}
	s.afterDelete(ctx, entity.DeletionEvent{
		Kind:                entity.DeletedUser,
		RecordID:            id,
		UserEmail:           u.Email,
		Deleted:             1,
		BudgetsDeleted:      res.BudgetsDeleted,
		TransactionsDeleted: res.TransactionsDeleted,
	}, actor)
	return res, nil
}

func (s *RecordsService) DeleteTransaction(ctx context.Context, actor Actor, id string) error {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Store.Transactions.Delete(c, id); err != nil {
		return storeErr(err)
	}
	s.afterDelete(ctx, entity.DeletionEvent{Kind: entity.DeletedTransaction, RecordID: id, Deleted: 1}, actor)
	return nil
}

func (s *RecordsService) DeleteBudget(ctx context.Context, actor Actor, id string) error {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Store.Budgets.Delete(c, id); err != nil {
		return storeErr(err)
	}
	s.afterDelete(ctx, entity.DeletionEvent{Kind: entity.DeletedBudget, RecordID: id, Deleted: 1}, actor)
	return nil
}

// DeleteTransactionsForEmail deletes every transaction in the dashboard group
// keyed by email, one record at a time.
func (s *RecordsService) DeleteTransactionsForEmail(ctx context.Context, actor Actor, email string) (BulkResult, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return BulkResult{}, err
	}
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return BulkResult{}, err
	}
	group, ok := aggregation.GroupByUser(txns, aggregation.IndexUsers(users)).Get(email)
	if !ok || len(group.Records) == 0 {
		return BulkResult{}, apperr.NotFound("No transactions found for %s", email)
	}
	res := deleteEach(ctx, s.Timeout, group.Records, s.Store.Transactions.Delete)
	s.logBulk("transactions", email, res)
	s.afterDelete(ctx, entity.DeletionEvent{
		Kind:      entity.DeletedUserTransactions,
		UserEmail: email,
		Deleted:   int64(res.Succeeded),
		FailedIDs: res.FailedIDs,
	}, actor)
	return res, nil
}

// DeleteBudgetsForEmail is DeleteTransactionsForEmail for budgets.
func (s *RecordsService) DeleteBudgetsForEmail(ctx context.Context, actor Actor, email string) (BulkResult, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return BulkResult{}, err
	}
	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return BulkResult{}, err
	}
	group, ok := aggregation.GroupByUser(budgets, aggregation.IndexUsers(users)).Get(email)
	if !ok || len(group.Records) == 0 {
		return BulkResult{}, apperr.NotFound("No budgets found for %s", email)
	}
	res := deleteEach(ctx, s.Timeout, group.Records, s.Store.Budgets.Delete)
	s.logBulk("budgets", email, res)
	s.afterDelete(ctx, entity.DeletionEvent{
		Kind:      entity.DeletedUserBudgets,
		UserEmail: email,
		Deleted:   int64(res.Succeeded),
		FailedIDs: res.FailedIDs,
	}, actor)
	return res, nil
}

type identified interface{ RecordID() string }

// deleteEach issues one delete per record in order and keeps going after a
// failure. Each delete gets its own timeout.
func deleteEach[R identified](ctx context.Context, timeout time.Duration, records []R, del func(context.Context, string) error) BulkResult {
	res := BulkResult{FailedIDs: []string{}}
	for _, r := range records {
		c, cancel := withTimeout(ctx, timeout)
		err := del(c, r.RecordID())
		cancel()
		if err != nil {
			res.Failed++
			res.FailedIDs = append(res.FailedIDs, r.RecordID())
			continue
		}
		res.Succeeded++
	}
	return res
}

func (s *RecordsService) logBulk(what, email string, res BulkResult) {
	entry := s.Logger.WithFields(logrus.Fields{"email": email, "succeeded": res.Succeeded, "failed": res.Failed})
	if res.Partial() {
		entry.WithField("failed_ids", res.FailedIDs).Warn("bulk delete " + what + " partially failed")
		return
	}
	entry.Info("bulk delete " + what)
}

// afterDelete publishes the audit event and drops cached dashboard payloads.
// Neither failure is reported to the caller: the delete itself succeeded.
func (s *RecordsService) afterDelete(ctx context.Context, e entity.DeletionEvent, actor Actor) {
	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, HomeCacheKey); err != nil {
			s.Logger.WithError(err).Warn("dashboard cache invalidation failed")
		}
	}
	if s.Events == nil {
		return
	}
	e.Actor = actor.Email
	e.RequestID = actor.RequestID
	e.At = s.Now().UTC()
	if err := s.Events.PublishDeletion(ctx, e); err != nil {
		s.Logger.WithError(err).WithField("kind", e.Kind).Warn("publish deletion event failed")
	}
}
