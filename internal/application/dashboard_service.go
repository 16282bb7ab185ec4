package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	repo "github.com/tpremraj1312/ledger-admin/internal/domain/repository"
	"github.com/tpremraj1312/ledger-admin/internal/presentation"
)

const HomeCacheKey = "dashboard:home"

type HomeView struct {
	Metrics aggregation.HomeMetrics `json:"metrics"`
	Charts  []presentation.Chart    `json:"charts"`
}

// PageView is one summary page: the state it was rendered with, the table
// rows and the page charts.
type PageView[R aggregation.Record] struct {
	State  presentation.ViewState `json:"state"`
	Rows   []presentation.Row[R]  `json:"rows"`
	Charts []presentation.Chart   `json:"charts"`
}

type DashboardService struct {
	Store    repo.Store
	Timeout  time.Duration
	Basis    aggregation.Basis
	Cache    Cache // optional
	CacheTTL time.Duration
	Logger   logrus.FieldLogger
	Now      func() time.Time
}

func NewDashboardService(store repo.Store, timeout time.Duration, basis aggregation.Basis, logger logrus.FieldLogger) *DashboardService {
	return &DashboardService{Store: store, Timeout: timeout, Basis: basis, Logger: logger, Now: time.Now}
}

type snapshot struct {
	users   []entity.User
	txns    []entity.Transaction
	budgets []entity.Budget
}

// fetch reads the three collections concurrently under one timeout.
func (s *DashboardService) fetch(ctx context.Context, wantTxns, wantBudgets bool) (snapshot, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	var snap snapshot
	g, gctx := errgroup.WithContext(c)
	g.Go(func() error {
		users, err := s.Store.Users.List(gctx)
		snap.users = users
		return err
	})
	if wantTxns {
		g.Go(func() error {
			txns, err := s.Store.Transactions.List(gctx)
			snap.txns = txns
			return err
		})
	}
	if wantBudgets {
		g.Go(func() error {
			budgets, err := s.Store.Budgets.List(gctx)
			snap.budgets = budgets
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return snapshot{}, storeErr(err)
	}
	return snap, nil
}

// Home returns the overview metrics and charts, served from the cache when a
// fresh copy exists.
func (s *DashboardService) Home(ctx context.Context) (HomeView, error) {
	var view HomeView
	if s.Cache != nil {
		hit, err := s.Cache.Get(ctx, HomeCacheKey, &view)
		if err != nil {
			s.Logger.WithError(err).Warn("dashboard cache read failed")
		}
		if hit {
			return view, nil
		}
	}

	snap, err := s.fetch(ctx, true, true)
	if err != nil {
		return HomeView{}, err
	}
	view = HomeView{
		Metrics: aggregation.ComputeHomeMetrics(snap.users, snap.txns, snap.budgets, s.Now(), s.Basis),
		Charts:  presentation.HomeCharts(snap.users, snap.txns, snap.budgets),
	}
	if s.Cache != nil && s.CacheTTL > 0 {
		if err := s.Cache.Set(ctx, HomeCacheKey, view, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return view, nil
}

func (s *DashboardService) TransactionsPage(ctx context.Context, state presentation.ViewState) (PageView[entity.Transaction], error) {
	snap, err := s.fetch(ctx, true, false)
	if err != nil {
		return PageView[entity.Transaction]{}, err
	}
	summaries := aggregation.GroupByUser(snap.txns, aggregation.IndexUsers(snap.users)).Summaries()
	return PageView[entity.Transaction]{
		State:  state,
		Rows:   presentation.SummaryTable(summaries, state, presentation.CompareTransactions),
		Charts: presentation.TransactionCharts(snap.txns, summaries),
	}, nil
}

func (s *DashboardService) BudgetsPage(ctx context.Context, state presentation.ViewState) (PageView[entity.Budget], error) {
	snap, err := s.fetch(ctx, false, true)
	if err != nil {
		return PageView[entity.Budget]{}, err
	}
	summaries := aggregation.GroupByUser(snap.budgets, aggregation.IndexUsers(snap.users)).Summaries()
	return PageView[entity.Budget]{
		State:  state,
		Rows:   presentation.SummaryTable(summaries, state, presentation.CompareBudgets),
		Charts: presentation.BudgetCharts(snap.budgets, summaries),
	}, nil
}
