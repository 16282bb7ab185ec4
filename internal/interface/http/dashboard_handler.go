package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tpremraj1312/ledger-admin/internal/aggregation"
	"github.com/tpremraj1312/ledger-admin/internal/application"
	"github.com/tpremraj1312/ledger-admin/internal/interface/middleware"
	"github.com/tpremraj1312/ledger-admin/internal/presentation"
	"github.com/tpremraj1312/ledger-admin/pkg/response"
)

type DashboardHandler struct {
	Dashboard *application.DashboardService
	Records   *application.RecordsService
}

func NewDashboardHandler(dashboard *application.DashboardService, records *application.RecordsService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, Records: records}
}

// viewState rebuilds the caller's page state from the query string and
// applies the optional action=<kind>&key=<value> transition.
func viewState(c *gin.Context) presentation.ViewState {
	s := presentation.DefaultState()
	s.Search = c.Query("q")
	if key, ok := aggregation.ParseSortKey(c.Query("sort")); ok {
		s.Sort.Key = key
	}
	if dir := c.Query("dir"); dir != "" {
		s.Sort.Dir = aggregation.ParseDirection(dir)
	}
	if key, ok := presentation.ParseDetailKey(c.Query("detail_sort")); ok {
		s.DetailSort.Key = key
	}
	if dir := c.Query("detail_dir"); dir != "" {
		s.DetailSort.Dir = aggregation.ParseDirection(dir)
	}
	s.Expanded = c.Query("expanded")
	if action := c.Query("action"); action != "" {
		s = presentation.Reduce(s, presentation.Action{Kind: presentation.ActionKind(action), Value: c.Query("key")})
	}
	return s
}

// Home GET /admin/dashboard/home
func (h *DashboardHandler) Home(c *gin.Context) {
	view, err := h.Dashboard.Home(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Transactions GET /admin/dashboard/transactions
func (h *DashboardHandler) Transactions(c *gin.Context) {
	page, err := h.Dashboard.TransactionsPage(c.Request.Context(), viewState(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Budgets GET /admin/dashboard/budgets
func (h *DashboardHandler) Budgets(c *gin.Context) {
	page, err := h.Dashboard.BudgetsPage(c.Request.Context(), viewState(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

func writeBulk(c *gin.Context, what string, res application.BulkResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Partial() {
		response.JSON(c, http.StatusMultiStatus, gin.H{
			"message":    "Some " + what + " could not be deleted",
			"succeeded":  res.Succeeded,
			"failed":     res.Failed,
			"failed_ids": res.FailedIDs,
		})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":    "All " + what + " deleted successfully",
		"succeeded":  res.Succeeded,
		"failed":     0,
		"failed_ids": []string{},
	})
}

// DeleteTransactions DELETE /admin/dashboard/transactions/:email
func (h *DashboardHandler) DeleteTransactions(c *gin.Context) {
	res, err := h.Records.DeleteTransactionsForEmail(c.Request.Context(), middleware.ActorFrom(c), c.Param("email"))
	writeBulk(c, "transactions", res, err)
}

// DeleteBudgets DELETE /admin/dashboard/budgets/:email
func (h *DashboardHandler) DeleteBudgets(c *gin.Context) {
	res, err := h.Records.DeleteBudgetsForEmail(c.Request.Context(), middleware.ActorFrom(c), c.Param("email"))
	writeBulk(c, "budgets", res, err)
}
