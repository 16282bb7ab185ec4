package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tpremraj1312/ledger-admin/internal/application"
	"github.com/tpremraj1312/ledger-admin/internal/interface/middleware"
	"github.com/tpremraj1312/ledger-admin/pkg/response"
)

// RecordHandler serves the raw transaction and budget collections.
type RecordHandler struct {
	Records *application.RecordsService
}

func NewRecordHandler(records *application.RecordsService) *RecordHandler {
	return &RecordHandler{Records: records}
}

func (h *RecordHandler) ListTransactions(c *gin.Context) {
	txns, err := h.Records.ListTransactions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, txns)
}

func (h *RecordHandler) ListBudgets(c *gin.Context) {
	budgets, err := h.Records.ListBudgets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, budgets)
}

func (h *RecordHandler) DeleteTransaction(c *gin.Context) {
	if err := h.Records.DeleteTransaction(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Transaction deleted successfully")
}

func (h *RecordHandler) DeleteBudget(c *gin.Context) {
	if err := h.Records.DeleteBudget(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Budget deleted successfully")
}
