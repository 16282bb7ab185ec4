package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tpremraj1312/ledger-admin/internal/application"
	"github.com/tpremraj1312/ledger-admin/pkg/response"
)

type ReportHandler struct {
	Reports *application.ReportService
}

func NewReportHandler(reports *application.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// Export POST /admin/reports/:kind
func (h *ReportHandler) Export(c *gin.Context) {
	kind, err := application.ParseReportKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}
	url, err := h.Reports.Export(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Report exported", "url": url})
}
