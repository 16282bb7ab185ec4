package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/tpremraj1312/ledger-admin/internal/interface/http"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Reports *handlers.ReportHandler
	Auth    gin.HandlerFunc
}

func NewDashboardModule(h *handlers.DashboardHandler, reports *handlers.ReportHandler, auth gin.HandlerFunc) *DashboardModule {
	return &DashboardModule{Handler: h, Reports: reports, Auth: auth}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	dash := rg.Group("/dashboard")
	dash.Use(m.Auth)
	{
		dash.GET("/home", m.Handler.Home)
		dash.GET("/transactions", m.Handler.Transactions)
		dash.GET("/budgets", m.Handler.Budgets)
		dash.DELETE("/transactions/:email", m.Handler.DeleteTransactions)
		dash.DELETE("/budgets/:email", m.Handler.DeleteBudgets)
	}
	rg.POST("/reports/:kind", m.Auth, m.Reports.Export)
}
