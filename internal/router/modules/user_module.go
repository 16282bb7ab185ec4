package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/tpremraj1312/ledger-admin/internal/interface/http"
)

// RecordsModule wires the user, transaction and budget routes.
// GET    /admin/users, /admin/users/:id, /admin/users/search
// POST   /admin/users/reindex
// GET    /admin/transactions, /admin/budgets
// DELETE /admin/users/:id, /admin/transactions/:id, /admin/budgets/:id
type RecordsModule struct {
	Users   *handlers.UserHandler
	Records *handlers.RecordHandler
	Auth    gin.HandlerFunc
}

func NewRecordsModule(users *handlers.UserHandler, records *handlers.RecordHandler, auth gin.HandlerFunc) *RecordsModule {
	return &RecordsModule{Users: users, Records: records, Auth: auth}
}

func (m *RecordsModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.GET("/users", m.Users.List)
		auth.GET("/users/search", m.Users.SearchUsers)
		auth.POST("/users/reindex", m.Users.Reindex)
		auth.GET("/users/:id", m.Users.Get)
		auth.DELETE("/users/:id", m.Users.Delete)

		auth.GET("/transactions", m.Records.ListTransactions)
		auth.DELETE("/transactions/:id", m.Records.DeleteTransaction)
		auth.GET("/budgets", m.Records.ListBudgets)
		auth.DELETE("/budgets/:id", m.Records.DeleteBudget)
	}
}
