package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tpremraj1312/ledger-admin/internal/application"
	"github.com/tpremraj1312/ledger-admin/internal/interface/middleware"
	"github.com/tpremraj1312/ledger-admin/pkg/response"
)

type UserHandler struct {
	Records *application.RecordsService
	Search  *application.SearchService
}

func NewUserHandler(records *application.RecordsService, search *application.SearchService) *UserHandler {
	return &UserHandler{Records: records, Search: search}
}

// List GET /admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Records.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Get GET /admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	d, err := h.Records.GetUserDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, d)
}

// Delete DELETE /admin/users/:id removes the user with its budgets and transactions.
func (h *UserHandler) Delete(c *gin.Context) {
	res, err := h.Records.DeleteUser(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":              "User and related data deleted successfully",
		"budgets_deleted":      res.BudgetsDeleted,
		"transactions_deleted": res.TransactionsDeleted,
	})
}

// SearchUsers GET /admin/users/search?q=&size=
func (h *UserHandler) SearchUsers(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	docs, err := h.Search.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs)
}

// Reindex POST /admin/users/reindex
func (h *UserHandler) Reindex(c *gin.Context) {
	n, err := h.Search.Reindex(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "User index rebuilt", "indexed": n})
}
