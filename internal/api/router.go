package api

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)

	transactions := r.Group("/api/transactions")
	{
		transactions.POST("/upload", h.UploadTransactions)
		transactions.GET("/", h.ListTransactions)
		transactions.GET("/template", h.DownloadTemplate)
		transactions.PATCH("/:id", h.UpdateTransactionCategory)
	}

	statsGroup := r.Group("/api/stats")
	{
		statsGroup.GET("/dashboard", h.DashboardStats)
	}

	rules := r.Group("/api/rules")
	{
		rules.GET("/", h.ListRules)
		rules.POST("/", h.CreateRule)
		rules.DELETE("/:id", h.DeleteRule)
	}

	return r
}
