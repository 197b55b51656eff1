package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
	"moneyflow/internal/parser"
	"moneyflow/internal/stats"
)

const templateCSV = "date,amount,description,category\n2026-01-01,1000,Lunch,Food\n"

// TransactionStore is the subset of store operations the transaction
// handlers need.
type TransactionStore interface {
	ListTransactions(offset, limit int) ([]models.Transaction, error)
	ListTransactionsByDateRange(start, end *time.Time) ([]models.Transaction, error)
	UpdateTransactionCategory(id, category string) (bool, error)
}

// RuleStore is the subset of store operations the rule handlers need.
type RuleStore interface {
	ListRules() ([]models.CategoryRule, error)
	InsertRule(rule *models.CategoryRule) error
	DeleteRule(id string) (bool, error)
}

// Ingestor accepts raw file content and runs it through the import
// pipeline.
type Ingestor interface {
	IngestFile(content []byte, filename string) (models.UploadSummary, error)
}

// Handler bundles the dependencies shared by all HTTP handlers.
type Handler struct {
	transactions TransactionStore
	rules        RuleStore
	ingestor     Ingestor
	logger       logging.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(transactions TransactionStore, rules RuleStore, ingestor Ingestor, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Handler{
		transactions: transactions,
		rules:        rules,
		ingestor:     ingestor,
		logger:       logger,
	}
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadTransactions receives a CSV file, detects its format and imports
// the rows that are not already stored.
func (h *Handler) UploadTransactions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "failed to open uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		InternalError(c, "failed to read uploaded file")
		return
	}

	summary, err := h.ingestor.IngestFile(content, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, parser.ErrUnrecognizedFormat) {
			BadRequest(c, err.Error())
			return
		}
		h.logger.WithError(err).Error("upload failed")
		InternalError(c, "import failed")
		return
	}

	h.logger.WithField("filename", fileHeader.Filename).Info(summary.Message)
	Success(c, summary)
}

// ListTransactions returns stored transactions, newest first.
func (h *Handler) ListTransactions(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil || skip < 0 {
		BadRequest(c, "invalid skip parameter")
		return
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil || limit < 1 {
		BadRequest(c, "invalid limit parameter")
		return
	}

	transactions, err := h.transactions.ListTransactions(skip, limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list transactions")
		InternalError(c, "failed to list transactions")
		return
	}
	Success(c, transactions)
}

type updateCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// UpdateTransactionCategory sets the category of a single transaction.
func (h *Handler) UpdateTransactionCategory(c *gin.Context) {
	id := c.Param("id")

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "category is required")
		return
	}

	found, err := h.transactions.UpdateTransactionCategory(id, req.Category)
	if err != nil {
		h.logger.WithError(err).Error("failed to update category")
		InternalError(c, "failed to update category")
		return
	}
	if !found {
		NotFound(c, "transaction not found")
		return
	}
	Success(c, gin.H{"id": id, "category": req.Category})
}

// DownloadTemplate serves a CSV skeleton for manual entry.
func (h *Handler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="template.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(templateCSV))
}

// DashboardStats aggregates stored transactions into dashboard figures.
func (h *Handler) DashboardStats(c *gin.Context) {
	start, err := queryDate(c, "start_date")
	if err != nil {
		BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := queryDate(c, "end_date")
	if err != nil {
		BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
		return
	}
	limit, err := queryInt(c, "limit", stats.DefaultMerchantLimit)
	if err != nil || limit < 1 {
		BadRequest(c, "invalid limit parameter")
		return
	}

	transactions, err := h.transactions.ListTransactionsByDateRange(start, end)
	if err != nil {
		h.logger.WithError(err).Error("failed to load transactions for stats")
		InternalError(c, "failed to compute stats")
		return
	}

	dashboard := stats.Dashboard(transactions, stats.DateRange{Start: start, End: end}, limit)
	Success(c, dashboard)
}

// ListRules returns all categorization rules, longest keyword first.
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.rules.ListRules()
	if err != nil {
		h.logger.WithError(err).Error("failed to list rules")
		InternalError(c, "failed to list rules")
		return
	}
	Success(c, rules)
}

type createRuleRequest struct {
	Keyword  string `json:"keyword" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// CreateRule stores a new categorization rule.
func (h *Handler) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "keyword and category are required")
		return
	}

	rule := models.CategoryRule{Keyword: req.Keyword, Category: req.Category}
	if err := h.rules.InsertRule(&rule); err != nil {
		h.logger.WithError(err).Error("failed to create rule")
		InternalError(c, "failed to create rule")
		return
	}
	Success(c, rule)
}

// DeleteRule removes a categorization rule by id.
func (h *Handler) DeleteRule(c *gin.Context) {
	id := c.Param("id")

	found, err := h.rules.DeleteRule(id)
	if err != nil {
		h.logger.WithError(err).Error("failed to delete rule")
		InternalError(c, "failed to delete rule")
		return
	}
	if !found {
		NotFound(c, "rule not found")
		return
	}
	Success(c, gin.H{"id": id})
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
