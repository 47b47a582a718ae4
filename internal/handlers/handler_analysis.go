package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analysisHandler exposes the spending analyzer over HTTP. It resolves the
// caller's account-id set before each call; the analyzer itself carries no
// user state.
type analysisHandler struct {
	analyzer       portssvc.SpendingAnalyzerSvc
	accountService portssvc.AccountReaderSvc
}

func newAnalysisHandler(analyzer portssvc.SpendingAnalyzerSvc, accounts portssvc.AccountReaderSvc) *analysisHandler {
	return &analysisHandler{analyzer: analyzer, accountService: accounts}
}

// RegisterAnalysisRoutes registers routes for the spending analysis reports.
func RegisterAnalysisRoutes(rg *gin.RouterGroup, analyzer portssvc.SpendingAnalyzerSvc, accounts portssvc.AccountReaderSvc) {
	h := newAnalysisHandler(analyzer, accounts)

	analysis := rg.Group("/analysis")
	{
		analysis.GET("/spending-by-category", h.spendingByCategory)
		analysis.GET("/monthly-trends", h.monthlyTrends)
		analysis.GET("/largest-expenses", h.largestExpenses)
		analysis.GET("/budget-comparison/:budgetID", h.budgetComparison)
	}
}

func parseOptionalDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + ", expected YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}

// spendingByCategory godoc
// @Summary Spending breakdown by category
// @Description Groups expenses into per-category totals and percentages within
// @Description an optional date range, largest share first
// @Tags analysis
// @Produce  json
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   accountID query string false "Restrict analysis to one account"
// @Success 200 {object} dto.SpendingByCategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analysis/spending-by-category [get]
func (h *analysisHandler) spendingByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	startDate, ok := parseOptionalDate(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := parseOptionalDate(c, "endDate")
	if !ok {
		return
	}
	accountFilter := c.Query("accountID")

	accountIDs, err := h.accountService.ListAccountIDs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to analyze spending")
		return
	}

	rows, err := h.analyzer.SpendingByCategory(c.Request.Context(), accountIDs, startDate, endDate, accountFilter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to analyze spending")
		return
	}

	c.JSON(http.StatusOK, dto.ToSpendingByCategoryResponse(rows, startDate, endDate))
}

// monthlyTrends godoc
// @Summary Monthly spending trends
// @Description Groups expenses of the trailing months into per-month,
// @Description per-category rows sorted oldest first
// @Tags analysis
// @Produce  json
// @Param   months query int false "Number of trailing months" default(6)
// @Success 200 {object} dto.MonthlyTrendsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analysis/monthly-trends [get]
func (h *analysisHandler) monthlyTrends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil || months <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "months must be a positive integer"})
		return
	}

	accountIDs, err := h.accountService.ListAccountIDs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to analyze trends")
		return
	}

	trends, err := h.analyzer.MonthlySpendingTrends(c.Request.Context(), accountIDs, months)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to analyze trends")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyTrendsResponse(trends))
}

// largestExpenses godoc
// @Summary Largest individual expenses
// @Description Returns the largest individual expenses in the window, biggest first
// @Tags analysis
// @Produce  json
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   limit query int false "Maximum rows" default(10)
// @Success 200 {object} dto.LargestExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analysis/largest-expenses [get]
func (h *analysisHandler) largestExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	startDate, ok := parseOptionalDate(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := parseOptionalDate(c, "endDate")
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
		return
	}

	accountIDs, err := h.accountService.ListAccountIDs(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to analyze expenses")
		return
	}

	expenses, err := h.analyzer.LargestExpenses(c.Request.Context(), accountIDs, startDate, endDate, limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to analyze expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ToLargestExpensesResponse(expenses))
}

// budgetComparison godoc
// @Summary Budget versus actual comparison
// @Description Compares actual spending during a budget's period against its
// @Description allocations, most over budget first
// @Tags analysis
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 200 {object} dto.BudgetComparisonResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Budget not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analysis/budget-comparison/{budgetID} [get]
func (h *analysisHandler) budgetComparison(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rows, err := h.analyzer.BudgetComparison(c.Request.Context(), budgetID, userID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("budget_id", budgetID)), err, "Failed to compare budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetComparisonResponse(budgetID, rows))
}
