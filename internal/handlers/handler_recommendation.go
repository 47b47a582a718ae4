package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// recommendationHandler exposes the recommendation engine over HTTP.
type recommendationHandler struct {
	recommendationService portssvc.RecommendationSvc
}

func newRecommendationHandler(rs portssvc.RecommendationSvc) *recommendationHandler {
	return &recommendationHandler{recommendationService: rs}
}

// registerRecommendationRoutes registers routes for the recommendation reports.
func registerRecommendationRoutes(rg *gin.RouterGroup, recommendationService portssvc.RecommendationSvc) {
	h := newRecommendationHandler(recommendationService)

	recommendations := rg.Group("/recommendations")
	{
		recommendations.GET("/spending", h.spendingRecommendations)
		recommendations.GET("/budget-plan", h.budgetPlan)
		recommendations.GET("/cost-cutting", h.costCutting)
	}
}

// spendingRecommendations godoc
// @Summary Spending recommendations
// @Description Analyzes recent months and emits high-spending and
// @Description increasing-trend recommendations
// @Tags recommendations
// @Produce  json
// @Param   months query int false "Number of trailing months to analyze" default(3)
// @Success 200 {object} dto.SpendingReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recommendations/spending [get]
func (h *recommendationHandler) spendingRecommendations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	months, err := strconv.Atoi(c.DefaultQuery("months", "3"))
	if err != nil || months <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "months must be a positive integer"})
		return
	}

	report, err := h.recommendationService.SpendingRecommendations(c.Request.Context(), userID, months)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate recommendations")
		return
	}

	c.JSON(http.StatusOK, dto.ToSpendingReportResponse(report))
}

// budgetPlan godoc
// @Summary Recommended budget plan
// @Description Synthesizes a recommended budget allocation from recent
// @Description spending. Income is estimated from deposits when not given.
// @Tags recommendations
// @Produce  json
// @Param   income query number false "Monthly income; estimated when omitted"
// @Param   savingsGoal query number false "Savings goal as percent of income" default(20)
// @Success 200 {object} dto.BudgetPlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recommendations/budget-plan [get]
func (h *recommendationHandler) budgetPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var income *decimal.Decimal
	if raw := c.Query("income"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || !parsed.IsPositive() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "income must be a positive number"})
			return
		}
		income = &parsed
	}

	savingsGoal := decimal.Zero
	if raw := c.Query("savingsGoal"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "savingsGoal must be a non-negative number"})
			return
		}
		savingsGoal = parsed
	}

	plan, err := h.recommendationService.GenerateBudgetPlan(c.Request.Context(), userID, income, savingsGoal)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate budget plan")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetPlanResponse(plan))
}

// costCutting godoc
// @Summary Cost-cutting opportunities
// @Description Identifies likely subscriptions, fast-growing categories and
// @Description one-off large expenses from recent activity
// @Tags recommendations
// @Produce  json
// @Success 200 {object} dto.CostCuttingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recommendations/cost-cutting [get]
func (h *recommendationHandler) costCutting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.recommendationService.IdentifyCostCuttingOpportunities(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to identify cost-cutting opportunities")
		return
	}

	c.JSON(http.StatusOK, dto.ToCostCuttingResponse(report))
}
