package services

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SpendingAnalyzerSvc defines the spending-aggregation operations of the
// analysis core. Every operation takes the caller's account-id set as an
// explicit parameter; there is no ambient user state.
type SpendingAnalyzerSvc interface {
	// SpendingByCategory groups expenses into per-category totals and
	// percentages within an optional inclusive date range. accountFilter, when
	// non-empty, restricts the analysis to that single account and must be a
	// member of accountIDs (apperrors.ErrValidation otherwise). An empty
	// result is a normal outcome, not an error.
	SpendingByCategory(ctx context.Context, accountIDs []string, startDate, endDate *time.Time, accountFilter string) ([]domain.CategorySpending, error)

	// MonthlySpendingTrends groups expenses of the trailing months*30 days by
	// YYYY-MM label, one row per month present in the data, each row carrying
	// a column for every category seen in the window. Sorted ascending by month.
	MonthlySpendingTrends(ctx context.Context, accountIDs []string, months int) ([]domain.MonthlyTrend, error)

	// LargestExpenses returns the limit largest individual expenses in the
	// window, largest magnitude first.
	LargestExpenses(ctx context.Context, accountIDs []string, startDate, endDate *time.Time, limit int) ([]domain.ExpenseDetail, error)

	// BudgetComparison compares actual spending during a budget's period
	// against its per-category allocations, most-over-budget first. Returns
	// apperrors.ErrNotFound when the budget does not exist for the user.
	BudgetComparison(ctx context.Context, budgetID string, userID string) ([]domain.BudgetComparisonRow, error)
}

// RecommendationSvc defines the recommendation-engine operations built on top
// of the spending analyzer.
type RecommendationSvc interface {
	// SpendingRecommendations analyzes the trailing months*30 days and emits
	// high-spending and increasing-trend recommendations.
	SpendingRecommendations(ctx context.Context, userID string, months int) (*domain.SpendingReport, error)

	// GenerateBudgetPlan synthesizes a recommended budget allocation. A nil
	// income is estimated from recent deposits, falling back to 1.3x expenses.
	GenerateBudgetPlan(ctx context.Context, userID string, income *decimal.Decimal, savingsGoalPercentage decimal.Decimal) (*domain.BudgetPlan, error)

	// IdentifyCostCuttingOpportunities emits subscription, increasing-category
	// and large-expense opportunities from recent activity.
	IdentifyCostCuttingOpportunities(ctx context.Context, userID string) (*domain.CostCuttingReport, error)
}
