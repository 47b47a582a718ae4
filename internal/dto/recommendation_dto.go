package dto

import (
	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecommendationResponse represents a single advisory in the recommendations response
type RecommendationResponse struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Action   string `json:"action"`
}

// TopCategoryResponse represents a category and its share of total spend
type TopCategoryResponse struct {
	Category   string          `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SpendingReportResponse represents the spending recommendations report response
type SpendingReportResponse struct {
	Status          string                   `json:"status"`
	Message         string                   `json:"message,omitempty"`
	MonthlyAverage  decimal.Decimal          `json:"monthlyAverage"`
	TopCategories   []TopCategoryResponse    `json:"topCategories"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// BudgetPlanCategoryResponse represents one category line of the budget plan response
type BudgetPlanCategoryResponse struct {
	Category              string          `json:"category"`
	CurrentAmount         decimal.Decimal `json:"currentAmount"`
	CurrentPercentage     decimal.Decimal `json:"currentPercentage"`
	RecommendedAmount     decimal.Decimal `json:"recommendedAmount"`
	RecommendedPercentage decimal.Decimal `json:"recommendedPercentage"`
	Status                string          `json:"status"`
}

// BudgetPlanResponse represents the budget plan report response
type BudgetPlanResponse struct {
	Status            string                       `json:"status"`
	Message           string                       `json:"message,omitempty"`
	MonthlyIncome     decimal.Decimal              `json:"monthlyIncome"`
	MonthlyExpenses   decimal.Decimal              `json:"monthlyExpenses"`
	SavingsGoal       decimal.Decimal              `json:"savingsGoal"`
	SavingsPercentage decimal.Decimal              `json:"savingsPercentage"`
	Categories        []BudgetPlanCategoryResponse `json:"categories"`
}

// OpportunityResponse represents a single cost-cutting opportunity in the response
type OpportunityResponse struct {
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	Description        string          `json:"description,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"date,omitempty"`
	Frequency          string          `json:"frequency,omitempty"`
	AnnualCost         decimal.Decimal `json:"annualCost"`
	IncreasePercentage decimal.Decimal `json:"increasePercentage"`
	Message            string          `json:"message"`
	Action             string          `json:"action"`
}

// CostCuttingResponse represents the cost-cutting opportunities report response
type CostCuttingResponse struct {
	Status        string                `json:"status"`
	Message       string                `json:"message,omitempty"`
	Opportunities []OpportunityResponse `json:"opportunities"`
}

// ToSpendingReportResponse converts a domain spending report to a DTO response
func ToSpendingReportResponse(report *domain.SpendingReport) SpendingReportResponse {
	response := SpendingReportResponse{
		Status:          string(report.Status),
		Message:         report.Message,
		MonthlyAverage:  report.MonthlyAverage,
		TopCategories:   make([]TopCategoryResponse, len(report.TopCategories)),
		Recommendations: make([]RecommendationResponse, len(report.Recommendations)),
	}
	for i, tc := range report.TopCategories {
		response.TopCategories[i] = TopCategoryResponse{
			Category:   tc.Category,
			Percentage: tc.Percentage,
		}
	}
	for i, rec := range report.Recommendations {
		response.Recommendations[i] = RecommendationResponse{
			Type:     string(rec.Type),
			Category: rec.Category,
			Message:  rec.Message,
			Action:   rec.Action,
		}
	}
	return response
}

// ToBudgetPlanResponse converts a domain budget plan to a DTO response
func ToBudgetPlanResponse(plan *domain.BudgetPlan) BudgetPlanResponse {
	response := BudgetPlanResponse{
		Status:            string(plan.Status),
		Message:           plan.Message,
		MonthlyIncome:     plan.MonthlyIncome,
		MonthlyExpenses:   plan.MonthlyExpenses,
		SavingsGoal:       plan.SavingsGoal,
		SavingsPercentage: plan.SavingsPercentage,
		Categories:        make([]BudgetPlanCategoryResponse, len(plan.Categories)),
	}
	for i, cat := range plan.Categories {
		response.Categories[i] = BudgetPlanCategoryResponse{
			Category:              cat.Category,
			CurrentAmount:         cat.CurrentAmount,
			CurrentPercentage:     cat.CurrentPercentage,
			RecommendedAmount:     cat.RecommendedAmount,
			RecommendedPercentage: cat.RecommendedPercentage,
			Status:                string(cat.Status),
		}
	}
	return response
}

// ToCostCuttingResponse converts a domain cost-cutting report to a DTO response
func ToCostCuttingResponse(report *domain.CostCuttingReport) CostCuttingResponse {
	response := CostCuttingResponse{
		Status:        string(report.Status),
		Message:       report.Message,
		Opportunities: make([]OpportunityResponse, len(report.Opportunities)),
	}
	for i, opp := range report.Opportunities {
		response.Opportunities[i] = OpportunityResponse{
			Type:               string(opp.Type),
			Category:           opp.Category,
			Description:        opp.Description,
			Amount:             opp.Amount,
			Date:               opp.Date,
			Frequency:          string(opp.Frequency),
			AnnualCost:         opp.AnnualCost,
			IncreasePercentage: opp.IncreasePercentage,
			Message:            opp.Message,
			Action:             opp.Action,
		}
	}
	return response
}
