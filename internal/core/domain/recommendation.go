package domain

import (
	"github.com/shopspring/decimal"
)

// RecommendationType labels the heuristic that produced a recommendation.
type RecommendationType string

const (
	RecommendationHighSpending    RecommendationType = "high_spending"
	RecommendationIncreasingTrend RecommendationType = "increasing_trend"
)

// Recommendation is a single templated advisory produced from spending analysis.
type Recommendation struct {
	Type     RecommendationType `json:"type"`
	Category string             `json:"category"`
	Message  string             `json:"message"`
	Action   string             `json:"action"`
}

// TopCategory pairs a category with its share of total spend.
type TopCategory struct {
	Category   string          `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SpendingReport is the output of the spending-recommendation analysis.
type SpendingReport struct {
	Status          AnalysisStatus   `json:"status"`
	Message         string           `json:"message,omitempty"`
	MonthlyAverage  decimal.Decimal  `json:"monthlyAverage"`
	TopCategories   []TopCategory    `json:"topCategories"`
	Recommendations []Recommendation `json:"recommendations"`
}

// BudgetPlanStatus grades a category's current spend against its recommended allocation.
type BudgetPlanStatus string

const (
	BudgetPlanReduce   BudgetPlanStatus = "reduce"
	BudgetPlanGood     BudgetPlanStatus = "good"
	BudgetPlanMaintain BudgetPlanStatus = "maintain"
	BudgetPlanNew      BudgetPlanStatus = "new"
)

// BudgetPlanCategory is one category line of a recommended budget plan.
type BudgetPlanCategory struct {
	Category              string           `json:"category"`
	CurrentAmount         decimal.Decimal  `json:"currentAmount"`
	CurrentPercentage     decimal.Decimal  `json:"currentPercentage"`
	RecommendedAmount     decimal.Decimal  `json:"recommendedAmount"`
	RecommendedPercentage decimal.Decimal  `json:"recommendedPercentage"`
	Status                BudgetPlanStatus `json:"status"`
}

// BudgetPlan is a recommended allocation of monthly income across categories.
type BudgetPlan struct {
	Status            AnalysisStatus       `json:"status"`
	Message           string               `json:"message,omitempty"`
	MonthlyIncome     decimal.Decimal      `json:"monthlyIncome"`
	MonthlyExpenses   decimal.Decimal      `json:"monthlyExpenses"`
	SavingsGoal       decimal.Decimal      `json:"savingsGoal"`
	SavingsPercentage decimal.Decimal      `json:"savingsPercentage"`
	Categories        []BudgetPlanCategory `json:"categories"`
}

// RecurrenceFrequency classifies the cadence of a recurring transaction pattern.
type RecurrenceFrequency string

const (
	FrequencyMonthly   RecurrenceFrequency = "monthly"
	FrequencyBiWeekly  RecurrenceFrequency = "bi-weekly"
	FrequencyWeekly    RecurrenceFrequency = "weekly"
	FrequencyIrregular RecurrenceFrequency = "irregular"
)

// RecurringPattern is a group of transactions that share a normalized
// description, similar amounts and a regular interval.
type RecurringPattern struct {
	Description           string              `json:"description"` // original description of the first member
	NormalizedDescription string              `json:"normalizedDescription"`
	Amount                decimal.Decimal     `json:"amount"` // average absolute amount
	Frequency             RecurrenceFrequency `json:"frequency"`
	Instances             int                 `json:"instances"`
	Category              string              `json:"category"`
	AnnualCost            decimal.Decimal     `json:"annualCost"`
}

// OpportunityType labels the heuristic that produced a cost-cutting opportunity.
type OpportunityType string

const (
	OpportunitySubscription       OpportunityType = "subscription"
	OpportunityIncreasingCategory OpportunityType = "increasing_category"
	OpportunityLargeExpense       OpportunityType = "large_expense"
)

// Opportunity is a single cost-cutting suggestion.
type Opportunity struct {
	Type               OpportunityType     `json:"type"`
	Category           string              `json:"category"`
	Description        string              `json:"description,omitempty"`
	Amount             decimal.Decimal     `json:"amount"`
	Date               string              `json:"date,omitempty"`
	Frequency          RecurrenceFrequency `json:"frequency,omitempty"`
	AnnualCost         decimal.Decimal     `json:"annualCost"`
	IncreasePercentage decimal.Decimal     `json:"increasePercentage"`
	Message            string              `json:"message"`
	Action             string              `json:"action"`
}

// CostCuttingReport is the output of the cost-cutting analysis.
type CostCuttingReport struct {
	Status        AnalysisStatus `json:"status"`
	Message       string         `json:"message,omitempty"`
	Opportunities []Opportunity  `json:"opportunities"`
}
