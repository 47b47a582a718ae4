package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// recommendationService implements the RecommendationSvc interface
type recommendationService struct {
	BaseService
	analyzer        portssvc.SpendingAnalyzerSvc
	transactionRepo portsrepo.TransactionRepository
	categoryRepo    portsrepo.CategoryRepository
	accountRepo     portsrepo.AccountRepository
}

// NewRecommendationService creates a new recommendation service on top of the
// spending analyzer.
func NewRecommendationService(
	analyzer portssvc.SpendingAnalyzerSvc,
	transactionRepo portsrepo.TransactionRepository,
	categoryRepo portsrepo.CategoryRepository,
	accountRepo portsrepo.AccountRepository,
) portssvc.RecommendationSvc {
	return &recommendationService{
		analyzer:        analyzer,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		accountRepo:     accountRepo,
	}
}

// Ensure recommendationService implements the RecommendationSvc interface
var _ portssvc.RecommendationSvc = (*recommendationService)(nil)

// descriptionStopWords are dropped from descriptions before grouping.
var descriptionStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "inc": {}, "ltd": {}, "llc": {}, "co": {}, "company": {},
}

// subscriptionKeywords mark a recurring pattern as a likely subscription when
// found in its normalized description.
var subscriptionKeywords = []string{
	"netflix", "hulu", "spotify", "prime", "disney", "subscription",
	"membership", "monthly", "access", "service", "app", "cloud",
	"hbo", "apple", "google", "adobe", "office", "gym", "fitness",
	"news", "magazine", "journal",
}

var (
	highSpendingShare    = decimal.NewFromInt(15)        // percent of total spend
	trendIncreaseFactor  = decimal.NewFromFloat(1.2)     // 20% month-over-month growth
	costIncreaseFactor   = decimal.NewFromFloat(1.3)     // 30% growth for cost cutting
	incomeFallbackFactor = decimal.NewFromFloat(1.3)     // assume income 30% above expenses
	largeExpenseFloor    = decimal.NewFromInt(100)       // abs amount for "large" expenses
	subscriptionCeiling  = decimal.NewFromInt(50)        // price point for round-amount check
	amountSimilarityTol  = decimal.NewFromFloat(0.1)     // 10% of the group mean
	reduceFactor         = decimal.NewFromFloat(1.2)     // over recommended by 20%
	goodFactor           = decimal.NewFromFloat(0.8)     // under recommended by 20%
	defaultSavingsGoal   = decimal.NewFromInt(20)        // percent of income
	defaultAllocationPct = decimal.NewFromInt(5)         // percent for unlisted categories
)

// defaultAllocations maps standard categories to their recommended share of
// post-savings income, in percent.
var defaultAllocations = map[string]decimal.Decimal{
	"Housing":        decimal.NewFromInt(30),
	"Transportation": decimal.NewFromInt(15),
	"Food":           decimal.NewFromInt(15),
	"Utilities":      decimal.NewFromInt(10),
	"Healthcare":     decimal.NewFromInt(5),
	"Personal":       decimal.NewFromInt(5),
	"Entertainment":  decimal.NewFromInt(5),
	"Education":      decimal.NewFromInt(5),
	"Debt Payments":  decimal.NewFromInt(10),
}

// accountIDsForUser resolves the caller's full account-id set; every analysis
// entry point scopes its queries to this set.
func (s *recommendationService) accountIDsForUser(ctx context.Context, userID string) ([]string, error) {
	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	ids := make([]string, len(accounts))
	for i, acc := range accounts {
		ids[i] = acc.AccountID
	}
	return ids, nil
}

// SpendingRecommendations analyzes the trailing months*30 days and emits
// high-spending and increasing-trend recommendations.
func (s *recommendationService) SpendingRecommendations(ctx context.Context, userID string, months int) (*domain.SpendingReport, error) {
	if months <= 0 {
		months = 3
	}

	accountIDs, err := s.accountIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30*months)

	spending, err := s.analyzer.SpendingByCategory(ctx, accountIDs, &startDate, &endDate, "")
	if err != nil {
		return nil, err
	}

	if len(spending) == 0 {
		return &domain.SpendingReport{
			Status:          domain.AnalysisInsufficientData,
			Message:         "Not enough transaction data to generate recommendations",
			Recommendations: []domain.Recommendation{},
		}, nil
	}

	totalSpent := decimal.Zero
	for _, row := range spending {
		totalSpent = totalSpent.Add(row.TotalAmount)
	}
	monthlyAverage := totalSpent.Div(decimal.NewFromInt(int64(months))).Round(2)

	recommendations := make([]domain.Recommendation, 0)
	for _, row := range spending {
		if row.Percentage.GreaterThan(highSpendingShare) {
			recommendations = append(recommendations, domain.Recommendation{
				Type:     domain.RecommendationHighSpending,
				Category: row.Category,
				Message:  fmt.Sprintf("Your spending on %s is %s%% of your total expenses.", row.Category, row.Percentage.String()),
				Action:   fmt.Sprintf("Consider setting a budget for %s to reduce overall expenses.", row.Category),
			})
		}
	}

	trends, err := s.analyzer.MonthlySpendingTrends(ctx, accountIDs, months)
	if err != nil {
		return nil, err
	}
	for _, inc := range increasingCategories(trends, trendIncreaseFactor) {
		recommendations = append(recommendations, domain.Recommendation{
			Type:     domain.RecommendationIncreasingTrend,
			Category: inc.category,
			Message:  fmt.Sprintf("Your spending on %s has increased by %s%% over the past %d months.", inc.category, inc.increasePct.String(), months),
			Action:   fmt.Sprintf("Review your %s expenses to identify areas for potential savings.", inc.category),
		})
	}

	topCategories := make([]domain.TopCategory, 0, 3)
	for i, row := range spending {
		if i >= 3 {
			break
		}
		topCategories = append(topCategories, domain.TopCategory{
			Category:   row.Category,
			Percentage: row.Percentage,
		})
	}

	s.LogInfo(ctx, "Spending recommendations generated",
		slog.Int("recommendation_count", len(recommendations)),
		slog.Int("months", months))
	return &domain.SpendingReport{
		Status:          domain.AnalysisSuccess,
		MonthlyAverage:  monthlyAverage,
		TopCategories:   topCategories,
		Recommendations: recommendations,
	}, nil
}

// categoryIncrease pairs a category with its growth over the trend window.
type categoryIncrease struct {
	category    string
	increasePct decimal.Decimal
	lastAmount  decimal.Decimal
}

// increasingCategories finds category columns whose last-month value exceeds
// the first-month value by the given factor. Needs at least two rows.
// Categories with a zero first month are skipped since the growth ratio is
// undefined for them.
func increasingCategories(trends []domain.MonthlyTrend, factor decimal.Decimal) []categoryIncrease {
	if len(trends) < 2 {
		return nil
	}

	first := trends[0].Categories
	last := trends[len(trends)-1].Categories

	names := make([]string, 0, len(first))
	for name := range first {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []categoryIncrease
	for _, name := range names {
		firstVal := first[name]
		lastVal := last[name]
		if firstVal.IsZero() {
			continue
		}
		if lastVal.GreaterThan(firstVal.Mul(factor)) {
			increase := lastVal.Div(firstVal).Sub(decimal.NewFromInt(1)).Mul(oneHundred).Round(2)
			result = append(result, categoryIncrease{
				category:    name,
				increasePct: increase,
				lastAmount:  lastVal,
			})
		}
	}
	return result
}

// GenerateBudgetPlan synthesizes a recommended budget allocation from the
// trailing 90 days of spending and an estimated or supplied monthly income.
func (s *recommendationService) GenerateBudgetPlan(ctx context.Context, userID string, income *decimal.Decimal, savingsGoalPercentage decimal.Decimal) (*domain.BudgetPlan, error) {
	accountIDs, err := s.accountIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -90)

	spending, err := s.analyzer.SpendingByCategory(ctx, accountIDs, &startDate, &endDate, "")
	if err != nil {
		return nil, err
	}

	if len(spending) == 0 {
		return &domain.BudgetPlan{
			Status:     domain.AnalysisInsufficientData,
			Message:    "Not enough transaction data to generate a budget plan",
			Categories: []domain.BudgetPlanCategory{},
		}, nil
	}

	totalSpent := decimal.Zero
	for _, row := range spending {
		totalSpent = totalSpent.Add(row.TotalAmount)
	}
	three := decimal.NewFromInt(3)
	monthlyAverage := totalSpent.Div(three)

	monthlyIncome := decimal.Zero
	if income != nil && income.IsPositive() {
		monthlyIncome = *income
	} else {
		estimated, err := s.estimateMonthlyIncome(ctx, accountIDs)
		if err != nil {
			return nil, err
		}
		if estimated != nil && estimated.IsPositive() {
			monthlyIncome = *estimated
		} else {
			monthlyIncome = monthlyAverage.Mul(incomeFallbackFactor)
		}
	}

	if savingsGoalPercentage.IsZero() {
		savingsGoalPercentage = defaultSavingsGoal
	}
	savingsAmount := monthlyIncome.Mul(savingsGoalPercentage).Div(oneHundred)
	availableForExpenses := monthlyIncome.Sub(savingsAmount)

	categories := make([]domain.BudgetPlanCategory, 0, len(spending)+len(defaultAllocations))
	seen := make(map[string]struct{}, len(spending))
	for _, row := range spending {
		currentAmount := row.TotalAmount.Div(three)
		recommendedPct, ok := defaultAllocations[row.Category]
		if !ok {
			recommendedPct = defaultAllocationPct
		}
		recommendedAmount := availableForExpenses.Mul(recommendedPct).Div(oneHundred)

		var status domain.BudgetPlanStatus
		switch {
		case currentAmount.GreaterThan(recommendedAmount.Mul(reduceFactor)):
			status = domain.BudgetPlanReduce
		case currentAmount.LessThan(recommendedAmount.Mul(goodFactor)):
			status = domain.BudgetPlanGood
		default:
			status = domain.BudgetPlanMaintain
		}

		categories = append(categories, domain.BudgetPlanCategory{
			Category:              row.Category,
			CurrentAmount:         currentAmount.Round(2),
			CurrentPercentage:     row.Percentage,
			RecommendedAmount:     recommendedAmount.Round(2),
			RecommendedPercentage: recommendedPct,
			Status:                status,
		})
		seen[row.Category] = struct{}{}
	}

	// Essential categories the user has no spend in yet.
	for category, pct := range defaultAllocations {
		if _, ok := seen[category]; ok {
			continue
		}
		categories = append(categories, domain.BudgetPlanCategory{
			Category:              category,
			CurrentAmount:         decimal.Zero,
			CurrentPercentage:     decimal.Zero,
			RecommendedAmount:     availableForExpenses.Mul(pct).Div(oneHundred).Round(2),
			RecommendedPercentage: pct,
			Status:                domain.BudgetPlanNew,
		})
	}

	// Highest recommended amount first; ties break on category name.
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].RecommendedAmount.Equal(categories[j].RecommendedAmount) {
			return categories[i].RecommendedAmount.GreaterThan(categories[j].RecommendedAmount)
		}
		return categories[i].Category < categories[j].Category
	})

	s.LogInfo(ctx, "Budget plan generated", slog.Int("category_count", len(categories)))
	return &domain.BudgetPlan{
		Status:            domain.AnalysisSuccess,
		MonthlyIncome:     monthlyIncome.Round(2),
		MonthlyExpenses:   monthlyAverage.Round(2),
		SavingsGoal:       savingsAmount.Round(2),
		SavingsPercentage: savingsGoalPercentage,
		Categories:        categories,
	}, nil
}

// estimateMonthlyIncome averages the trailing 90 days of non-transfer
// deposits. Returns nil when no deposits exist.
func (s *recommendationService) estimateMonthlyIncome(ctx context.Context, accountIDs []string) (*decimal.Decimal, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -90)

	txns, err := s.transactionRepo.FindIncome(ctx, accountIDs, &startDate, &endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve income transactions: %w", err)
	}

	total := decimal.Zero
	count := 0
	for _, txn := range txns {
		if txn.TransferAccountID != nil || !txn.Amount.IsPositive() {
			continue
		}
		total = total.Add(txn.Amount)
		count++
	}
	if count == 0 {
		return nil, nil
	}

	monthly := total.Div(decimal.NewFromInt(3))
	return &monthly, nil
}

// IdentifyCostCuttingOpportunities emits subscription, increasing-category
// and large-expense opportunities from recent activity.
func (s *recommendationService) IdentifyCostCuttingOpportunities(ctx context.Context, userID string) (*domain.CostCuttingReport, error) {
	accountIDs, err := s.accountIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	largeExpenses, err := s.analyzer.LargestExpenses(ctx, accountIDs, &startDate, &endDate, 20)
	if err != nil {
		return nil, err
	}

	if len(largeExpenses) == 0 {
		return &domain.CostCuttingReport{
			Status:        domain.AnalysisInsufficientData,
			Message:       "Not enough transaction data to identify cost-cutting opportunities",
			Opportunities: []domain.Opportunity{},
		}, nil
	}

	trends, err := s.analyzer.MonthlySpendingTrends(ctx, accountIDs, 3)
	if err != nil {
		return nil, err
	}

	patterns, err := s.identifyRecurringPatterns(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	opportunities := make([]domain.Opportunity, 0)

	for _, pattern := range patterns {
		if !isLikelySubscription(pattern) {
			continue
		}
		opportunities = append(opportunities, domain.Opportunity{
			Type:        domain.OpportunitySubscription,
			Category:    pattern.Category,
			Description: pattern.Description,
			Amount:      pattern.Amount,
			Frequency:   pattern.Frequency,
			AnnualCost:  pattern.AnnualCost,
			Message:     fmt.Sprintf("Potential subscription to %s costs $%s annually.", pattern.Description, pattern.AnnualCost.String()),
			Action:      "Review this subscription and consider if it provides enough value.",
		})
	}

	for _, inc := range increasingCategories(trends, costIncreaseFactor) {
		opportunities = append(opportunities, domain.Opportunity{
			Type:               domain.OpportunityIncreasingCategory,
			Category:           inc.category,
			IncreasePercentage: inc.increasePct,
			Amount:             inc.lastAmount.Round(2),
			Message:            fmt.Sprintf("Spending on %s has increased by %s%% recently.", inc.category, inc.increasePct.String()),
			Action:             fmt.Sprintf("Review your %s expenses and identify what's driving the increase.", inc.category),
		})
	}

	for _, expense := range largeExpenses {
		if !expense.Amount.GreaterThan(largeExpenseFloor) {
			continue
		}
		// Recurring patterns already explain this expense when their original
		// description is contained in it, case-insensitive.
		explained := false
		lowerDesc := strings.ToLower(expense.Description)
		for _, pattern := range patterns {
			if pattern.Description != "" && strings.Contains(lowerDesc, strings.ToLower(pattern.Description)) {
				explained = true
				break
			}
		}
		if explained {
			continue
		}

		opportunities = append(opportunities, domain.Opportunity{
			Type:        domain.OpportunityLargeExpense,
			Category:    expense.Category,
			Description: expense.Description,
			Amount:      expense.Amount.Round(2),
			Date:        expense.Date,
			Message:     fmt.Sprintf("Large expense of $%s for %s.", expense.Amount.Round(2).String(), expense.Description),
			Action:      "Consider if there are cheaper alternatives or if this expense could be reduced in the future.",
		})
	}

	s.LogInfo(ctx, "Cost-cutting opportunities identified", slog.Int("opportunity_count", len(opportunities)))
	return &domain.CostCuttingReport{
		Status:        domain.AnalysisSuccess,
		Opportunities: opportunities,
	}, nil
}

// identifyRecurringPatterns groups the trailing 180 days of expenses by
// normalized description and keeps groups with at least three members whose
// amounts all lie within 10% of the group mean.
func (s *recommendationService) identifyRecurringPatterns(ctx context.Context, accountIDs []string) ([]domain.RecurringPattern, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -180)

	txns, err := s.transactionRepo.FindExpenses(ctx, accountIDs, &startDate, &endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	groups := make(map[string][]domain.Transaction)
	for _, txn := range txns {
		if txn.TransferAccountID != nil || txn.Amount.Sign() >= 0 {
			continue
		}
		key := normalizeDescription(txn.Description)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], txn)
	}

	categoryNames, err := s.resolvePatternCategories(ctx, groups)
	if err != nil {
		return nil, err
	}

	patterns := make([]domain.RecurringPattern, 0)
	for key, members := range groups {
		if len(members) < 3 {
			continue
		}

		sort.Slice(members, func(i, j int) bool {
			return members[i].TransactionDate.Before(members[j].TransactionDate)
		})

		total := decimal.Zero
		for _, m := range members {
			total = total.Add(m.Amount.Abs())
		}
		avgAmount := total.Div(decimal.NewFromInt(int64(len(members))))
		if avgAmount.IsZero() {
			continue
		}

		similar := true
		for _, m := range members {
			deviation := m.Amount.Abs().Sub(avgAmount).Abs().Div(avgAmount)
			if !deviation.LessThan(amountSimilarityTol) {
				similar = false
				break
			}
		}
		if !similar {
			continue
		}

		intervalSum := 0
		for i := 1; i < len(members); i++ {
			intervalSum += int(members[i].TransactionDate.Sub(members[i-1].TransactionDate).Hours() / 24)
		}
		avgInterval := float64(intervalSum) / float64(len(members)-1)

		var frequency domain.RecurrenceFrequency
		switch {
		case avgInterval >= 25 && avgInterval <= 35:
			frequency = domain.FrequencyMonthly
		case avgInterval >= 13 && avgInterval <= 16:
			frequency = domain.FrequencyBiWeekly
		case avgInterval >= 6 && avgInterval <= 8:
			frequency = domain.FrequencyWeekly
		default:
			frequency = domain.FrequencyIrregular
		}

		category := domain.UncategorizedLabel
		if members[0].CategoryID != nil {
			if name, ok := categoryNames[*members[0].CategoryID]; ok {
				category = name
			}
		}

		patterns = append(patterns, domain.RecurringPattern{
			Description:           members[0].Description,
			NormalizedDescription: key,
			Amount:                avgAmount.Round(2),
			Frequency:             frequency,
			Instances:             len(members),
			Category:              category,
			AnnualCost:            avgAmount.Mul(annualMultiplier(frequency)).Round(2),
		})
	}

	// Highest annual cost first; ties break on normalized description.
	sort.Slice(patterns, func(i, j int) bool {
		if !patterns[i].AnnualCost.Equal(patterns[j].AnnualCost) {
			return patterns[i].AnnualCost.GreaterThan(patterns[j].AnnualCost)
		}
		return patterns[i].NormalizedDescription < patterns[j].NormalizedDescription
	})

	return patterns, nil
}

// resolvePatternCategories looks up the category names referenced by the
// first member of each description group.
func (s *recommendationService) resolvePatternCategories(ctx context.Context, groups map[string][]domain.Transaction) (map[string]string, error) {
	idSet := make(map[string]struct{})
	for _, members := range groups {
		for _, m := range members {
			if m.CategoryID != nil {
				idSet[*m.CategoryID] = struct{}{}
			}
		}
	}
	if len(idSet) == 0 {
		return map[string]string{}, nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	categories, err := s.categoryRepo.FindCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pattern categories: %w", err)
	}

	names := make(map[string]string, len(categories))
	for id, cat := range categories {
		names[id] = cat.Name
	}
	return names, nil
}

// annualMultiplier returns the number of billing cycles per year for a
// frequency. Irregular patterns keep the weekly multiplier.
func annualMultiplier(frequency domain.RecurrenceFrequency) decimal.Decimal {
	switch frequency {
	case domain.FrequencyMonthly:
		return decimal.NewFromInt(12)
	case domain.FrequencyBiWeekly:
		return decimal.NewFromInt(26)
	default:
		return decimal.NewFromInt(52)
	}
}

// normalizeDescription reduces a description to its lowercase alphabetic
// tokens with stop-words removed, for use as a grouping key. Returns the
// empty string when nothing survives.
func normalizeDescription(description string) string {
	if description == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToLower(description) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, word := range words {
		if _, drop := descriptionStopWords[word]; !drop {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// isLikelySubscription applies the subscription heuristic: a monthly or
// bi-weekly cadence with a subscription-style description, or a sub-$50
// price point ending in .99 or .95. Either condition is sufficient.
func isLikelySubscription(pattern domain.RecurringPattern) bool {
	if pattern.Frequency == domain.FrequencyMonthly || pattern.Frequency == domain.FrequencyBiWeekly {
		for _, keyword := range subscriptionKeywords {
			if strings.Contains(pattern.NormalizedDescription, keyword) {
				return true
			}
		}
	}

	if pattern.Amount.LessThan(subscriptionCeiling) {
		amountStr := pattern.Amount.String()
		if strings.HasSuffix(amountStr, ".99") || strings.HasSuffix(amountStr, ".95") {
			return true
		}
	}

	return false
}
