package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// spendingAnalyzerService implements the SpendingAnalyzerSvc interface
type spendingAnalyzerService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	categoryRepo    portsrepo.CategoryRepository
	budgetRepo      portsrepo.BudgetRepository
	accountRepo     portsrepo.AccountRepository
}

// NewSpendingAnalyzerService creates a new spending analyzer service.
func NewSpendingAnalyzerService(
	transactionRepo portsrepo.TransactionRepository,
	categoryRepo portsrepo.CategoryRepository,
	budgetRepo portsrepo.BudgetRepository,
	accountRepo portsrepo.AccountRepository,
) portssvc.SpendingAnalyzerSvc {
	return &spendingAnalyzerService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		accountRepo:     accountRepo,
	}
}

// Ensure spendingAnalyzerService implements the SpendingAnalyzerSvc interface
var _ portssvc.SpendingAnalyzerSvc = (*spendingAnalyzerService)(nil)

var oneHundred = decimal.NewFromInt(100)

// isExpense reports whether a transaction counts toward spending aggregates.
// The repository queries already exclude transfers and non-negative amounts;
// this re-check keeps the invariant local so injected rows cannot skew totals.
func isExpense(txn domain.Transaction) bool {
	return txn.TransferAccountID == nil && txn.Amount.Sign() < 0
}

// resolveCategoryNames maps every category id referenced by the transactions
// to its name. Unresolvable references fall back to the uncategorized label.
func (s *spendingAnalyzerService) resolveCategoryNames(ctx context.Context, txns []domain.Transaction) (map[string]string, error) {
	idSet := make(map[string]struct{})
	for _, txn := range txns {
		if txn.CategoryID != nil {
			idSet[*txn.CategoryID] = struct{}{}
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
		return nil, fmt.Errorf("failed to resolve category names: %w", err)
	}

	names := make(map[string]string, len(categories))
	for id, cat := range categories {
		names[id] = cat.Name
	}
	return names, nil
}

// categoryLabel returns the display name of a transaction's category.
func categoryLabel(txn domain.Transaction, names map[string]string) string {
	if txn.CategoryID != nil {
		if name, ok := names[*txn.CategoryID]; ok {
			return name
		}
	}
	return domain.UncategorizedLabel
}

// SpendingByCategory groups expenses into per-category totals and percentages.
func (s *spendingAnalyzerService) SpendingByCategory(ctx context.Context, accountIDs []string, startDate, endDate *time.Time, accountFilter string) ([]domain.CategorySpending, error) {
	scope := accountIDs
	if accountFilter != "" {
		found := false
		for _, id := range accountIDs {
			if id == accountFilter {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: account filter %s is not one of the caller's accounts", apperrors.ErrValidation, accountFilter)
		}
		scope = []string{accountFilter}
	}

	txns, err := s.transactionRepo.FindExpenses(ctx, scope, startDate, endDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expenses for category breakdown")
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	names, err := s.resolveCategoryNames(ctx, txns)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	grandTotal := decimal.Zero
	for _, txn := range txns {
		if !isExpense(txn) {
			continue
		}
		amount := txn.Amount.Abs()
		label := categoryLabel(txn, names)
		totals[label] = totals[label].Add(amount)
		grandTotal = grandTotal.Add(amount)
	}

	if len(totals) == 0 {
		return []domain.CategorySpending{}, nil
	}

	result := make([]domain.CategorySpending, 0, len(totals))
	for label, total := range totals {
		result = append(result, domain.CategorySpending{
			Category:    label,
			TotalAmount: total,
			Percentage:  total.Div(grandTotal).Mul(oneHundred).Round(2),
		})
	}

	// Highest spend first; ties break on category name for a stable order.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].TotalAmount.Equal(result[j].TotalAmount) {
			return result[i].TotalAmount.GreaterThan(result[j].TotalAmount)
		}
		return result[i].Category < result[j].Category
	})

	s.LogDebug(ctx, "Spending by category computed", slog.Int("categories", len(result)))
	return result, nil
}

// MonthlySpendingTrends groups expenses of the trailing months*30 days into
// per-month rows with a column for every category seen in the window.
func (s *spendingAnalyzerService) MonthlySpendingTrends(ctx context.Context, accountIDs []string, months int) ([]domain.MonthlyTrend, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: months must be positive", apperrors.ErrValidation)
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30*months)

	txns, err := s.transactionRepo.FindExpenses(ctx, accountIDs, &startDate, &endDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expenses for monthly trends")
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	names, err := s.resolveCategoryNames(ctx, txns)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]map[string]decimal.Decimal)
	allCategories := make(map[string]struct{})
	for _, txn := range txns {
		if !isExpense(txn) {
			continue
		}
		month := txn.TransactionDate.Format("2006-01")
		label := categoryLabel(txn, names)
		if byMonth[month] == nil {
			byMonth[month] = make(map[string]decimal.Decimal)
		}
		byMonth[month][label] = byMonth[month][label].Add(txn.Amount.Abs())
		allCategories[label] = struct{}{}
	}

	if len(byMonth) == 0 {
		return []domain.MonthlyTrend{}, nil
	}

	result := make([]domain.MonthlyTrend, 0, len(byMonth))
	for month, categories := range byMonth {
		row := domain.MonthlyTrend{
			Month:      month,
			Categories: make(map[string]decimal.Decimal, len(allCategories)),
		}
		total := decimal.Zero
		for label := range allCategories {
			amount := categories[label] // zero when the category had no spend this month
			row.Categories[label] = amount
			total = total.Add(amount)
		}
		row.TotalAmount = total
		result = append(result, row)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result, nil
}

// LargestExpenses returns the limit largest individual expenses, largest
// magnitude first.
func (s *spendingAnalyzerService) LargestExpenses(ctx context.Context, accountIDs []string, startDate, endDate *time.Time, limit int) ([]domain.ExpenseDetail, error) {
	if limit <= 0 {
		limit = 10
	}

	txns, err := s.transactionRepo.FindExpenses(ctx, accountIDs, startDate, endDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expenses for largest expense lookup")
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	expenses := make([]domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if isExpense(txn) {
			expenses = append(expenses, txn)
		}
	}

	// Ascending by signed amount puts the largest magnitude first.
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.LessThan(expenses[j].Amount)
	})
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}

	names, err := s.resolveCategoryNames(ctx, expenses)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ExpenseDetail, len(expenses))
	for i, txn := range expenses {
		result[i] = domain.ExpenseDetail{
			TransactionID: txn.TransactionID,
			Amount:        txn.Amount.Abs(),
			Description:   txn.Description,
			Category:      categoryLabel(txn, names),
			Date:          txn.TransactionDate.Format("2006-01-02"),
		}
	}

	return result, nil
}

// BudgetComparison compares actual spending during a budget's period against
// its per-category allocations.
func (s *spendingAnalyzerService) BudgetComparison(ctx context.Context, budgetID string, userID string) ([]domain.BudgetComparisonRow, error) {
	budget, err := s.budgetRepo.FindBudgetByIDForUser(ctx, budgetID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find budget for comparison", slog.String("budget_id", budgetID))
		return nil, err
	}

	items, err := s.budgetRepo.FindBudgetItems(ctx, budget.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve budget items: %w", err)
	}
	if len(items) == 0 {
		return []domain.BudgetComparisonRow{}, nil
	}

	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	accountIDs := make([]string, len(accounts))
	for i, acc := range accounts {
		accountIDs[i] = acc.AccountID
	}

	txns, err := s.transactionRepo.FindExpenses(ctx, accountIDs, &budget.StartDate, &budget.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expenses for budget comparison")
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	// Allocation per category name.
	itemCategoryIDs := make([]string, len(items))
	for i, item := range items {
		itemCategoryIDs[i] = item.CategoryID
	}
	itemCategories, err := s.categoryRepo.FindCategoriesByIDs(ctx, itemCategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve budget categories: %w", err)
	}
	budgeted := make(map[string]decimal.Decimal)
	for _, item := range items {
		label := domain.UncategorizedLabel
		if cat, ok := itemCategories[item.CategoryID]; ok {
			label = cat.Name
		}
		budgeted[label] = budgeted[label].Add(item.Amount)
	}

	// Actual spend per category name.
	names, err := s.resolveCategoryNames(ctx, txns)
	if err != nil {
		return nil, err
	}
	actual := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if !isExpense(txn) {
			continue
		}
		label := categoryLabel(txn, names)
		actual[label] = actual[label].Add(txn.Amount.Abs())
	}

	result := make([]domain.BudgetComparisonRow, 0, len(budgeted)+len(actual))
	for label, budgetAmount := range budgeted {
		actualAmount := actual[label]
		percentage := decimal.Zero
		if budgetAmount.IsPositive() {
			percentage = actualAmount.Div(budgetAmount).Mul(oneHundred).Round(2)
		}
		result = append(result, domain.BudgetComparisonRow{
			Category:     label,
			BudgetAmount: budgetAmount,
			ActualAmount: actualAmount,
			Difference:   budgetAmount.Sub(actualAmount),
			Percentage:   percentage,
		})
	}
	for label, actualAmount := range actual {
		if _, ok := budgeted[label]; ok {
			continue
		}
		result = append(result, domain.BudgetComparisonRow{
			Category:     label,
			BudgetAmount: decimal.Zero,
			ActualAmount: actualAmount,
			Difference:   actualAmount.Neg(),
			Unbudgeted:   true,
		})
	}

	// Most over budget first; ties break on category name for a stable order.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Difference.Equal(result[j].Difference) {
			return result[i].Difference.LessThan(result[j].Difference)
		}
		return result[i].Category < result[j].Category
	})

	s.LogInfo(ctx, "Budget comparison computed",
		slog.String("budget_id", budgetID),
		slog.Int("rows", len(result)))
	return result, nil
}
