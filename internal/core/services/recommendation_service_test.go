package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type RecommendationServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	mockBudgetRepo   *MockBudgetRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.RecommendationSvc
}

func (suite *RecommendationServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockAccountRepo = new(MockAccountRepository)

	// The recommendation service runs on top of the real analyzer so these
	// tests exercise the full analysis path against mocked repositories.
	analyzer := services.NewSpendingAnalyzerService(
		suite.mockTxnRepo, suite.mockCategoryRepo, suite.mockBudgetRepo, suite.mockAccountRepo)
	suite.service = services.NewRecommendationService(
		analyzer, suite.mockTxnRepo, suite.mockCategoryRepo, suite.mockAccountRepo)
}

func (suite *RecommendationServiceTestSuite) givenAccounts(userID string, accountIDs ...string) {
	accounts := make([]domain.Account, len(accountIDs))
	for i, id := range accountIDs {
		accounts[i] = domain.Account{AccountID: id, UserID: userID}
	}
	suite.mockAccountRepo.FindAccountsByUserIDFn = func(ctx context.Context, uid string) ([]domain.Account, error) {
		suite.Equal(userID, uid)
		return accounts, nil
	}
}

func (suite *RecommendationServiceTestSuite) givenCategories(categories map[string]domain.Category) {
	suite.mockCategoryRepo.FindCategoriesByIDsFn = func(ctx context.Context, ids []string) (map[string]domain.Category, error) {
		out := make(map[string]domain.Category, len(ids))
		for _, id := range ids {
			if cat, ok := categories[id]; ok {
				out[id] = cat
			}
		}
		return out, nil
	}
}

func findRecommendation(recs []domain.Recommendation, recType domain.RecommendationType) *domain.Recommendation {
	for i := range recs {
		if recs[i].Type == recType {
			return &recs[i]
		}
	}
	return nil
}

func findOpportunity(opps []domain.Opportunity, oppType domain.OpportunityType) *domain.Opportunity {
	for i := range opps {
		if opps[i].Type == oppType {
			return &opps[i]
		}
	}
	return nil
}

// --- SpendingRecommendations Tests ---

func (suite *RecommendationServiceTestSuite) TestSpendingRecommendations_HighSpending() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{
		"cat-food": {CategoryID: "cat-food", Name: "Food"},
		"cat-rent": {CategoryID: "cat-rent", Name: "Rent"},
		"cat-misc": {CategoryID: "cat-misc", Name: "Misc"},
	})

	// A single month of data so no trend signal fires.
	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		suite.Equal([]string{"acc-1"}, ids)
		return []domain.Transaction{
			expense("t1", strPtr("cat-food"), "800", date(2025, 6, 5)),
			expense("t2", strPtr("cat-rent"), "150", date(2025, 6, 10)),
			expense("t3", strPtr("cat-misc"), "50", date(2025, 6, 15)),
		}, nil
	}

	report, err := suite.service.SpendingRecommendations(ctx, userID, 3)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(domain.AnalysisSuccess, report.Status)
	suite.Equal("333.33", report.MonthlyAverage.String())

	suite.Require().Len(report.TopCategories, 3)
	suite.Equal("Food", report.TopCategories[0].Category)
	suite.Equal("80", report.TopCategories[0].Percentage.String())
	suite.Equal("Rent", report.TopCategories[1].Category)
	suite.Equal("Misc", report.TopCategories[2].Category)

	// Food exceeds the 15% share threshold; Rent sits exactly on it.
	suite.Require().Len(report.Recommendations, 1)
	rec := report.Recommendations[0]
	suite.Equal(domain.RecommendationHighSpending, rec.Type)
	suite.Equal("Food", rec.Category)
	suite.Equal("Your spending on Food is 80% of your total expenses.", rec.Message)
	suite.Equal("Consider setting a budget for Food to reduce overall expenses.", rec.Action)
}

func (suite *RecommendationServiceTestSuite) TestSpendingRecommendations_IncreasingTrend() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{
		"cat-food": {CategoryID: "cat-food", Name: "Food"},
	})

	// Food grows from 100 to 150 across two months, a 50% increase.
	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{
			expense("t1", strPtr("cat-food"), "100", date(2025, 5, 10)),
			expense("t2", strPtr("cat-food"), "150", date(2025, 6, 10)),
		}, nil
	}

	report, err := suite.service.SpendingRecommendations(ctx, userID, 2)

	suite.Require().NoError(err)
	rec := findRecommendation(report.Recommendations, domain.RecommendationIncreasingTrend)
	suite.Require().NotNil(rec)
	suite.Equal("Food", rec.Category)
	suite.Equal("Your spending on Food has increased by 50% over the past 2 months.", rec.Message)
	suite.Equal("Review your Food expenses to identify areas for potential savings.", rec.Action)
}

func (suite *RecommendationServiceTestSuite) TestSpendingRecommendations_InsufficientData() {
	ctx := context.Background()
	suite.givenAccounts("user-1", "acc-1")

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{}, nil
	}

	report, err := suite.service.SpendingRecommendations(ctx, "user-1", 3)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(domain.AnalysisInsufficientData, report.Status)
	suite.Equal("Not enough transaction data to generate recommendations", report.Message)
	suite.NotNil(report.Recommendations)
	suite.Empty(report.Recommendations)
}

func (suite *RecommendationServiceTestSuite) TestSpendingRecommendations_AccountLookupError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockAccountRepo.FindAccountsByUserIDFn = func(ctx context.Context, uid string) ([]domain.Account, error) {
		return nil, expectedErr
	}

	report, err := suite.service.SpendingRecommendations(ctx, "user-1", 3)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, expectedErr)
	suite.Contains(err.Error(), "failed to retrieve accounts")
}

// --- GenerateBudgetPlan Tests ---

func (suite *RecommendationServiceTestSuite) TestGenerateBudgetPlan_ExplicitIncome() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{
		"cat-housing": {CategoryID: "cat-housing", Name: "Housing"},
		"cat-food":    {CategoryID: "cat-food", Name: "Food"},
	})

	// 90 days of spend: Housing 3600, Food 900.
	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{
			expense("t1", strPtr("cat-housing"), "3600", date(2025, 5, 1)),
			expense("t2", strPtr("cat-food"), "900", date(2025, 5, 15)),
		}, nil
	}

	income := amount("5000")
	plan, err := suite.service.GenerateBudgetPlan(ctx, userID, &income, decimal.Zero)

	suite.Require().NoError(err)
	suite.Require().NotNil(plan)
	suite.Equal(domain.AnalysisSuccess, plan.Status)
	suite.Equal("5000", plan.MonthlyIncome.String())
	suite.Equal("1500", plan.MonthlyExpenses.String())
	// Zero savings goal falls back to the 20% default: 1000 of 5000.
	suite.Equal("20", plan.SavingsPercentage.String())
	suite.Equal("1000", plan.SavingsGoal.String())

	// Two observed categories plus the untouched default allocations.
	suite.Require().Len(plan.Categories, 9)

	// Highest recommended amount first: Housing gets 30% of the 4000
	// available after savings.
	housing := plan.Categories[0]
	suite.Equal("Housing", housing.Category)
	suite.Equal("1200", housing.CurrentAmount.String())
	suite.Equal("1200", housing.RecommendedAmount.String())
	suite.Equal("30", housing.RecommendedPercentage.String())
	suite.Equal(domain.BudgetPlanMaintain, housing.Status)

	// Food and Transportation tie at 600 recommended; name order breaks the tie.
	food := plan.Categories[1]
	suite.Equal("Food", food.Category)
	suite.Equal("300", food.CurrentAmount.String())
	suite.Equal("600", food.RecommendedAmount.String())
	suite.Equal(domain.BudgetPlanGood, food.Status)

	transport := plan.Categories[2]
	suite.Equal("Transportation", transport.Category)
	suite.True(transport.CurrentAmount.IsZero())
	suite.Equal(domain.BudgetPlanNew, transport.Status)
}

func (suite *RecommendationServiceTestSuite) TestGenerateBudgetPlan_EstimatesIncomeFromDeposits() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{
		"cat-food": {CategoryID: "cat-food", Name: "Food"},
	})

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{
			expense("t1", strPtr("cat-food"), "600", date(2025, 5, 15)),
		}, nil
	}
	suite.mockTxnRepo.FindIncomeFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		deposit := func(id, amt string, txnDate time.Time) domain.Transaction {
			return domain.Transaction{TransactionID: id, AccountID: "acc-1", Amount: amount(amt), TransactionDate: txnDate}
		}
		return []domain.Transaction{
			deposit("d1", "3000", date(2025, 4, 1)),
			deposit("d2", "3000", date(2025, 5, 1)),
			deposit("d3", "3000", date(2025, 6, 1)),
		}, nil
	}

	plan, err := suite.service.GenerateBudgetPlan(ctx, userID, nil, decimal.Zero)

	suite.Require().NoError(err)
	suite.Equal("3000", plan.MonthlyIncome.String())
	suite.Equal("600", plan.SavingsGoal.String())
}

func (suite *RecommendationServiceTestSuite) TestGenerateBudgetPlan_InsufficientData() {
	ctx := context.Background()
	suite.givenAccounts("user-1", "acc-1")

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{}, nil
	}

	plan, err := suite.service.GenerateBudgetPlan(ctx, "user-1", nil, decimal.Zero)

	suite.Require().NoError(err)
	suite.Require().NotNil(plan)
	suite.Equal(domain.AnalysisInsufficientData, plan.Status)
	suite.Equal("Not enough transaction data to generate a budget plan", plan.Message)
	suite.NotNil(plan.Categories)
	suite.Empty(plan.Categories)
}

// --- IdentifyCostCuttingOpportunities Tests ---

func (suite *RecommendationServiceTestSuite) TestIdentifyCostCuttingOpportunities() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{
		"cat-fun":    {CategoryID: "cat-fun", Name: "Entertainment"},
		"cat-health": {CategoryID: "cat-health", Name: "Healthcare"},
	})

	// Three Netflix charges a month apart plus one standalone large expense.
	netflix := func(id string, txnDate time.Time) domain.Transaction {
		txn := expense(id, strPtr("cat-fun"), "15.99", txnDate)
		txn.Description = "Netflix Subscription"
		return txn
	}
	vet := expense("t-vet", strPtr("cat-health"), "450", date(2025, 5, 20))
	vet.Description = "Vet Emergency"

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{
			netflix("t-n1", date(2025, 3, 10)),
			netflix("t-n2", date(2025, 4, 9)),
			netflix("t-n3", date(2025, 5, 9)),
			vet,
		}, nil
	}

	report, err := suite.service.IdentifyCostCuttingOpportunities(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(domain.AnalysisSuccess, report.Status)
	suite.Require().Len(report.Opportunities, 2)

	sub := findOpportunity(report.Opportunities, domain.OpportunitySubscription)
	suite.Require().NotNil(sub)
	suite.Equal("Netflix Subscription", sub.Description)
	suite.Equal("Entertainment", sub.Category)
	suite.Equal(domain.FrequencyMonthly, sub.Frequency)
	suite.Equal("15.99", sub.Amount.String())
	suite.Equal("191.88", sub.AnnualCost.String())
	suite.Equal("Potential subscription to Netflix Subscription costs $191.88 annually.", sub.Message)

	large := findOpportunity(report.Opportunities, domain.OpportunityLargeExpense)
	suite.Require().NotNil(large)
	suite.Equal("Vet Emergency", large.Description)
	suite.Equal("Healthcare", large.Category)
	suite.Equal("450", large.Amount.String())
	suite.Equal("2025-05-20", large.Date)
	suite.Equal("Large expense of $450 for Vet Emergency.", large.Message)
}

func (suite *RecommendationServiceTestSuite) TestIdentifyCostCuttingOpportunities_RecurringExpenseNotFlaggedLarge() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{})

	// A large rent payment recurs monthly; the recurring pattern explains it
	// so it must not surface again as a one-off large expense.
	rent := func(id string, txnDate time.Time) domain.Transaction {
		txn := expense(id, nil, "1200", txnDate)
		txn.Description = "Apartment Rent"
		return txn
	}

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{
			rent("t-r1", date(2025, 3, 1)),
			rent("t-r2", date(2025, 4, 1)),
			rent("t-r3", date(2025, 5, 1)),
		}, nil
	}

	report, err := suite.service.IdentifyCostCuttingOpportunities(ctx, userID)

	suite.Require().NoError(err)
	suite.Nil(findOpportunity(report.Opportunities, domain.OpportunityLargeExpense))
}

func (suite *RecommendationServiceTestSuite) TestIdentifyCostCuttingOpportunities_NearIdenticalChargesRecur() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{
		"cat-music": {CategoryID: "cat-music", Name: "Music"},
	})

	// Four monthly charges that drift by a cent or two around a $9.995 mean,
	// all well inside the 10% similarity band.
	spotify := func(id, amt string, txnDate time.Time) domain.Transaction {
		txn := expense(id, strPtr("cat-music"), amt, txnDate)
		txn.Description = "Spotify Premium"
		return txn
	}

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{
			spotify("t-s1", "9.99", date(2025, 3, 10)),
			spotify("t-s2", "10.01", date(2025, 4, 9)),
			spotify("t-s3", "9.98", date(2025, 5, 9)),
			spotify("t-s4", "10.00", date(2025, 6, 8)),
		}, nil
	}

	report, err := suite.service.IdentifyCostCuttingOpportunities(ctx, userID)

	suite.Require().NoError(err)
	sub := findOpportunity(report.Opportunities, domain.OpportunitySubscription)
	suite.Require().NotNil(sub)
	suite.Equal("Spotify Premium", sub.Description)
	suite.Equal("Music", sub.Category)
	suite.Equal(domain.FrequencyMonthly, sub.Frequency)
	suite.Equal("10", sub.Amount.String())
	suite.Equal("119.94", sub.AnnualCost.String())
	suite.Equal("Potential subscription to Spotify Premium costs $119.94 annually.", sub.Message)
}

func (suite *RecommendationServiceTestSuite) TestIdentifyCostCuttingOpportunities_WideAmountSpreadNotRecurring() {
	ctx := context.Background()
	userID := "user-1"
	suite.givenAccounts(userID, "acc-1")
	suite.givenCategories(map[string]domain.Category{})

	// The cheapest charge sits exactly 10% below the mean, which is outside
	// the strictly-less-than similarity band, so no pattern forms.
	gym := func(id, amt string, txnDate time.Time) domain.Transaction {
		txn := expense(id, nil, amt, txnDate)
		txn.Description = "Gym Membership"
		return txn
	}

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{
			gym("t-g1", "9", date(2025, 3, 1)),
			gym("t-g2", "10", date(2025, 4, 1)),
			gym("t-g3", "11", date(2025, 5, 1)),
		}, nil
	}

	report, err := suite.service.IdentifyCostCuttingOpportunities(ctx, userID)

	suite.Require().NoError(err)
	suite.Nil(findOpportunity(report.Opportunities, domain.OpportunitySubscription))
}

func (suite *RecommendationServiceTestSuite) TestIdentifyCostCuttingOpportunities_InsufficientData() {
	ctx := context.Background()
	suite.givenAccounts("user-1", "acc-1")

	suite.mockTxnRepo.FindExpensesFn = func(ctx context.Context, ids []string, from, to *time.Time) ([]domain.Transaction, error) {
		return []domain.Transaction{}, nil
	}

	report, err := suite.service.IdentifyCostCuttingOpportunities(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(domain.AnalysisInsufficientData, report.Status)
	suite.Equal("Not enough transaction data to identify cost-cutting opportunities", report.Message)
	suite.Empty(report.Opportunities)
}

func TestRecommendationService(t *testing.T) {
	suite.Run(t, new(RecommendationServiceTestSuite))
}
