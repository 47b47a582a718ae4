package services_test

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
	SaveUserFn           func(ctx context.Context, user domain.User) error
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	UpdateUserFn         func(ctx context.Context, user domain.User) error
	UpdateRefreshTokenFn func(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error
	ClearRefreshTokenFn  func(ctx context.Context, userID string) error
	MarkUserDeletedFn    func(ctx context.Context, userID string, deletedBy string, now time.Time) error
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindUserByUsernameFn != nil {
		return m.FindUserByUsernameFn(ctx, username)
	}
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	if m.UpdateRefreshTokenFn != nil {
		return m.UpdateRefreshTokenFn(ctx, userID, tokenHash, expiresAt)
	}
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	if m.ClearRefreshTokenFn != nil {
		return m.ClearRefreshTokenFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, userID, deletedBy, now)
	}
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
	SaveAccountFn               func(ctx context.Context, account domain.Account) error
	FindAccountByIDFn           func(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByUserIDFn      func(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccountFn             func(ctx context.Context, account domain.Account) error
	UpdateAccountBalancesInTxFn func(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
	DeactivateAccountFn         func(ctx context.Context, accountID string, userID string, now time.Time) error
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if m.SaveAccountFn != nil {
		return m.SaveAccountFn(ctx, account)
	}
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.FindAccountByIDFn != nil {
		return m.FindAccountByIDFn(ctx, accountID)
	}
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	if m.FindAccountsByUserIDFn != nil {
		return m.FindAccountsByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	if m.UpdateAccountFn != nil {
		return m.UpdateAccountFn(ctx, account)
	}
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if m.UpdateAccountBalancesInTxFn != nil {
		return m.UpdateAccountBalancesInTxFn(ctx, tx, balanceChanges, userID, now)
	}
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	if m.DeactivateAccountFn != nil {
		return m.DeactivateAccountFn(ctx, accountID, userID, now)
	}
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
	SaveCategoryFn         func(ctx context.Context, category domain.Category) error
	SaveCategoriesFn       func(ctx context.Context, categories []domain.Category) error
	FindCategoryByIDFn     func(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoriesByIDsFn  func(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error)
	ListCategoriesByUserFn func(ctx context.Context, userID string) ([]domain.Category, error)
	FindChildCategoriesFn  func(ctx context.Context, parentID string) ([]domain.Category, error)
	UpdateCategoryFn       func(ctx context.Context, category domain.Category) error
	DeleteCategoryFn       func(ctx context.Context, categoryID string) error
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	if m.SaveCategoryFn != nil {
		return m.SaveCategoryFn(ctx, category)
	}
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	if m.SaveCategoriesFn != nil {
		return m.SaveCategoriesFn(ctx, categories)
	}
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	if m.FindCategoryByIDFn != nil {
		return m.FindCategoryByIDFn(ctx, categoryID)
	}
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	if m.FindCategoriesByIDsFn != nil {
		return m.FindCategoriesByIDsFn(ctx, categoryIDs)
	}
	args := m.Called(ctx, categoryIDs)
	var categories map[string]domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).(map[string]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	if m.ListCategoriesByUserFn != nil {
		return m.ListCategoriesByUserFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) FindChildCategories(ctx context.Context, parentID string) ([]domain.Category, error) {
	if m.FindChildCategoriesFn != nil {
		return m.FindChildCategoriesFn(ctx, parentID)
	}
	args := m.Called(ctx, parentID)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	if m.UpdateCategoryFn != nil {
		return m.UpdateCategoryFn(ctx, category)
	}
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	if m.DeleteCategoryFn != nil {
		return m.DeleteCategoryFn(ctx, categoryID)
	}
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
	SaveTransactionsFn    func(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	FindTransactionByIDFn func(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsFn    func(ctx context.Context, accountIDs []string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	FindExpensesFn        func(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error)
	FindIncomeFn          func(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error)
	UpdateTransactionFn   func(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error
	DeleteTransactionFn   func(ctx context.Context, txn domain.Transaction, deletedBy string, now time.Time) error
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	if m.SaveTransactionsFn != nil {
		return m.SaveTransactionsFn(ctx, txns, balanceChanges)
	}
	args := m.Called(ctx, txns, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if m.FindTransactionByIDFn != nil {
		return m.FindTransactionByIDFn(ctx, transactionID)
	}
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, accountIDs []string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, accountIDs, filter)
	}
	args := m.Called(ctx, accountIDs, filter)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) FindExpenses(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error) {
	if m.FindExpensesFn != nil {
		return m.FindExpensesFn(ctx, accountIDs, from, to)
	}
	args := m.Called(ctx, accountIDs, from, to)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) FindIncome(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error) {
	if m.FindIncomeFn != nil {
		return m.FindIncomeFn(ctx, accountIDs, from, to)
	}
	args := m.Called(ctx, accountIDs, from, to)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	if m.UpdateTransactionFn != nil {
		return m.UpdateTransactionFn(ctx, txn, balanceDelta)
	}
	args := m.Called(ctx, txn, balanceDelta)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, deletedBy string, now time.Time) error {
	if m.DeleteTransactionFn != nil {
		return m.DeleteTransactionFn(ctx, txn, deletedBy, now)
	}
	args := m.Called(ctx, txn, deletedBy, now)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
	SaveBudgetFn            func(ctx context.Context, budget domain.Budget, items []domain.BudgetItem) error
	FindBudgetByIDForUserFn func(ctx context.Context, budgetID string, userID string) (*domain.Budget, error)
	FindBudgetItemsFn       func(ctx context.Context, budgetID string) ([]domain.BudgetItem, error)
	ListBudgetsByUserFn     func(ctx context.Context, userID string) ([]domain.Budget, error)
	UpdateBudgetFn          func(ctx context.Context, budget domain.Budget) error
	ReplaceBudgetItemsFn    func(ctx context.Context, budgetID string, items []domain.BudgetItem) error
	DeleteBudgetFn          func(ctx context.Context, budgetID string) error
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget, items []domain.BudgetItem) error {
	if m.SaveBudgetFn != nil {
		return m.SaveBudgetFn(ctx, budget, items)
	}
	args := m.Called(ctx, budget, items)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByIDForUser(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	if m.FindBudgetByIDForUserFn != nil {
		return m.FindBudgetByIDForUserFn(ctx, budgetID, userID)
	}
	args := m.Called(ctx, budgetID, userID)
	var budget *domain.Budget
	if args.Get(0) != nil {
		budget = args.Get(0).(*domain.Budget)
	}
	return budget, args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error) {
	if m.FindBudgetItemsFn != nil {
		return m.FindBudgetItemsFn(ctx, budgetID)
	}
	args := m.Called(ctx, budgetID)
	var items []domain.BudgetItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.BudgetItem)
	}
	return items, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	if m.ListBudgetsByUserFn != nil {
		return m.ListBudgetsByUserFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	if m.UpdateBudgetFn != nil {
		return m.UpdateBudgetFn(ctx, budget)
	}
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) ReplaceBudgetItems(ctx context.Context, budgetID string, items []domain.BudgetItem) error {
	if m.ReplaceBudgetItemsFn != nil {
		return m.ReplaceBudgetItemsFn(ctx, budgetID, items)
	}
	args := m.Called(ctx, budgetID, items)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	if m.DeleteBudgetFn != nil {
		return m.DeleteBudgetFn(ctx, budgetID)
	}
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}
