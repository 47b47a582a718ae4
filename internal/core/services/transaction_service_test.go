package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/core/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvcFacade

	userID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)
	suite.userID = uuid.NewString()
}

// ownAccount stubs account lookups so the given ids resolve to accounts
// owned by the suite's user.
func (suite *TransactionServiceTestSuite) ownAccount(accountIDs ...string) {
	suite.mockAccountRepo.FindAccountByIDFn = func(ctx context.Context, id string) (*domain.Account, error) {
		for _, owned := range accountIDs {
			if owned == id {
				return &domain.Account{AccountID: id, UserID: suite.userID}, nil
			}
		}
		return nil, apperrors.ErrNotFound
	}
}

// --- CreateTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestCreateTransaction_Expense() {
	ctx := context.Background()
	suite.ownAccount("acc-1")
	req := dto.CreateTransactionRequest{
		AccountID:       "acc-1",
		Amount:          amount("-42.50"),
		Description:     "Groceries",
		TransactionDate: date(2025, 6, 1),
	}

	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 1 && txns[0].AccountID == "acc-1" && txns[0].Amount.Equal(req.Amount) && txns[0].Type() == domain.Expense
	}), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 1 && changes["acc-1"].Equal(req.Amount)
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.Expense, txn.Type())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ZeroAmountRejected() {
	ctx := context.Background()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: "acc-1",
		Amount:    decimal.Zero,
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignAccountRejected() {
	ctx := context.Background()
	suite.mockAccountRepo.FindAccountByIDFn = func(ctx context.Context, id string) (*domain.Account, error) {
		return &domain.Account{AccountID: id, UserID: uuid.NewString()}, nil
	}

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID: "acc-1",
		Amount:    amount("-10"),
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferCreatesBothLegs() {
	ctx := context.Background()
	suite.ownAccount("acc-src", "acc-dst")
	transferTo := "acc-dst"
	req := dto.CreateTransactionRequest{
		AccountID:         "acc-src",
		TransferAccountID: &transferTo,
		Amount:            amount("-200"),
		Description:       "Move to savings",
		TransactionDate:   date(2025, 6, 1),
	}

	var saved []domain.Transaction
	var adjusted map[string]decimal.Decimal
	calls := 0
	suite.mockTxnRepo.SaveTransactionsFn = func(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
		calls++
		saved = txns
		adjusted = balanceChanges
		return nil
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Both legs and both balance effects arrive in a single repository call.
	suite.Equal(1, calls)
	suite.Require().Len(saved, 2)

	src, dst := saved[0], saved[1]
	suite.Equal("acc-src", src.AccountID)
	suite.Equal("acc-dst", *src.TransferAccountID)
	suite.Equal("acc-dst", dst.AccountID)
	suite.Equal("acc-src", *dst.TransferAccountID)
	// The two legs cancel out across the user's accounts.
	suite.True(src.Amount.Add(dst.Amount).IsZero())
	suite.Equal(domain.Transfer, txn.Type())

	suite.Require().Len(adjusted, 2)
	suite.Equal("-200", adjusted["acc-src"].String())
	suite.Equal("200", adjusted["acc-dst"].String())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferSaveFailureLeavesBalancesAlone() {
	ctx := context.Background()
	suite.ownAccount("acc-src", "acc-dst")
	transferTo := "acc-dst"
	req := dto.CreateTransactionRequest{
		AccountID:         "acc-src",
		TransferAccountID: &transferTo,
		Amount:            amount("-500"),
		Description:       "Move to savings",
		TransactionDate:   date(2025, 6, 1),
	}

	calls := 0
	suite.mockTxnRepo.SaveTransactionsFn = func(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
		calls++
		suite.Len(txns, 2)
		return errors.New("connection reset")
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Equal(1, calls)
	// The service must not adjust any balance outside the repository
	// transaction, so a failed save leaves every account untouched.
	suite.Empty(suite.mockAccountRepo.Calls)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferToSameAccountRejected() {
	ctx := context.Background()
	suite.ownAccount("acc-1")
	sameAccount := "acc-1"

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID:         "acc-1",
		TransferAccountID: &sameAccount,
		Amount:            amount("-200"),
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignCategoryRejected() {
	ctx := context.Background()
	suite.ownAccount("acc-1")
	categoryID := "cat-1"

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).
		Return(&domain.Category{CategoryID: categoryID, UserID: uuid.NewString()}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		AccountID:  "acc-1",
		CategoryID: &categoryID,
		Amount:     amount("-10"),
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

// --- ListTransactions Tests ---
func (suite *TransactionServiceTestSuite) TestListTransactions_ScopedToOwnAccounts() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsByUserID", ctx, suite.userID).Return([]domain.Account{
		{AccountID: "acc-1", UserID: suite.userID},
		{AccountID: "acc-2", UserID: suite.userID},
	}, nil).Once()

	expected := []domain.Transaction{{TransactionID: "t1", AccountID: "acc-1"}}
	suite.mockTxnRepo.ListTransactionsFn = func(ctx context.Context, accountIDs []string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
		suite.Equal([]string{"acc-1", "acc-2"}, accountIDs)
		return expected, nil
	}

	txns, err := suite.service.ListTransactions(ctx, suite.userID, domain.TransactionFilter{})

	suite.Require().NoError(err)
	suite.Equal(expected, txns)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ForeignAccountFilterRejected() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsByUserID", ctx, suite.userID).Return([]domain.Account{
		{AccountID: "acc-1", UserID: suite.userID},
	}, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.userID, domain.TransactionFilter{AccountID: "acc-other"})

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- UpdateTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountReconcilesBalance() {
	ctx := context.Background()
	suite.ownAccount("acc-1")
	existing := &domain.Transaction{
		TransactionID: "t1",
		AccountID:     "acc-1",
		Amount:        amount("-50"),
	}
	newAmount := amount("-80")

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t1").Return(existing, nil).Once()
	// Balance moves by the delta between new and old amounts: -80 - (-50) = -30.
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == "t1" && txn.Amount.Equal(newAmount)
	}), amount("-30")).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, "t1", dto.UpdateTransactionRequest{Amount: &newAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(newAmount))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_TransferLegRejected() {
	ctx := context.Background()
	suite.ownAccount("acc-1")
	transferAccount := "acc-2"
	existing := &domain.Transaction{
		TransactionID:     "t1",
		AccountID:         "acc-1",
		TransferAccountID: &transferAccount,
		Amount:            amount("-200"),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t1").Return(existing, nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, "t1", dto.UpdateTransactionRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- DeleteTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesBalance() {
	ctx := context.Background()
	suite.ownAccount("acc-1")
	existing := &domain.Transaction{
		TransactionID: "t1",
		AccountID:     "acc-1",
		Amount:        amount("-75"),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t1").Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == "t1" && txn.AccountID == "acc-1" && txn.Amount.Equal(amount("-75"))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, "t1", suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t-missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, "t-missing", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
