package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepository
	accountRepo     portsrepo.AccountRepository
	categoryRepo    portsrepo.CategoryRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepository,
	accountRepo portsrepo.AccountRepository,
	categoryRepo portsrepo.CategoryRepository,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) findOwnedAccount(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// findOwnedTransaction retrieves a transaction and verifies the caller owns
// the account it belongs to.
func (s *transactionService) findOwnedTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findOwnedAccount(ctx, txn.AccountID, userID); err != nil {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return txn, nil
}

// CreateTransaction persists a new transaction and applies balance effects.
// A transfer records a second leg on the destination account with the negated
// amount, so the two legs cancel out across the user's accounts.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: transaction amount must be non-zero", apperrors.ErrValidation)
	}

	if _, err := s.findOwnedAccount(ctx, req.AccountID, userID); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.UserID != userID {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, *req.CategoryID)
		}
	}

	if req.TransferAccountID != nil {
		if *req.TransferAccountID == req.AccountID {
			return nil, fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
		}
		if _, err := s.findOwnedAccount(ctx, *req.TransferAccountID, userID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		AccountID:         req.AccountID,
		CategoryID:        req.CategoryID,
		TransferAccountID: req.TransferAccountID,
		Amount:            req.Amount,
		Description:       req.Description,
		TransactionDate:   req.TransactionDate,
		Notes:             req.Notes,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	legs := []domain.Transaction{txn}
	balanceChanges := map[string]decimal.Decimal{txn.AccountID: txn.Amount}
	if req.TransferAccountID != nil {
		leg := domain.Transaction{
			TransactionID:     uuid.NewString(),
			AccountID:         *req.TransferAccountID,
			TransferAccountID: &req.AccountID,
			Amount:            req.Amount.Neg(),
			Description:       req.Description,
			TransactionDate:   req.TransactionDate,
			Notes:             req.Notes,
			AuditFields:       txn.AuditFields,
		}
		legs = append(legs, leg)
		balanceChanges[leg.AccountID] = leg.Amount
	}

	// Both legs and both balance effects commit in one repository
	// transaction, so a failure cannot leave an unpaired leg behind.
	if err := s.transactionRepo.SaveTransactions(ctx, legs, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type())))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	return s.findOwnedTransaction(ctx, transactionID, userID)
}

// ListTransactions retrieves the user's transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	accountIDs := make([]string, len(accounts))
	for i, acc := range accounts {
		accountIDs[i] = acc.AccountID
	}

	if filter.AccountID != "" {
		owned := false
		for _, id := range accountIDs {
			if id == filter.AccountID {
				owned = true
				break
			}
		}
		if !owned {
			return nil, fmt.Errorf("%w: account %s is not one of the caller's accounts", apperrors.ErrValidation, filter.AccountID)
		}
		accountIDs = []string{filter.AccountID}
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, accountIDs, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// UpdateTransaction updates mutable fields and reconciles balance effects.
// Transfer legs cannot be edited; delete and recreate the transfer instead.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.findOwnedTransaction(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if txn.TransferAccountID != nil {
		return nil, fmt.Errorf("%w: transfer legs cannot be edited", apperrors.ErrValidation)
	}

	now := time.Now()
	balanceDelta := decimal.Zero
	if req.Amount != nil {
		if req.Amount.IsZero() {
			return nil, fmt.Errorf("%w: transaction amount must be non-zero", apperrors.ErrValidation)
		}
		balanceDelta = req.Amount.Sub(txn.Amount)
		txn.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.UserID != userID {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, *req.CategoryID)
		}
		txn.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	// Field changes and the balance reconciliation commit together.
	if err := s.transactionRepo.UpdateTransaction(ctx, *txn, balanceDelta); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return txn, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
// Deleting a transfer leg reverses only that leg's account.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	txn, err := s.findOwnedTransaction(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, *txn, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
