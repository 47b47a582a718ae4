package services

import (
	"context"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/fintrackhq/fintrack/internal/dto"
)

// TransactionSvcFacade defines operations for recording and querying
// transactions. Writes keep account balances in step: a plain transaction
// adjusts its account by the signed amount, a transfer additionally credits
// the destination account with the negated amount.
type TransactionSvcFacade interface {
	// CreateTransaction persists a new transaction and applies balance effects.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction, enforcing ownership via the account.
	GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves the user's transactions, newest first.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// UpdateTransaction updates mutable fields and reconciles balance effects.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effects.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}
