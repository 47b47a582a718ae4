package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines persistence operations for transactions.
//
// FindExpenses and FindIncome are the analysis-facing queries: both exclude
// transfer-marked rows at the query level so transfers never leak into
// spending or income aggregates.
//
// Writes that move money are atomic: the transaction rows and their account
// balance effects commit together or not at all, so a transfer can never
// persist one leg without the other.
type TransactionRepository interface {
	// SaveTransactions inserts the given transactions and applies the balance
	// changes within a single DB transaction. A transfer passes both legs.
	SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// FindTransactionByID retrieves a single transaction; returns apperrors.ErrNotFound if absent.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions for the given accounts, newest
	// first, narrowed by the filter.
	ListTransactions(ctx context.Context, accountIDs []string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// FindExpenses retrieves non-transfer transactions with amount < 0 for the
	// given accounts, optionally bounded by an inclusive date range.
	FindExpenses(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error)

	// FindIncome retrieves non-transfer transactions with amount > 0 for the
	// given accounts, optionally bounded by an inclusive date range.
	FindIncome(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error)

	// UpdateTransaction persists mutable transaction fields and applies
	// balanceDelta to the owning account within a single DB transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error

	// DeleteTransaction removes a transaction and reverses its balance effect
	// on the owning account within a single DB transaction.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, deletedBy string, now time.Time) error
}
