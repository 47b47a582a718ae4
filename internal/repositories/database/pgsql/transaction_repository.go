package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 50

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
// Balance-moving writes delegate the account updates to accountRepo within
// their own DB transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		Notes:           d.Notes,
		IsRecurring:     d.IsRecurring,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.CategoryID != nil {
		m.CategoryID = sql.NullString{String: *d.CategoryID, Valid: true}
	}
	if d.TransferAccountID != nil {
		m.TransferAccountID = sql.NullString{String: *d.TransferAccountID, Valid: true}
	}
	if d.RecurrencePattern != "" {
		m.RecurrencePattern = sql.NullString{String: d.RecurrencePattern, Valid: true}
	}
	return m
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		Notes:           m.Notes,
		IsRecurring:     m.IsRecurring,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.CategoryID.Valid {
		categoryID := m.CategoryID.String
		d.CategoryID = &categoryID
	}
	if m.TransferAccountID.Valid {
		transferAccountID := m.TransferAccountID.String
		d.TransferAccountID = &transferAccountID
	}
	if m.RecurrencePattern.Valid {
		d.RecurrencePattern = m.RecurrencePattern.String
	}
	return d
}

const transactionColumns = `transaction_id, account_id, category_id, transfer_account_id, amount, description, transaction_date, notes, is_recurring, recurrence_pattern, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.CategoryID,
		&m.TransferAccountID,
		&m.Amount,
		&m.Description,
		&m.TransactionDate,
		&m.Notes,
		&m.IsRecurring,
		&m.RecurrencePattern,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	return txns, rows.Err()
}

// SaveTransactions inserts the given transactions and applies the balance
// changes within a single DB transaction. If any statement fails nothing is
// committed, so a transfer can never persist one leg without the other.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := toModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.AccountID,
			m.CategoryID,
			m.TransferAccountID,
			m.Amount,
			m.Description,
			m.TransactionDate,
			m.Notes,
			m.IsRecurring,
			m.RecurrencePattern,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
				batchErr = fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txns[i].TransactionID)
			} else {
				batchErr = fmt.Errorf("failed to save transaction %s: %w", txns[i].TransactionID, err)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close transaction insert batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	first := txns[0]
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, first.CreatedBy, first.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves transactions for the given accounts, newest
// first, narrowed by the filter. Cursor fields take precedence over Offset
// when set.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, accountIDs []string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if len(accountIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = ANY($1)`)
	args := []any{accountIDs}

	addArg := func(clause string, value any) {
		args = append(args, value)
		sb.WriteString(" AND " + clause + "$" + strconv.Itoa(len(args)))
	}

	if filter.AccountID != "" {
		addArg("account_id = ", filter.AccountID)
	}
	if filter.CategoryID != "" {
		addArg("category_id = ", filter.CategoryID)
	}
	if filter.StartDate != nil {
		addArg("transaction_date >= ", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addArg("transaction_date <= ", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		addArg("amount >= ", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		addArg("amount <= ", *filter.MaxAmount)
	}

	switch filter.Type {
	case domain.Transfer:
		sb.WriteString(" AND transfer_account_id IS NOT NULL")
	case domain.Expense:
		sb.WriteString(" AND transfer_account_id IS NULL AND amount < 0")
	case domain.Income:
		sb.WriteString(" AND transfer_account_id IS NULL AND amount >= 0")
	}

	if filter.CursorDate != nil && filter.CursorCreatedAt != nil {
		args = append(args, *filter.CursorDate, *filter.CursorCreatedAt)
		sb.WriteString(fmt.Sprintf(" AND (transaction_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	sb.WriteString(" ORDER BY transaction_date DESC, created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))

	if filter.Offset > 0 && filter.CursorDate == nil {
		args = append(args, filter.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(";")

	txns, err := r.queryTransactions(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) findByAmountSign(ctx context.Context, accountIDs []string, from, to *time.Time, amountClause string) ([]domain.Transaction, error) {
	if len(accountIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = ANY($1) AND transfer_account_id IS NULL AND ` + amountClause)
	args := []any{accountIDs}

	if from != nil {
		args = append(args, *from)
		sb.WriteString(" AND transaction_date >= $" + strconv.Itoa(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		sb.WriteString(" AND transaction_date <= $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(" ORDER BY transaction_date ASC;")

	return r.queryTransactions(ctx, sb.String(), args...)
}

// FindExpenses retrieves non-transfer transactions with amount < 0.
func (r *PgxTransactionRepository) FindExpenses(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error) {
	txns, err := r.findByAmountSign(ctx, accountIDs, from, to, "amount < 0")
	if err != nil {
		return nil, fmt.Errorf("failed to find expenses: %w", err)
	}
	return txns, nil
}

// FindIncome retrieves non-transfer transactions with amount > 0.
func (r *PgxTransactionRepository) FindIncome(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.Transaction, error) {
	txns, err := r.findByAmountSign(ctx, accountIDs, from, to, "amount > 0")
	if err != nil {
		return nil, fmt.Errorf("failed to find income: %w", err)
	}
	return txns, nil
}

// UpdateTransaction persists mutable transaction fields and applies
// balanceDelta to the owning account within a single DB transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	m := toModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE transactions
		SET category_id = $2, amount = $3, description = $4, transaction_date = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.CategoryID,
		m.Amount,
		m.Description,
		m.TransactionDate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}

	changes := map[string]decimal.Decimal{txn.AccountID: balanceDelta}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction and reverses its balance effect on
// the owning account within a single DB transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, deletedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `DELETE FROM transactions WHERE transaction_id = $1;`
	tag, err := tx.Exec(ctx, query, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}

	changes := map[string]decimal.Decimal{txn.AccountID: txn.Amount.Neg()}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, deletedBy, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
