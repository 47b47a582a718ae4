package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepository
var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

func toModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		UserID:       d.UserID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		TotalLimit:   d.TotalLimit,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		UserID:       m.UserID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		TotalLimit:   m.TotalLimit,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainBudgetItem(m models.BudgetItem) domain.BudgetItem {
	return domain.BudgetItem{
		BudgetItemID: m.BudgetItemID,
		BudgetID:     m.BudgetID,
		CategoryID:   m.CategoryID,
		Amount:       m.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const budgetColumns = `budget_id, user_id, name, start_date, end_date, total_limit, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.TotalLimit,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const insertBudgetItemQuery = `
	INSERT INTO budget_items (budget_item_id, budget_id, category_id, amount, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func insertBudgetItems(ctx context.Context, tx pgx.Tx, items []domain.BudgetItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, insertBudgetItemQuery,
			item.BudgetItemID,
			item.BudgetID,
			item.CategoryID,
			item.Amount,
			item.CreatedAt,
			item.CreatedBy,
			item.LastUpdatedAt,
			item.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save budget item %s: %w", item.BudgetItemID, err)
		}
	}
	return nil
}

// SaveBudget inserts a budget together with its initial items in one transaction.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget, items []domain.BudgetItem) error {
	m := toModelBudget(budget)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.BudgetID,
		m.UserID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.TotalLimit,
		m.CurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, m.BudgetID)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}

	if err := insertBudgetItems(ctx, tx, items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindBudgetByIDForUser retrieves a budget scoped to its owner.
func (r *PgxBudgetRepository) FindBudgetByIDForUser(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1 AND user_id = $2;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	budget := toDomainBudget(m)
	return &budget, nil
}

// FindBudgetItems retrieves the items of a budget.
func (r *PgxBudgetRepository) FindBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error) {
	query := `
		SELECT budget_item_id, budget_id, category_id, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM budget_items WHERE budget_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget items for %s: %w", budgetID, err)
	}
	defer rows.Close()

	items := []domain.BudgetItem{}
	for rows.Next() {
		var m models.BudgetItem
		err := rows.Scan(
			&m.BudgetItemID,
			&m.BudgetID,
			&m.CategoryID,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget item row: %w", err)
		}
		items = append(items, toDomainBudgetItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget item rows: %w", err)
	}
	return items, nil
}

// ListBudgetsByUser retrieves all budgets owned by a user.
func (r *PgxBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY start_date DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets for user %s: %w", userID, err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, toDomainBudget(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return budgets, nil
}

// UpdateBudget persists mutable budget fields.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := toModelBudget(budget)

	query := `
		UPDATE budgets
		SET name = $2, start_date = $3, end_date = $4, total_limit = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.TotalLimit,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, m.BudgetID)
	}
	return nil
}

// ReplaceBudgetItems swaps the full item set of a budget in one transaction.
func (r *PgxBudgetRepository) ReplaceBudgetItems(ctx context.Context, budgetID string, items []domain.BudgetItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE budget_id = $1;`, budgetID); err != nil {
		return fmt.Errorf("failed to clear budget items for %s: %w", budgetID, err)
	}
	if err := insertBudgetItems(ctx, tx, items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteBudget removes a budget and its items.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE budget_id = $1;`, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget items for %s: %w", budgetID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}

	return r.Commit(ctx, tx)
}
