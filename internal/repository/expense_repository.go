package repository

import (
	"database/sql"
	"fmt"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// ExpenseRepository provides data access methods for the expense table.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// GetExpenses retrieves expense rows matching the filter.
// PropertyIDs is required scoping input: an empty slice yields an empty
// result rather than all rows, so an empty visibility scope can never
// widen into full access. Date bounds are inclusive.
func (r *ExpenseRepository) GetExpenses(filter model.ExpenseFilter) ([]model.Expense, error) {
	if len(filter.PropertyIDs) == 0 {
		return []model.Expense{}, nil
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT e.id, e.property_id, e.type_id, e.date, e.amount_usd,
		       COALESCE(e.comment, ''), e.created_by, p.name, t.name, e.created_at
		FROM expense e
		JOIN property p ON p.id = e.property_id
		JOIN expense_type t ON t.id = e.type_id
		WHERE e.property_id IN (` + placeholders(len(filter.PropertyIDs)) + `)
	`

	args := make([]any, 0, len(filter.PropertyIDs)+len(filter.TypeIDs)+2)
	for _, id := range filter.PropertyIDs {
		args = append(args, id)
	}

	if len(filter.TypeIDs) > 0 {
		query += " AND e.type_id IN (" + placeholders(len(filter.TypeIDs)) + ")"
		for _, id := range filter.TypeIDs {
			args = append(args, id)
		}
	}

	if !filter.DateFrom.IsZero() {
		query += " AND e.date >= ?"
		args = append(args, filter.DateFrom)
	}

	if !filter.DateTo.IsZero() {
		query += " AND e.date <= ?"
		args = append(args, filter.DateTo)
	}

	query += " ORDER BY e.date DESC, e.created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}

	for rows.Next() {
		var e model.Expense

		err := rows.Scan(
			&e.ID,
			&e.PropertyID,
			&e.TypeID,
			&e.Date,
			&e.AmountUSD,
			&e.Comment,
			&e.CreatedBy,
			&e.PropertyName,
			&e.TypeName,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense table results: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}

	return expenses, nil
}

// GetExpenseOnID retrieves a single expense by ID.
func (r *ExpenseRepository) GetExpenseOnID(expenseID string) (model.Expense, error) {
	query := `
		SELECT id, property_id, type_id, date, amount_usd, COALESCE(comment, ''), created_by, created_at
		FROM expense
		WHERE id = ?
	`
	var e model.Expense

	err := r.db.QueryRow(query, expenseID).Scan(
		&e.ID,
		&e.PropertyID,
		&e.TypeID,
		&e.Date,
		&e.AmountUSD,
		&e.Comment,
		&e.CreatedBy,
		&e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Expense{}, apperrors.ErrExpenseNotFound
	}
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to query expense: %w", err)
	}

	return e, nil
}

// CreateExpense inserts a new expense row.
func (r *ExpenseRepository) CreateExpense(e model.Expense) error {
	_, err := r.db.Exec(`
		INSERT INTO expense (id, property_id, type_id, date, amount_usd, comment, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.PropertyID, e.TypeID, e.Date, e.AmountUSD, e.Comment, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// UpdateExpense updates an existing expense row.
func (r *ExpenseRepository) UpdateExpense(e model.Expense) error {
	result, err := r.db.Exec(`
		UPDATE expense
		SET property_id = ?, type_id = ?, date = ?, amount_usd = ?, comment = ?
		WHERE id = ?
	`, e.PropertyID, e.TypeID, e.Date, e.AmountUSD, e.Comment, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}

	return nil
}

// DeleteExpense removes an expense row.
func (r *ExpenseRepository) DeleteExpense(expenseID string) error {
	result, err := r.db.Exec("DELETE FROM expense WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}

	return nil
}
