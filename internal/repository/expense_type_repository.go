package repository

import (
	"database/sql"
	"fmt"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// ExpenseTypeRepository provides data access methods for the expense_type table.
type ExpenseTypeRepository struct {
	db *sql.DB
}

// NewExpenseTypeRepository creates a new ExpenseTypeRepository with the provided database connection.
func NewExpenseTypeRepository(db *sql.DB) *ExpenseTypeRepository {
	return &ExpenseTypeRepository{db: db}
}

// GetExpenseTypes retrieves all expense types ordered by name.
func (r *ExpenseTypeRepository) GetExpenseTypes() ([]model.ExpenseType, error) {
	rows, err := r.db.Query(`
		SELECT id, name, COALESCE(description, ''), is_system
		FROM expense_type
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense_type table: %w", err)
	}
	defer rows.Close()

	types := []model.ExpenseType{}

	for rows.Next() {
		var t model.ExpenseType

		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.IsSystem); err != nil {
			return nil, fmt.Errorf("failed to scan expense_type table results: %w", err)
		}

		types = append(types, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense_type table: %w", err)
	}

	return types, nil
}

// GetExpenseTypeOnName retrieves an expense type by its unique name.
func (r *ExpenseTypeRepository) GetExpenseTypeOnName(name string) (model.ExpenseType, error) {
	var t model.ExpenseType

	err := r.db.QueryRow(`
		SELECT id, name, COALESCE(description, ''), is_system
		FROM expense_type
		WHERE name = ?
	`, name).Scan(&t.ID, &t.Name, &t.Description, &t.IsSystem)
	if err == sql.ErrNoRows {
		return model.ExpenseType{}, apperrors.ErrExpenseTypeNotFound
	}
	if err != nil {
		return model.ExpenseType{}, fmt.Errorf("failed to query expense_type: %w", err)
	}

	return t, nil
}

// CreateExpenseType inserts a new expense type.
func (r *ExpenseTypeRepository) CreateExpenseType(t model.ExpenseType) error {
	_, err := r.db.Exec(`
		INSERT INTO expense_type (id, name, description, is_system)
		VALUES (?, ?, ?, ?)
	`, t.ID, t.Name, t.Description, t.IsSystem)
	if err != nil {
		return fmt.Errorf("failed to insert expense_type: %w", err)
	}
	return nil
}
