package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// IncomeRepository provides data access methods for the income table.
// Income rows are unique per (property, year, month); writes go through
// the upsert-or-delete semantics of UpsertIncome.
type IncomeRepository struct {
	db *sql.DB
}

// NewIncomeRepository creates a new IncomeRepository with the provided database connection.
func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// GetIncomeForProperties retrieves income rows for the given properties
// restricted to a year and, when non-empty, a set of months.
// Returns an empty slice when propertyIDs is empty or nothing matches.
func (r *IncomeRepository) GetIncomeForProperties(propertyIDs []string, year int, months []int) ([]model.IncomeRecord, error) {
	if len(propertyIDs) == 0 {
		return []model.IncomeRecord{}, nil
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, property_id, year, month, amount_usd, created_at, updated_at
		FROM income
		WHERE year = ?
		AND property_id IN (` + placeholders(len(propertyIDs)) + `)
	`

	args := []any{year}
	for _, id := range propertyIDs {
		args = append(args, id)
	}

	if len(months) > 0 {
		query += " AND month IN (" + placeholders(len(months)) + ")"
		for _, m := range months {
			args = append(args, m)
		}
	}

	query += " ORDER BY month"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income table: %w", err)
	}
	defer rows.Close()

	records := []model.IncomeRecord{}

	for rows.Next() {
		var rec model.IncomeRecord

		err := rows.Scan(
			&rec.ID,
			&rec.PropertyID,
			&rec.Year,
			&rec.Month,
			&rec.AmountUSD,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income table results: %w", err)
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income table: %w", err)
	}

	return records, nil
}

// GetIncomeWithPropertyNames retrieves income rows for a year joined with
// their property names, for the income listing page.
func (r *IncomeRepository) GetIncomeWithPropertyNames(propertyIDs []string, year int) ([]model.IncomeRecord, error) {
	if len(propertyIDs) == 0 {
		return []model.IncomeRecord{}, nil
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT i.id, i.property_id, i.year, i.month, i.amount_usd, p.name, i.created_at, i.updated_at
		FROM income i
		JOIN property p ON p.id = i.property_id
		WHERE i.year = ?
		AND i.property_id IN (` + placeholders(len(propertyIDs)) + `)
		ORDER BY i.month, p.name
	`

	args := []any{year}
	for _, id := range propertyIDs {
		args = append(args, id)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income or property table: %w", err)
	}
	defer rows.Close()

	records := []model.IncomeRecord{}

	for rows.Next() {
		var rec model.IncomeRecord

		err := rows.Scan(
			&rec.ID,
			&rec.PropertyID,
			&rec.Year,
			&rec.Month,
			&rec.AmountUSD,
			&rec.PropertyName,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income or property table results: %w", err)
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income or property table: %w", err)
	}

	return records, nil
}

// UpsertIncome applies one income update. A zero amount deletes the row
// for the (property, year, month); a positive amount creates or updates
// it. Reports whether a row exists after the call.
func (r *IncomeRepository) UpsertIncome(update model.IncomeUpdate) (bool, error) {
	if update.AmountUSD == 0 {
		_, err := r.db.Exec(`
			DELETE FROM income
			WHERE property_id = ? AND year = ? AND month = ?
		`, update.PropertyID, update.Year, update.Month)
		if err != nil {
			return false, fmt.Errorf("failed to delete income record: %w", err)
		}
		return false, nil
	}

	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO income (id, property_id, year, month, amount_usd, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (property_id, year, month)
		DO UPDATE SET amount_usd = excluded.amount_usd, updated_at = excluded.updated_at
	`, uuid.New().String(), update.PropertyID, update.Year, update.Month, update.AmountUSD, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to upsert income record: %w", err)
	}

	return true, nil
}
