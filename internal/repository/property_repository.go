package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// PropertyRepository provides data access methods for the property and
// ownership tables. It handles retrieving properties together with their
// owner sets and the replace-all ownership write.
type PropertyRepository struct {
	db *sql.DB
}

// NewPropertyRepository creates a new PropertyRepository with the provided database connection.
func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// GetVisibleProperties retrieves properties matching the scope filter,
// each with its complete ownership rows embedded.
//
// Filter semantics:
//   - CallerID non-empty: only properties in which that user holds an
//     ownership row (the restricted-role base set).
//   - Owners non-empty: only properties owned (any share) by at least one
//     of the listed users.
//   - Properties non-empty: only the listed property IDs.
//
// All clauses intersect. Even when a filter matches a property via a
// single owner's row, the returned Ownerships slice always contains the
// property's full owner set. Returns an empty slice when nothing matches.
func (r *PropertyRepository) GetVisibleProperties(filter model.ScopeFilter) ([]model.Property, map[string][]model.Ownership, error) {
	query := `
          SELECT id, name, address, area_sqm, rent_rate_usd, created_at, updated_at
          FROM property
          WHERE 1=1
      `
	var args []any

	if filter.CallerID != "" {
		query += " AND id IN (SELECT property_id FROM ownership WHERE user_id = ?)"
		args = append(args, filter.CallerID)
	}

	if len(filter.Owners) > 0 {
		query += " AND id IN (SELECT property_id FROM ownership WHERE user_id IN (" +
			placeholders(len(filter.Owners)) + "))"
		for _, owner := range filter.Owners {
			args = append(args, owner)
		}
	}

	if len(filter.Properties) > 0 {
		query += " AND id IN (" + placeholders(len(filter.Properties)) + ")"
		for _, id := range filter.Properties {
			args = append(args, id)
		}
	}

	query += " ORDER BY name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query property table: %w", err)
	}
	defer rows.Close()

	properties := []model.Property{}

	for rows.Next() {
		var p model.Property

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Address,
			&p.AreaSqm,
			&p.RentRateUSD,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan property table results: %w", err)
		}

		properties = append(properties, p)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating property table: %w", err)
	}

	ownerships, err := r.getOwnershipsForProperties(properties)
	if err != nil {
		return nil, nil, err
	}

	return properties, ownerships, nil
}

// getOwnershipsForProperties loads the full ownership rows for the given
// properties, grouped by property ID. Returns nil when the input is empty.
func (r *PropertyRepository) getOwnershipsForProperties(properties []model.Property) (map[string][]model.Ownership, error) {
	if len(properties) == 0 {
		return nil, nil
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT property_id, user_id, share_pct
		FROM ownership
		WHERE property_id IN (` + placeholders(len(properties)) + `)
	`

	args := make([]any, len(properties))
	for i, p := range properties {
		args[i] = p.ID
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ownership table: %w", err)
	}
	defer rows.Close()

	ownerships := make(map[string][]model.Ownership)

	for rows.Next() {
		var o model.Ownership

		if err := rows.Scan(&o.PropertyID, &o.UserID, &o.SharePct); err != nil {
			return nil, fmt.Errorf("failed to scan ownership table results: %w", err)
		}

		ownerships[o.PropertyID] = append(ownerships[o.PropertyID], o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ownership table: %w", err)
	}

	return ownerships, nil
}

// GetPropertyOnID retrieves a single property by ID.
func (r *PropertyRepository) GetPropertyOnID(propertyID string) (model.Property, error) {
	query := `
          SELECT id, name, address, area_sqm, rent_rate_usd, created_at, updated_at
          FROM property
          WHERE id = ?
      `
	var p model.Property

	err := r.db.QueryRow(query, propertyID).Scan(
		&p.ID,
		&p.Name,
		&p.Address,
		&p.AreaSqm,
		&p.RentRateUSD,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Property{}, apperrors.ErrPropertyNotFound
	}
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to query property: %w", err)
	}

	return p, nil
}

// GetPropertyOwners retrieves the ownership rows for a property joined
// with the owning users' names, ordered by descending share.
func (r *PropertyRepository) GetPropertyOwners(propertyID string) ([]model.PropertyOwner, error) {
	query := `
		SELECT o.user_id, u.first_name, u.last_name, o.share_pct
		FROM ownership o
		JOIN user u ON u.id = o.user_id
		WHERE o.property_id = ?
		ORDER BY o.share_pct DESC, u.last_name
	`

	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ownership or user table: %w", err)
	}
	defer rows.Close()

	owners := []model.PropertyOwner{}

	for rows.Next() {
		var o model.PropertyOwner

		if err := rows.Scan(&o.UserID, &o.FirstName, &o.LastName, &o.SharePct); err != nil {
			return nil, fmt.Errorf("failed to scan ownership or user table results: %w", err)
		}

		owners = append(owners, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ownership or user table: %w", err)
	}

	return owners, nil
}

// CreateProperty inserts a property and its owner set in one transaction.
func (r *PropertyRepository) CreateProperty(p model.Property, owners []model.OwnerShare) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(`
		INSERT INTO property (id, name, address, area_sqm, rent_rate_usd, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Address, p.AreaSqm, p.RentRateUSD, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}

	if err := insertOwnerships(tx, p.ID, owners); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit property creation: %w", err)
	}

	return nil
}

// UpdateProperty updates a property's fields and, when owners is non-nil,
// replaces its owner set. The delete and insert run inside a single
// transaction so readers see either the old or the new owner set, never
// a half-written one.
func (r *PropertyRepository) UpdateProperty(p model.Property, owners []model.OwnerShare) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(`
		UPDATE property
		SET name = ?, address = ?, area_sqm = ?, rent_rate_usd = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Address, p.AreaSqm, p.RentRateUSD, time.Now().UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPropertyNotFound
	}

	if owners != nil {
		if _, err := tx.Exec("DELETE FROM ownership WHERE property_id = ?", p.ID); err != nil {
			return fmt.Errorf("failed to delete prior ownerships: %w", err)
		}

		if err := insertOwnerships(tx, p.ID, owners); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit property update: %w", err)
	}

	return nil
}

// DeleteProperty removes a property; ownership, income and expense rows
// cascade at the schema level.
func (r *PropertyRepository) DeleteProperty(propertyID string) error {
	result, err := r.db.Exec("DELETE FROM property WHERE id = ?", propertyID)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPropertyNotFound
	}

	return nil
}

// GetShareSums returns the ownership share sum per property, for the
// integrity audit.
func (r *PropertyRepository) GetShareSums() (map[string]float64, error) {
	rows, err := r.db.Query(`
		SELECT property_id, SUM(share_pct)
		FROM ownership
		GROUP BY property_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ownership share sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]float64)

	for rows.Next() {
		var propertyID string
		var sum float64

		if err := rows.Scan(&propertyID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan ownership share sums: %w", err)
		}

		sums[propertyID] = sum
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ownership share sums: %w", err)
	}

	return sums, nil
}

func insertOwnerships(tx *sql.Tx, propertyID string, owners []model.OwnerShare) error {
	for _, o := range owners {
		_, err := tx.Exec(`
			INSERT INTO ownership (property_id, user_id, share_pct)
			VALUES (?, ?, ?)
		`, propertyID, o.UserID, o.SharePct)
		if err != nil {
			return fmt.Errorf("failed to insert ownership for user %s: %w", o.UserID, err)
		}
	}
	return nil
}

// placeholders builds a "?, ?, ?" list of the given length for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
