package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// PropertyBuilder provides a fluent interface for creating test properties.
//
// Example usage:
//
//	// Simple creation with defaults
//	property := testutil.NewProperty().Build(t, db)
//
//	// Customized property with owners
//	property := testutil.NewProperty().
//	    WithName("Downtown Flat").
//	    WithRentRate(1000).
//	    WithOwner(ownerID, 40).
//	    WithOwner(otherID, 60).
//	    Build(t, db)
type PropertyBuilder struct {
	ID          string
	Name        string
	Address     string
	AreaSqm     float64
	RentRateUSD float64
	Owners      []model.OwnerShare
}

var propertySeq int

// NewProperty creates a PropertyBuilder with sensible defaults.
func NewProperty() *PropertyBuilder {
	propertySeq++
	return &PropertyBuilder{
		ID:          MakeID(),
		Name:        fmt.Sprintf("Test Property %d", propertySeq),
		Address:     "1 Test Street",
		AreaSqm:     50,
		RentRateUSD: 1000,
	}
}

// WithID sets a custom ID.
func (b *PropertyBuilder) WithID(id string) *PropertyBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PropertyBuilder) WithName(name string) *PropertyBuilder {
	b.Name = name
	return b
}

// WithArea sets a custom area in square meters.
func (b *PropertyBuilder) WithArea(area float64) *PropertyBuilder {
	b.AreaSqm = area
	return b
}

// WithRentRate sets a custom monthly rent rate.
func (b *PropertyBuilder) WithRentRate(rate float64) *PropertyBuilder {
	b.RentRateUSD = rate
	return b
}

// WithOwner adds an ownership row for the given user and share.
func (b *PropertyBuilder) WithOwner(userID string, sharePct float64) *PropertyBuilder {
	b.Owners = append(b.Owners, model.OwnerShare{UserID: userID, SharePct: sharePct})
	return b
}

// Build inserts the property (and its ownership rows, if any) and
// returns the resulting model.
func (b *PropertyBuilder) Build(t *testing.T, db *sql.DB) model.Property {
	t.Helper()

	now := time.Now().UTC()

	_, err := db.Exec(`
		INSERT INTO property (id, name, address, area_sqm, rent_rate_usd, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.Address, b.AreaSqm, b.RentRateUSD, now, now)
	if err != nil {
		t.Fatalf("Failed to insert test property: %v", err)
	}

	for _, o := range b.Owners {
		_, err := db.Exec(`
			INSERT INTO ownership (property_id, user_id, share_pct)
			VALUES (?, ?, ?)
		`, b.ID, o.UserID, o.SharePct)
		if err != nil {
			t.Fatalf("Failed to insert test ownership: %v", err)
		}
	}

	return model.Property{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		AreaSqm:     b.AreaSqm,
		RentRateUSD: b.RentRateUSD,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

var userSeq int

// CreateUser inserts a user with the given role and returns it.
func CreateUser(t *testing.T, db *sql.DB, role model.Role) model.User {
	t.Helper()

	userSeq++
	user := model.User{
		ID:           MakeID(),
		Login:        fmt.Sprintf("user%d", userSeq),
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", userSeq),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := db.Exec(`
		INSERT INTO user (id, login, password_hash, first_name, last_name, phone, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Login, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.Role, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}

	return user
}

// Caller returns the Caller identity of a user, for invoking services directly.
func Caller(u model.User) model.Caller {
	return model.Caller{ID: u.ID, Login: u.Login, Role: u.Role}
}

// AddIncome inserts an income record for a property and month.
func AddIncome(t *testing.T, db *sql.DB, propertyID string, year, month int, amount float64) {
	t.Helper()

	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO income (id, property_id, year, month, amount_usd, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, MakeID(), propertyID, year, month, amount, now, now)
	if err != nil {
		t.Fatalf("Failed to insert test income: %v", err)
	}
}

// CreateExpenseType inserts an expense type and returns it.
func CreateExpenseType(t *testing.T, db *sql.DB, name string) model.ExpenseType {
	t.Helper()

	expenseType := model.ExpenseType{
		ID:   MakeID(),
		Name: name,
	}

	_, err := db.Exec(`
		INSERT INTO expense_type (id, name, description, is_system)
		VALUES (?, ?, '', FALSE)
	`, expenseType.ID, expenseType.Name)
	if err != nil {
		t.Fatalf("Failed to insert test expense type: %v", err)
	}

	return expenseType
}

// AddExpense inserts an expense row for a property on a date.
func AddExpense(t *testing.T, db *sql.DB, propertyID, typeID, createdBy string, date time.Time, amount float64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO expense (id, property_id, type_id, date, amount_usd, comment, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, '', ?, ?)
	`, MakeID(), propertyID, typeID, date, amount, createdBy, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to insert test expense: %v", err)
	}
}
