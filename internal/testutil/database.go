package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table
		CREATE TABLE IF NOT EXISTS user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			login VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(30),
			role VARCHAR(10) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Property table
		CREATE TABLE IF NOT EXISTS property (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			address VARCHAR(500) NOT NULL,
			area_sqm FLOAT NOT NULL,
			rent_rate_usd FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Ownership junction table
		CREATE TABLE IF NOT EXISTS ownership (
			property_id VARCHAR(36) NOT NULL,
			user_id VARCHAR(36) NOT NULL,
			share_pct FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (property_id, user_id),
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE,
			FOREIGN KEY(user_id) REFERENCES user(id) ON DELETE CASCADE
		);

		-- Expense type table
		CREATE TABLE IF NOT EXISTS expense_type (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			is_system BOOLEAN NOT NULL DEFAULT FALSE
		);

		-- Expense table
		CREATE TABLE IF NOT EXISTS expense (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			type_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			amount_usd FLOAT NOT NULL,
			comment TEXT,
			created_by VARCHAR(36) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE,
			FOREIGN KEY(type_id) REFERENCES expense_type(id),
			FOREIGN KEY(created_by) REFERENCES user(id)
		);

		-- Income table
		CREATE TABLE IF NOT EXISTS income (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			amount_usd FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE,
			CONSTRAINT unique_income_month UNIQUE (property_id, year, month)
		);
	`

	_, err := db.Exec(schema)
	return err
}
