package repository

import (
	"database/sql"
	"fmt"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, login, password_hash, first_name, last_name, COALESCE(phone, ''), role, created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User

	err := row.Scan(
		&u.ID,
		&u.Login,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Role,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user: %w", err)
	}

	return u, nil
}

// GetUserOnID retrieves a user by ID.
func (r *UserRepository) GetUserOnID(userID string) (model.User, error) {
	//#nosec G202 -- Safe: userColumns is a package constant
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM user WHERE id = ?", userID))
}

// GetUserOnLogin retrieves a user by login.
func (r *UserRepository) GetUserOnLogin(login string) (model.User, error) {
	//#nosec G202 -- Safe: userColumns is a package constant
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM user WHERE login = ?", login))
}

// GetUsers retrieves all users ordered by last name, with an optional
// role filter. Password hashes are included; callers strip them before
// serialization.
func (r *UserRepository) GetUsers(role model.Role) ([]model.User, error) {
	query := "SELECT " + userColumns + " FROM user"
	var args []any

	if role != "" {
		query += " WHERE role = ?"
		args = append(args, role)
	}

	query += " ORDER BY last_name, first_name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	users := []model.User{}

	for rows.Next() {
		var u model.User

		err := rows.Scan(
			&u.ID,
			&u.Login,
			&u.PasswordHash,
			&u.FirstName,
			&u.LastName,
			&u.Phone,
			&u.Role,
			&u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user table results: %w", err)
		}

		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return users, nil
}

// CreateUser inserts a new user row.
func (r *UserRepository) CreateUser(u model.User) error {
	_, err := r.db.Exec(`
		INSERT INTO user (id, login, password_hash, first_name, last_name, phone, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Login, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}
