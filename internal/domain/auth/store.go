package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"leavedesk/internal/platform/querier"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	EmployeeID   string
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	var employeeID *string
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, employee_id
    FROM users
    WHERE email = $1
  `, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	if employeeID != nil {
		u.EmployeeID = *employeeID
	}
	return u, nil
}

func (s *Store) CreateEmployeeUser(ctx context.Context, email, passwordHash, employeeID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role, employee_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, email, passwordHash, RoleEmployee, employeeID).Scan(&id)
	return id, err
}
