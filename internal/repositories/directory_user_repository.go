package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outreach-backend/internal/models"
)

// DirectoryUserRepository backs the legacy API's users table.
type DirectoryUserRepository struct {
	DB *pgxpool.Pool
}

func NewDirectoryUserRepository(db *pgxpool.Pool) *DirectoryUserRepository {
	return &DirectoryUserRepository{DB: db}
}

func scanDirectoryUser(row pgx.Row) (*models.DirectoryUser, error) {
	u := &models.DirectoryUser{}
	err := row.Scan(&u.ID, &u.PhoneNumber, &u.Name, &u.Team, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByPhone looks up a directory user by phone number (legacy login).
func (r *DirectoryUserRepository) GetByPhone(ctx context.Context, phone string) (*models.DirectoryUser, error) {
	query := `
		SELECT id, phone_number, name, COALESCE(team, ''), COALESCE(role, ''), created_at
		FROM users WHERE phone_number = $1
	`
	return scanDirectoryUser(r.DB.QueryRow(ctx, query, phone))
}

// GetByID returns a single directory user.
func (r *DirectoryUserRepository) GetByID(ctx context.Context, id int) (*models.DirectoryUser, error) {
	query := `
		SELECT id, phone_number, name, COALESCE(team, ''), COALESCE(role, ''), created_at
		FROM users WHERE id = $1
	`
	return scanDirectoryUser(r.DB.QueryRow(ctx, query, id))
}

// List returns all directory users ordered by name.
func (r *DirectoryUserRepository) List(ctx context.Context) ([]*models.DirectoryUser, error) {
	query := `
		SELECT id, phone_number, name, COALESCE(team, ''), COALESCE(role, ''), created_at
		FROM users ORDER BY name ASC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.DirectoryUser
	for rows.Next() {
		u, err := scanDirectoryUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create adds a directory user. The caller must have checked the phone is
// not already registered.
func (r *DirectoryUserRepository) Create(ctx context.Context, u *models.DirectoryUser) error {
	query := `
		INSERT INTO users (phone_number, name, team, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query, u.PhoneNumber, u.Name, u.Team, u.Role).
		Scan(&u.ID, &u.CreatedAt)
}

// Delete removes a directory user.
func (r *DirectoryUserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
