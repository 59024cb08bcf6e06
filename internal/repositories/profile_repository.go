package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outreach-backend/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

type ProfileRepository struct {
	DB *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

const profileColumns = `
	id, name, phone, role, team, COALESCE(password_hash, ''),
	last_login, created_at, updated_at
`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Phone, &p.Role, &p.Team, &p.PasswordHash,
		&p.LastLogin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new staff profile.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (name, phone, role, team, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		p.Name, p.Phone, p.Role, p.Team, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a single profile.
func (r *ProfileRepository) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.DB.QueryRow(ctx, query, id))
}

// GetByPhone returns the profile registered under a phone number.
func (r *ProfileRepository) GetByPhone(ctx context.Context, phone string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE phone = $1`
	return scanProfile(r.DB.QueryRow(ctx, query, phone))
}

// List returns all profiles, optionally narrowed to one team, ordered by name.
func (r *ProfileRepository) List(ctx context.Context, team string) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	args := []interface{}{}
	if team != "" {
		query += ` WHERE team = $1`
		args = append(args, team)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update modifies name, phone, role and team.
func (r *ProfileRepository) Update(ctx context.Context, id int, req *models.UpdateProfileRequest) error {
	query := `
		UPDATE profiles
		SET name = $1, phone = $2, role = $3, team = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.DB.Exec(ctx, query, req.Name, req.Phone, req.Role, req.Team, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *ProfileRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE profiles SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin records a successful login.
func (r *ProfileRepository) TouchLastLogin(ctx context.Context, id int, at time.Time) error {
	_, err := r.DB.Exec(ctx, `UPDATE profiles SET last_login = $1 WHERE id = $2`, at, id)
	return err
}

// Delete removes a profile. Activities keep their snapshot columns, so
// historical records survive the owner's deletion.
func (r *ProfileRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
