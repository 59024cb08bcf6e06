package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outreach-backend/internal/models"
)

// LegacyActivityRepository backs the legacy API's activities table.
type LegacyActivityRepository struct {
	DB *pgxpool.Pool
}

func NewLegacyActivityRepository(db *pgxpool.Pool) *LegacyActivityRepository {
	return &LegacyActivityRepository{DB: db}
}

const legacyActivityColumns = `
	a.id, a.user_id, COALESCE(a.team, ''), a.contact, COALESCE(a.type, ''),
	COALESCE(a.notes, ''), COALESCE(a.location, ''), a.latitude, a.longitude,
	COALESCE(a.image_url, ''), a.follow_up_date, a.is_completed,
	a.created_at, a.updated_at
`

func scanLegacyActivity(row pgx.Row, withUser bool) (*models.LegacyActivity, error) {
	a := &models.LegacyActivity{}
	dest := []interface{}{
		&a.ID, &a.UserID, &a.Team, &a.Contact, &a.Type,
		&a.Notes, &a.Location, &a.Latitude, &a.Longitude,
		&a.ImageURL, &a.FollowUpDate, &a.IsCompleted,
		&a.CreatedAt, &a.UpdatedAt,
	}
	if withUser {
		dest = append(dest, &a.UserName, &a.UserPhone)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListByUser returns the caller's legacy activities, newest first.
func (r *LegacyActivityRepository) ListByUser(ctx context.Context, userID int) ([]*models.LegacyActivity, error) {
	query := `
		SELECT ` + legacyActivityColumns + `
		FROM activities a
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.LegacyActivity
	for rows.Next() {
		a, err := scanLegacyActivity(rows, false)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ListAll returns every legacy activity with owner name and phone joined
// (admin listing).
func (r *LegacyActivityRepository) ListAll(ctx context.Context) ([]*models.LegacyActivity, error) {
	query := `
		SELECT ` + legacyActivityColumns + `,
		       COALESCE(u.name, ''), COALESCE(u.phone_number, '')
		FROM activities a
		LEFT JOIN users u ON a.user_id = u.id
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.LegacyActivity
	for rows.Next() {
		a, err := scanLegacyActivity(rows, true)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// Create inserts a legacy activity for the given user.
func (r *LegacyActivityRepository) Create(ctx context.Context, a *models.LegacyActivity) error {
	query := `
		INSERT INTO activities
			(user_id, team, contact, type, notes, location, latitude, longitude,
			 image_url, follow_up_date, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, false, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		a.UserID, a.Team, a.Contact, a.Type, a.Notes, a.Location,
		a.Latitude, a.Longitude, a.ImageURL, a.FollowUpDate,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// SetCompleted updates the completion flag, scoped to the owning user.
func (r *LegacyActivityRepository) SetCompleted(ctx context.Context, id, userID int, completed bool) (*models.LegacyActivity, error) {
	tag, err := r.DB.Exec(ctx, `
		UPDATE activities SET is_completed = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, completed, id, userID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	query := `SELECT ` + legacyActivityColumns + ` FROM activities a WHERE a.id = $1`
	return scanLegacyActivity(r.DB.QueryRow(ctx, query, id), false)
}

// Delete removes a legacy activity, scoped to the owning user.
func (r *LegacyActivityRepository) Delete(ctx context.Context, id, userID int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
