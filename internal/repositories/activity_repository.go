package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outreach-backend/internal/models"
)

type ActivityRepository struct {
	DB *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

const activityColumns = `
	a.id, a.user_id, a.team, a.role, a.assigned_by, a.client_name,
	COALESCE(a.phone, ''), a.type, COALESCE(a.customer_activity, ''), a.status,
	COALESCE(a.notes, ''), COALESCE(a.location, ''), a.gallery,
	COALESCE(a.image_url, ''), a.follow_up_date, a.follow_up_time,
	a.created_at, a.updated_at,
	COALESCE(p.name, ''), COALESCE(p.team, ''), COALESCE(p.role, '')
`

func scanActivity(row pgx.Row) (*models.Activity, error) {
	a := &models.Activity{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.Team, &a.Role, &a.AssignedBy, &a.ClientName,
		&a.Phone, &a.Type, &a.CustomerActivity, &a.Status,
		&a.Notes, &a.Location, &a.Gallery,
		&a.ImageURL, &a.FollowUpDate, &a.FollowUpTime,
		&a.CreatedAt, &a.UpdatedAt,
		&a.OwnerName, &a.OwnerTeam, &a.OwnerRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.Gallery == nil {
		a.Gallery = []string{}
	}
	return a, nil
}

const insertActivitySQL = `
	INSERT INTO staff_activity
		(user_id, team, role, assigned_by, client_name, phone, type,
		 customer_activity, status, notes, location, gallery, image_url,
		 follow_up_date, follow_up_time, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

// Create inserts a new activity record.
func (r *ActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	return r.DB.QueryRow(ctx, insertActivitySQL,
		a.UserID, a.Team, a.Role, a.AssignedBy, a.ClientName, a.Phone, a.Type,
		a.CustomerActivity, a.Status, a.Notes, a.Location, a.Gallery, a.ImageURL,
		a.FollowUpDate, a.FollowUpTime,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// CreateClosingPrior inserts a follow-up activity and closes the prior record
// it references in a single transaction. The prior record must belong to the
// same owner and still be open; otherwise the whole operation fails and
// nothing is written.
func (r *ActivityRepository) CreateClosingPrior(ctx context.Context, a *models.Activity, priorID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertActivitySQL,
		a.UserID, a.Team, a.Role, a.AssignedBy, a.ClientName, a.Phone, a.Type,
		a.CustomerActivity, a.Status, a.Notes, a.Location, a.Gallery, a.ImageURL,
		a.FollowUpDate, a.FollowUpTime,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE staff_activity
		SET status = $1, follow_up_date = NULL, follow_up_time = NULL, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND status NOT IN ($4, $5, $6)
	`, models.StatusCompleted, priorID, a.UserID,
		models.StatusConverted, models.StatusClosed, models.StatusCompleted)
	if err != nil {
		return fmt.Errorf("failed to close prior record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prior record %d: %w", priorID, ErrNotFound)
	}

	return tx.Commit(ctx)
}

// GetByID returns a single activity with the owner's live profile joined.
func (r *ActivityRepository) GetByID(ctx context.Context, id int) (*models.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM staff_activity a
		LEFT JOIN profiles p ON a.user_id = p.id
		WHERE a.id = $1
	`
	return scanActivity(r.DB.QueryRow(ctx, query, id))
}

// List returns all activities newest first, owner profile joined. Visibility
// scoping happens in the service layer over this in-memory set.
func (r *ActivityRepository) List(ctx context.Context) ([]*models.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM staff_activity a
		LEFT JOIN profiles p ON a.user_id = p.id
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ListOpenByOwner returns the owner's records that still expect a follow-up,
// newest first. Used by the follow-up picker.
func (r *ActivityRepository) ListOpenByOwner(ctx context.Context, userID int) ([]*models.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM staff_activity a
		LEFT JOIN profiles p ON a.user_id = p.id
		WHERE a.user_id = $1 AND a.status NOT IN ($2, $3, $4)
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, userID,
		models.StatusConverted, models.StatusClosed, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ActiveUserIDs returns the distinct owner ids of activities created on the
// given calendar day (database-local date).
func (r *ActivityRepository) ActiveUserIDs(ctx context.Context, date string) (map[int]bool, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DISTINCT user_id FROM staff_activity WHERE DATE(created_at) = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// Update applies an owner edit. Text fields change only when non-nil; the
// follow-up date and time are written wholesale (nil clears them, matching
// the edit form, which always submits both). AddPhotos append to the gallery.
func (r *ActivityRepository) Update(ctx context.Context, id int, req *models.UpdateActivityRequest) error {
	query := `
		UPDATE staff_activity
		SET client_name       = COALESCE($1, client_name),
		    phone             = COALESCE($2, phone),
		    customer_activity = COALESCE($3, customer_activity),
		    status            = COALESCE($4, status),
		    notes             = COALESCE($5, notes),
		    location          = COALESCE($6, location),
		    follow_up_date    = $7,
		    follow_up_time    = $8,
		    gallery           = gallery || $9,
		    image_url         = COALESCE(image_url, ($9::text[])[1]),
		    updated_at        = NOW()
		WHERE id = $10
	`
	photos := req.AddPhotos
	if photos == nil {
		photos = []string{}
	}
	tag, err := r.DB.Exec(ctx, query,
		req.ClientName, req.Phone, req.CustomerActivity, req.Status,
		req.Notes, req.Location, req.FollowUpDate, req.FollowUpTime,
		photos, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an activity record.
func (r *ActivityRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM staff_activity WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
