package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outreach-backend/internal/models"
)

type DefaulterLogRepository struct {
	DB *pgxpool.Pool
}

func NewDefaulterLogRepository(db *pgxpool.Pool) *DefaulterLogRepository {
	return &DefaulterLogRepository{DB: db}
}

// ExistingUserIDs returns the user ids already logged as defaulters on a date.
func (r *DefaulterLogRepository) ExistingUserIDs(ctx context.Context, date string) (map[int]bool, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT user_id FROM defaulter_logs WHERE defaulter_date = $1`, date)
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

// InsertBatch writes new defaulter entries and returns the ones actually
// inserted. The unique index on (user_id, defaulter_date) backs up the
// in-memory de-duplication: a concurrent duplicate is skipped, not an error.
func (r *DefaulterLogRepository) InsertBatch(ctx context.Context, entries []*models.DefaulterLog) ([]*models.DefaulterLog, error) {
	inserted := make([]*models.DefaulterLog, 0, len(entries))
	for _, e := range entries {
		err := r.DB.QueryRow(ctx, `
			INSERT INTO defaulter_logs (user_id, name, phone, team, role, defaulter_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			ON CONFLICT (user_id, defaulter_date) DO NOTHING
			RETURNING id, created_at
		`, e.UserID, e.Name, e.Phone, e.Team, e.Role, e.DefaulterDate).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			// ON CONFLICT DO NOTHING returns no row for duplicates
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("failed to insert defaulter entry for user %d: %w", e.UserID, err)
		}
		inserted = append(inserted, e)
	}
	return inserted, nil
}

// List returns defaulter entries, optionally narrowed by team, user or date,
// newest reporting day first.
func (r *DefaulterLogRepository) List(ctx context.Context, team string, userID int, date string) ([]*models.DefaulterLog, error) {
	query := `
		SELECT id, user_id, name, COALESCE(phone, ''), team, COALESCE(role, ''),
		       TO_CHAR(defaulter_date, 'YYYY-MM-DD'), created_at
		FROM defaulter_logs
		WHERE 1=1
	`
	args := []interface{}{}
	i := 1
	if team != "" {
		query += fmt.Sprintf(" AND team = $%d", i)
		args = append(args, team)
		i++
	}
	if userID > 0 {
		query += fmt.Sprintf(" AND user_id = $%d", i)
		args = append(args, userID)
		i++
	}
	if date != "" {
		query += fmt.Sprintf(" AND defaulter_date = $%d", i)
		args = append(args, date)
		i++
	}
	query += " ORDER BY defaulter_date DESC, team ASC, name ASC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.DefaulterLog
	for rows.Next() {
		l := &models.DefaulterLog{}
		err := rows.Scan(
			&l.ID, &l.UserID, &l.Name, &l.Phone, &l.Team, &l.Role,
			&l.DefaulterDate, &l.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Delete removes a single defaulter entry (admin action).
func (r *DefaulterLogRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM defaulter_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
