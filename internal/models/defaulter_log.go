package models

import "time"

// DefaulterLog is a persisted snapshot asserting that a staff member logged
// zero activity on a reporting day. Rows are unique per (user_id, date) and
// stay until an admin deletes them.
type DefaulterLog struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Team          string    `json:"team"`
	Role          string    `json:"role"`
	DefaulterDate string    `json:"defaulter_date"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"created_at"`
}
