package models

import "time"

// The legacy API keeps its own directory and activity tables. The two
// surfaces were never reconciled upstream; they stay separate here too.

// DirectoryUser is a legacy directory entry (phone-only login).
type DirectoryUser struct {
	ID          int       `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Name        string    `json:"name"`
	Team        string    `json:"team"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// LegacyActivity is an entry in the legacy activities table. Flatter than
// Activity: single image, completion flag instead of a status enum.
type LegacyActivity struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Team         string    `json:"team"`
	Contact      string    `json:"contact"`
	Type         string    `json:"type"`
	Notes        string    `json:"notes,omitempty"`
	Location     string    `json:"location,omitempty"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	ImageURL     string    `json:"image_url,omitempty"`
	FollowUpDate *string   `json:"follow_up_date"`
	IsCompleted  bool      `json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined for the admin listing.
	UserName  string `json:"user_name,omitempty"`
	UserPhone string `json:"user_phone,omitempty"`
}

// CreateLegacyActivityRequest is the legacy POST /api/activities payload.
type CreateLegacyActivityRequest struct {
	Team         string   `json:"team"`
	Contact      string   `json:"contact"`
	Type         string   `json:"type"`
	Notes        string   `json:"notes"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ImageURL     string   `json:"image_url"`
	FollowUpDate *string  `json:"follow_up_date"`
}

// CreateDirectoryUserRequest is the legacy admin payload for adding a user.
type CreateDirectoryUserRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	Role        string `json:"role"`
}
