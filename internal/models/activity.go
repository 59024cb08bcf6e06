package models

import "time"

// Activity statuses
const (
	StatusInProgress = "In Progress"
	StatusInterested = "Interested"
	StatusPending    = "Pending"
	StatusOverdue    = "Overdue"
	StatusConverted  = "Converted"
	StatusClosed     = "Closed" // displayed as "Not Interested"
	StatusCompleted  = "Completed"
)

// Activity types
const (
	TypeNewCustomerVisit      = "New Customer Visit"
	TypeExistingCustomerVisit = "Existing Customer Visit"
	TypeBranchVisit           = "Branch Visit"
	TypeFollowUp              = "Follow-up"
)

// Outcome selections on visit and follow-up forms
const (
	OutcomeInterested    = "Interested"
	OutcomeNotInterested = "Not Interested"
	OutcomeConverted     = "Converted"
)

// OpenStatuses are the statuses that still expect a follow-up.
var OpenStatuses = []string{StatusInProgress, StatusOverdue, StatusInterested, StatusPending}

// IsOpenStatus reports whether a record still expects a follow-up.
func IsOpenStatus(status string) bool {
	for _, s := range OpenStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Activity is a logged staff visit. Team and role are snapshots taken at
// submission time; readers should prefer the owner's live profile.
type Activity struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	Team             string    `json:"team"`
	Role             string    `json:"role"`
	AssignedBy       string    `json:"assigned_by"`
	ClientName       string    `json:"client_name"`
	Phone            string    `json:"phone,omitempty"`
	Type             string    `json:"type"`
	CustomerActivity string    `json:"customer_activity,omitempty"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
	Location         string    `json:"location,omitempty"`
	Gallery          []string  `json:"gallery"`
	ImageURL         string    `json:"image_url,omitempty"`
	FollowUpDate     *string   `json:"follow_up_date"` // YYYY-MM-DD
	FollowUpTime     *string   `json:"follow_up_time"` // HH:MM, only meaningful when the date is today
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined from the owner's live profile; empty when the profile is gone.
	OwnerName string `json:"owner_name,omitempty"`
	OwnerTeam string `json:"owner_team,omitempty"`
	OwnerRole string `json:"owner_role,omitempty"`
}

// EffectiveTeam is the owner's live team, falling back to the snapshot.
func (a *Activity) EffectiveTeam() string {
	if a.OwnerTeam != "" {
		return a.OwnerTeam
	}
	return a.Team
}

// EffectiveRole is the owner's live role, falling back to the snapshot.
func (a *Activity) EffectiveRole() string {
	if a.OwnerRole != "" {
		return a.OwnerRole
	}
	return a.Role
}

// CreateActivityRequest carries the form fields of a new visit submission.
// Photos arrive separately as multipart files.
type CreateActivityRequest struct {
	ActivityType     string `json:"activity_type"`
	CustomerType     string `json:"customer_type"`
	ClientName       string `json:"client_name"`
	Phone            string `json:"phone"`
	CustomerActivity string `json:"customer_activity"`
	Outcome          string `json:"outcome"`
	Notes            string `json:"notes"`
	Location         string `json:"location"`
	FollowUpDate     string `json:"follow_up_date"`
	FollowUpTime     string `json:"follow_up_time"`
	// FollowUpOf references a prior open record that this submission closes.
	FollowUpOf int `json:"follow_up_of"`
}

// UpdateActivityRequest carries an owner edit. Nil fields are left unchanged.
type UpdateActivityRequest struct {
	ClientName       *string  `json:"client_name"`
	Phone            *string  `json:"phone"`
	CustomerActivity *string  `json:"customer_activity"`
	Status           *string  `json:"status"`
	Notes            *string  `json:"notes"`
	Location         *string  `json:"location"`
	FollowUpDate     *string  `json:"follow_up_date"`
	FollowUpTime     *string  `json:"follow_up_time"`
	AddPhotos        []string `json:"-"`
}

// ActivityFilter narrows a visibility-scoped listing. Zero values mean "no filter".
type ActivityFilter struct {
	Team   string
	Role   string
	Date   string // YYYY-MM-DD, matched against the creation day
	Status string
}

// DashboardStats are the counters shown on the staff dashboard.
type DashboardStats struct {
	Total         int `json:"total"`
	FollowUp      int `json:"follow_up"`
	Converted     int `json:"converted"`
	NotInterested int `json:"not_interested"`
	TeamMembers   int `json:"team_members"`
}
