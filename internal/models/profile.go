package models

import "time"

// Profile is a staff member record. It is the live source of truth for
// team and role; copies embedded in activity records may go stale.
type Profile struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Role         string     `json:"role"`
	Team         string     `json:"team"`
	PasswordHash string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsGlobal reports whether this profile may see every team's data.
// Headquarters membership counts the same as an admin role.
func (p *Profile) IsGlobal() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin || p.Team == TeamHQ
}

// IsExempt reports whether this profile is excluded from defaulter detection.
func (p *Profile) IsExempt() bool {
	return p.Team == TeamHQ || p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

// CreateProfileRequest is the admin payload for adding a staff member.
type CreateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Team     string `json:"team"`
	Password string `json:"password,omitempty"`
}

// UpdateProfileRequest is the admin payload for editing a staff member.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
	Team  string `json:"team"`
}

// LoginRequest is the canonical staff login payload.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ChangePasswordRequest updates the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
