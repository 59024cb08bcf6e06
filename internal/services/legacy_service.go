package services

import (
	"context"
	"log"
	"time"

	"outreach-backend/internal/auth"
	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
)

// LegacyService backs the original mobile app's API: phone-only login with
// a session cookie, a flat activity log, and an admin-managed directory.
type LegacyService struct {
	Users      *repositories.DirectoryUserRepository
	Activities *repositories.LegacyActivityRepository
	Sessions   auth.SessionStore
	SessionTTL time.Duration
}

func NewLegacyService(users *repositories.DirectoryUserRepository, activities *repositories.LegacyActivityRepository, sessions auth.SessionStore, sessionTTL time.Duration) *LegacyService {
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	return &LegacyService{Users: users, Activities: activities, Sessions: sessions, SessionTTL: sessionTTL}
}

// Login authenticates by phone number alone. Knowing a registered number is
// the whole credential, exactly as the original app worked.
func (s *LegacyService) Login(ctx context.Context, phone string) (*models.DirectoryUser, string, error) {
	if !IsValidMobile(phone) {
		return nil, "", validationErr("invalid mobile number")
	}

	user, err := s.Users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := s.Sessions.Create(user.ID, s.SessionTTL)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[Legacy] %s logged in", user.Name)
	return user, token, nil
}

// Authenticate resolves a session token to its directory user.
func (s *LegacyService) Authenticate(ctx context.Context, token string) (*models.DirectoryUser, error) {
	userID, ok := s.Sessions.Get(token)
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		// Session outlived the user; drop it.
		s.Sessions.Delete(token)
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Logout invalidates a session token.
func (s *LegacyService) Logout(token string) {
	s.Sessions.Delete(token)
}

// isLegacyAdmin gates the legacy admin routes. The original app checked the
// literal role "Admin" and nothing else; that surface stays frozen.
func isLegacyAdmin(u *models.DirectoryUser) bool {
	return u.Role == models.RoleAdmin
}

// MyActivities returns the caller's own entries, newest first.
func (s *LegacyService) MyActivities(ctx context.Context, user *models.DirectoryUser) ([]*models.LegacyActivity, error) {
	return s.Activities.ListByUser(ctx, user.ID)
}

// AllActivities returns every entry with user details joined (admin only).
func (s *LegacyService) AllActivities(ctx context.Context, user *models.DirectoryUser) ([]*models.LegacyActivity, error) {
	if !isLegacyAdmin(user) {
		return nil, forbiddenErr("admin access required")
	}
	return s.Activities.ListAll(ctx)
}

// CreateActivity logs a new entry for the caller.
func (s *LegacyService) CreateActivity(ctx context.Context, user *models.DirectoryUser, req *models.CreateLegacyActivityRequest) (*models.LegacyActivity, error) {
	if req.Contact == "" {
		return nil, validationErr("contact is required")
	}
	if req.Type == "" {
		return nil, validationErr("type is required")
	}

	team := req.Team
	if team == "" {
		team = user.Team
	}

	a := &models.LegacyActivity{
		UserID:       user.ID,
		Team:         team,
		Contact:      req.Contact,
		Type:         req.Type,
		Notes:        req.Notes,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ImageURL:     req.ImageURL,
		FollowUpDate: req.FollowUpDate,
	}
	if err := s.Activities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetActivityCompleted toggles an entry's completion flag. Only the owner's
// entries are reachable.
func (s *LegacyService) SetActivityCompleted(ctx context.Context, user *models.DirectoryUser, id int, completed bool) (*models.LegacyActivity, error) {
	return s.Activities.SetCompleted(ctx, id, user.ID, completed)
}

// DeleteActivity removes one of the caller's entries.
func (s *LegacyService) DeleteActivity(ctx context.Context, user *models.DirectoryUser, id int) error {
	return s.Activities.Delete(ctx, id, user.ID)
}

// ListUsers returns the directory (admin only).
func (s *LegacyService) ListUsers(ctx context.Context, user *models.DirectoryUser) ([]*models.DirectoryUser, error) {
	if !isLegacyAdmin(user) {
		return nil, forbiddenErr("admin access required")
	}
	return s.Users.List(ctx)
}

// CreateUser adds a directory entry (admin only). Phone numbers are unique;
// an omitted role falls back to plain "user".
func (s *LegacyService) CreateUser(ctx context.Context, user *models.DirectoryUser, req *models.CreateDirectoryUserRequest) (*models.DirectoryUser, error) {
	if !isLegacyAdmin(user) {
		return nil, forbiddenErr("admin access required")
	}
	if req.Name == "" {
		return nil, validationErr("name is required")
	}
	if !IsValidMobile(req.PhoneNumber) {
		return nil, validationErr("invalid mobile number")
	}
	if _, err := s.Users.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, validationErr("Phone number already registered")
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	u := &models.DirectoryUser{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Team:        req.Team,
		Role:        role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes a directory entry (admin only).
func (s *LegacyService) DeleteUser(ctx context.Context, user *models.DirectoryUser, id int) error {
	if !isLegacyAdmin(user) {
		return forbiddenErr("admin access required")
	}
	if id == user.ID {
		return validationErr("cannot delete your own account")
	}
	return s.Users.Delete(ctx, id)
}
