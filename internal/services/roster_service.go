package services

import (
	"context"
	"log"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
)

// RosterService manages the staff directory. Mutations are admin-only;
// the directory listing is visibility-scoped like everything else.
type RosterService struct {
	Profiles *repositories.ProfileRepository
}

func NewRosterService(profiles *repositories.ProfileRepository) *RosterService {
	return &RosterService{Profiles: profiles}
}

// Directory returns the profiles the viewer may see, sorted by team then
// role seniority then name.
func (s *RosterService) Directory(ctx context.Context, viewer Viewer) ([]*models.Profile, error) {
	all, err := s.Profiles.List(ctx, "")
	if err != nil {
		return nil, err
	}
	visible := FilterProfiles(viewer, all)

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if ta, tb := models.TeamPriority(a.Team), models.TeamPriority(b.Team); ta != tb {
			return ta < tb
		}
		if ra, rb := models.RolePriority(a.Role), models.RolePriority(b.Role); ra != rb {
			return ra < rb
		}
		return a.Name < b.Name
	})
	return visible, nil
}

func validateProfileFields(name, phone, team, role string) error {
	if name == "" {
		return validationErr("name is required")
	}
	if !IsValidMobile(phone) {
		return validationErr("invalid mobile number")
	}
	if !models.IsValidTeam(team) {
		return validationErr("unknown team %q", team)
	}
	if !models.IsRoleAllowed(team, role) {
		return validationErr("role %q is not allowed on team %q", role, team)
	}
	return nil
}

// Create adds a staff member. An omitted password falls back to the
// default, which staff change on first login.
func (s *RosterService) Create(ctx context.Context, viewer Viewer, req *models.CreateProfileRequest) (*models.Profile, error) {
	if !viewer.IsGlobal() {
		return nil, forbiddenErr("roster changes require admin access")
	}
	if err := validateProfileFields(req.Name, req.Phone, req.Team, req.Role); err != nil {
		return nil, err
	}

	password := req.Password
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &models.Profile{
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		Team:         req.Team,
		PasswordHash: string(hash),
	}
	if err := s.Profiles.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Printf("[Roster] Added %s (%s, %s)", p.Name, p.Role, p.Team)
	return p, nil
}

// BulkCreate adds several staff members at once, stopping at the first
// invalid row so a bad spreadsheet import fails loudly.
func (s *RosterService) BulkCreate(ctx context.Context, viewer Viewer, reqs []*models.CreateProfileRequest) ([]*models.Profile, error) {
	if !viewer.IsGlobal() {
		return nil, forbiddenErr("roster changes require admin access")
	}
	for i, req := range reqs {
		if err := validateProfileFields(req.Name, req.Phone, req.Team, req.Role); err != nil {
			return nil, validationErr("row %d: %v", i+1, err)
		}
	}

	created := make([]*models.Profile, 0, len(reqs))
	for _, req := range reqs {
		p, err := s.Create(ctx, viewer, req)
		if err != nil {
			return created, err
		}
		created = append(created, p)
	}
	return created, nil
}

// Update edits a staff member's details.
func (s *RosterService) Update(ctx context.Context, viewer Viewer, id int, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if !viewer.IsGlobal() {
		return nil, forbiddenErr("roster changes require admin access")
	}
	if err := validateProfileFields(req.Name, req.Phone, req.Team, req.Role); err != nil {
		return nil, err
	}
	if err := s.Profiles.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Profiles.GetByID(ctx, id)
}

// ResetPassword sets the member's password back to the default.
func (s *RosterService) ResetPassword(ctx context.Context, viewer Viewer, id int) error {
	if !viewer.IsGlobal() {
		return forbiddenErr("roster changes require admin access")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Profiles.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}
	log.Printf("[Roster] Password reset for user %d", id)
	return nil
}

// Delete removes a staff member. Their activity records keep the embedded
// team/role snapshot and stay visible.
func (s *RosterService) Delete(ctx context.Context, viewer Viewer, id int) error {
	if !viewer.IsGlobal() {
		return forbiddenErr("roster changes require admin access")
	}
	if id == viewer.UserID {
		return validationErr("cannot delete your own account")
	}
	return s.Profiles.Delete(ctx, id)
}
