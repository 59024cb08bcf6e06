package services

import (
	"strings"

	"outreach-backend/internal/models"
)

// Viewer is the identity a visibility decision is made for. Role and team
// must come from the live profile, not from request parameters.
type Viewer struct {
	UserID int
	Role   string
	Team   string
}

// IsGlobal reports whether the viewer sees every team.
func (v Viewer) IsGlobal() bool {
	return v.Role == models.RoleAdmin || v.Role == models.RoleSuperAdmin || v.Team == models.TeamHQ
}

// ViewerFromProfile builds a Viewer from a live profile.
func ViewerFromProfile(p *models.Profile) Viewer {
	return Viewer{UserID: p.ID, Role: p.Role, Team: p.Team}
}

// FilterVisible returns the subset of activities the viewer may see,
// narrowed by the requested filters.
//
// A non-global viewer is hard-restricted to records whose effective team
// equals their own; the team filter parameter is ignored for them. This is
// the security boundary: it is enforced here, before records leave the
// service, never left to the caller.
//
// The date filter compares the record's creation day as a YYYY-MM-DD string,
// sidestepping timezone drift. The role filter matches the effective role
// (live owner profile, falling back to the snapshot on the record).
func FilterVisible(viewer Viewer, activities []*models.Activity, f models.ActivityFilter) []*models.Activity {
	global := viewer.IsGlobal()

	visible := make([]*models.Activity, 0, len(activities))
	for _, a := range activities {
		team := a.EffectiveTeam()

		if !global {
			if team != viewer.Team {
				continue
			}
		} else if f.Team != "" && f.Team != "ALL" && team != f.Team {
			continue
		}

		if f.Role != "" && f.Role != "ALL" && a.EffectiveRole() != f.Role {
			continue
		}

		if f.Date != "" && creationDay(a) != f.Date {
			continue
		}

		if f.Status != "" && !matchStatusGroup(a, f.Status) {
			continue
		}

		visible = append(visible, a)
	}
	return visible
}

// creationDay is the record's creation date as YYYY-MM-DD.
func creationDay(a *models.Activity) string {
	return a.CreatedAt.Format("2006-01-02")
}

// matchStatusGroup resolves the dashboard's status-group filters as well as
// exact status values.
func matchStatusGroup(a *models.Activity, group string) bool {
	switch strings.ToUpper(group) {
	case "ALL":
		return true
	case "FOLLOW_UP":
		return a.Status != models.StatusConverted &&
			a.Status != models.StatusClosed &&
			a.Status != models.StatusCompleted
	case "CONVERTED":
		return a.Status == models.StatusConverted
	case "NOT_INTERESTED":
		return a.Status == models.StatusClosed
	case "BRANCH":
		return a.Type == models.TypeBranchVisit
	default:
		return a.Status == group
	}
}

// FilterProfiles scopes a roster the same way: global viewers see everyone,
// others only their own team.
func FilterProfiles(viewer Viewer, profiles []*models.Profile) []*models.Profile {
	if viewer.IsGlobal() {
		return profiles
	}
	visible := make([]*models.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Team == viewer.Team {
			visible = append(visible, p)
		}
	}
	return visible
}
