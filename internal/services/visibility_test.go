package services

import (
	"testing"
	"time"

	"outreach-backend/internal/models"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", s)
	return t
}

func sampleActivities() []*models.Activity {
	return []*models.Activity{
		{ID: 1, UserID: 10, Team: "R1 Tirupati", Role: models.RoleRegionalManager, Status: models.StatusInProgress, Type: models.TypeNewCustomerVisit, CreatedAt: day("2026-03-10 09:15")},
		{ID: 2, UserID: 11, Team: "R2 Chittoor", Role: models.RoleCMCredit, Status: models.StatusConverted, Type: models.TypeExistingCustomerVisit, CreatedAt: day("2026-03-10 11:40")},
		{ID: 3, UserID: 12, Team: "R1 Tirupati", Role: models.RoleCMOperations, Status: models.StatusClosed, Type: models.TypeFollowUp, CreatedAt: day("2026-03-11 08:05")},
		{ID: 4, UserID: 13, Team: "R3 Nellore", Role: models.RoleCMCredit, Status: models.StatusCompleted, Type: models.TypeBranchVisit, CreatedAt: day("2026-03-11 16:30")},
	}
}

func TestViewerIsGlobal(t *testing.T) {
	cases := []struct {
		viewer Viewer
		want   bool
	}{
		{Viewer{Role: models.RoleAdmin, Team: "R1 Tirupati"}, true},
		{Viewer{Role: models.RoleSuperAdmin, Team: models.TeamHQ}, true},
		{Viewer{Role: models.RoleCMCredit, Team: models.TeamHQ}, true},
		{Viewer{Role: models.RoleRegionalManager, Team: "R1 Tirupati"}, false},
		{Viewer{Role: models.RoleCMOperations, Team: "R5 Kadapa"}, false},
	}
	for _, tc := range cases {
		if got := tc.viewer.IsGlobal(); got != tc.want {
			t.Errorf("IsGlobal(%s/%s) = %v, want %v", tc.viewer.Role, tc.viewer.Team, got, tc.want)
		}
	}
}

func TestFilterVisibleScopesNonGlobalToOwnTeam(t *testing.T) {
	viewer := Viewer{UserID: 10, Role: models.RoleRegionalManager, Team: "R1 Tirupati"}

	got := FilterVisible(viewer, sampleActivities(), models.ActivityFilter{})
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for _, a := range got {
		if a.EffectiveTeam() != "R1 Tirupati" {
			t.Errorf("record %d leaked from team %q", a.ID, a.EffectiveTeam())
		}
	}

	// A team filter parameter must not widen the scope.
	got = FilterVisible(viewer, sampleActivities(), models.ActivityFilter{Team: "R2 Chittoor"})
	for _, a := range got {
		if a.EffectiveTeam() != "R1 Tirupati" {
			t.Errorf("team filter widened scope to %q", a.EffectiveTeam())
		}
	}
}

func TestFilterVisibleGlobalFilters(t *testing.T) {
	admin := Viewer{UserID: 1, Role: models.RoleAdmin, Team: models.TeamHQ}
	all := sampleActivities()

	if got := FilterVisible(admin, all, models.ActivityFilter{}); len(got) != 4 {
		t.Errorf("unfiltered admin view has %d records, want 4", len(got))
	}
	if got := FilterVisible(admin, all, models.ActivityFilter{Team: "ALL"}); len(got) != 4 {
		t.Errorf(`team "ALL" view has %d records, want 4`, len(got))
	}
	if got := FilterVisible(admin, all, models.ActivityFilter{Team: "R2 Chittoor"}); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("team filter returned %v", ids(got))
	}
	if got := FilterVisible(admin, all, models.ActivityFilter{Role: models.RoleCMCredit}); len(got) != 2 {
		t.Errorf("role filter returned %v", ids(got))
	}
	if got := FilterVisible(admin, all, models.ActivityFilter{Date: "2026-03-10"}); len(got) != 2 {
		t.Errorf("date filter returned %v", ids(got))
	}
	// Adjacent day must not bleed in.
	if got := FilterVisible(admin, all, models.ActivityFilter{Date: "2026-03-12"}); len(got) != 0 {
		t.Errorf("empty day returned %v", ids(got))
	}
}

func TestFilterVisibleDateIsCalendarDayNotWindow(t *testing.T) {
	// A record logged minutes before midnight belongs to that calendar day
	// only. String comparison on the formatted date, not timestamp math.
	admin := Viewer{Role: models.RoleAdmin, Team: models.TeamHQ}
	nearMidnight := &models.Activity{
		ID:        9,
		Team:      "R3 Nellore",
		Status:    models.StatusInProgress,
		CreatedAt: time.Date(2026, 2, 4, 23, 50, 0, 0, time.UTC),
	}

	if got := FilterVisible(admin, []*models.Activity{nearMidnight}, models.ActivityFilter{Date: "2026-02-05"}); len(got) != 0 {
		t.Errorf("23:50 record leaked into the next day: %v", ids(got))
	}
	if got := FilterVisible(admin, []*models.Activity{nearMidnight}, models.ActivityFilter{Date: "2026-02-04"}); len(got) != 1 {
		t.Error("23:50 record missing from its own day")
	}
}

func TestFilterVisibleFollowsLiveOwnerTeam(t *testing.T) {
	// Live owner team wins over the snapshot; a record whose owner moved
	// teams follows the owner.
	a := &models.Activity{ID: 5, Team: "R1 Tirupati", OwnerTeam: "R2 Chittoor", Status: models.StatusInProgress, CreatedAt: day("2026-03-10 10:00")}
	viewer := Viewer{UserID: 20, Role: models.RoleCMCredit, Team: "R1 Tirupati"}
	if got := FilterVisible(viewer, []*models.Activity{a}, models.ActivityFilter{}); len(got) != 0 {
		t.Error("record followed the stale snapshot team, not the live owner team")
	}
	viewer.Team = "R2 Chittoor"
	if got := FilterVisible(viewer, []*models.Activity{a}, models.ActivityFilter{}); len(got) != 1 {
		t.Error("record not visible to the owner's live team")
	}
}

func TestMatchStatusGroups(t *testing.T) {
	admin := Viewer{Role: models.RoleAdmin, Team: models.TeamHQ}
	all := sampleActivities()

	if got := FilterVisible(admin, all, models.ActivityFilter{Status: "FOLLOW_UP"}); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("FOLLOW_UP group returned %v", ids(got))
	}
	if got := FilterVisible(admin, all, models.ActivityFilter{Status: "CONVERTED"}); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("CONVERTED group returned %v", ids(got))
	}
	if got := FilterVisible(admin, all, models.ActivityFilter{Status: "NOT_INTERESTED"}); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("NOT_INTERESTED group returned %v", ids(got))
	}
	if got := FilterVisible(admin, all, models.ActivityFilter{Status: "BRANCH"}); len(got) != 1 || got[0].ID != 4 {
		t.Errorf("BRANCH group returned %v", ids(got))
	}
	// Exact status values pass through.
	if got := FilterVisible(admin, all, models.ActivityFilter{Status: models.StatusClosed}); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("exact status returned %v", ids(got))
	}
}

func TestFilterProfiles(t *testing.T) {
	roster := []*models.Profile{
		{ID: 1, Team: models.TeamHQ, Role: models.RoleAdmin},
		{ID: 2, Team: "R1 Tirupati", Role: models.RoleRegionalManager},
		{ID: 3, Team: "R2 Chittoor", Role: models.RoleCMCredit},
	}

	admin := Viewer{Role: models.RoleAdmin, Team: models.TeamHQ}
	if got := FilterProfiles(admin, roster); len(got) != 3 {
		t.Errorf("admin sees %d profiles, want 3", len(got))
	}

	field := Viewer{Role: models.RoleCMCredit, Team: "R2 Chittoor"}
	got := FilterProfiles(field, roster)
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("field viewer sees %v", got)
	}
}

func ids(activities []*models.Activity) []int {
	var out []int
	for _, a := range activities {
		out = append(out, a.ID)
	}
	return out
}
