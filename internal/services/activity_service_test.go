package services

import (
	"testing"

	"outreach-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestDueFollowUpsNonGlobalSeesOnlyOwn(t *testing.T) {
	today := "2026-03-10"
	visible := []*models.Activity{
		{ID: 1, UserID: 10, Team: "R1 Tirupati", Status: models.StatusInProgress, FollowUpDate: strPtr(today)},
		{ID: 2, UserID: 11, Team: "R1 Tirupati", Status: models.StatusInProgress, FollowUpDate: strPtr(today)},
	}
	viewer := Viewer{UserID: 10, Role: models.RoleRegionalManager, Team: "R1 Tirupati"}

	// The reminder list is personal: a teammate's due follow-up stays out
	// even though the record itself is visible.
	due := dueFollowUps(viewer, visible, today)
	if len(due) != 1 || due[0].ID != 1 {
		t.Errorf("due = %v, want only record 1", ids(due))
	}
}

func TestDueFollowUpsGlobalSeesAll(t *testing.T) {
	today := "2026-03-10"
	visible := []*models.Activity{
		{ID: 1, UserID: 10, Status: models.StatusInProgress, FollowUpDate: strPtr(today)},
		{ID: 2, UserID: 11, Status: models.StatusInProgress, FollowUpDate: strPtr(today)},
	}
	admin := Viewer{UserID: 1, Role: models.RoleAdmin, Team: models.TeamHQ}

	if due := dueFollowUps(admin, visible, today); len(due) != 2 {
		t.Errorf("admin due = %v, want both", ids(due))
	}
}

func TestDueFollowUpsSkipsClosedAndOtherDays(t *testing.T) {
	today := "2026-03-10"
	viewer := Viewer{UserID: 10, Role: models.RoleAdmin, Team: models.TeamHQ}
	visible := []*models.Activity{
		{ID: 1, UserID: 10, Status: models.StatusConverted, FollowUpDate: strPtr(today)},
		{ID: 2, UserID: 10, Status: models.StatusInProgress, FollowUpDate: strPtr("2026-03-11")},
		{ID: 3, UserID: 10, Status: models.StatusInProgress, FollowUpDate: nil},
		{ID: 4, UserID: 10, Status: models.StatusInProgress, FollowUpDate: strPtr(today)},
	}

	due := dueFollowUps(viewer, visible, today)
	if len(due) != 1 || due[0].ID != 4 {
		t.Errorf("due = %v, want only record 4", ids(due))
	}
}
