package services

import (
	"testing"

	"outreach-backend/internal/models"
)

func defaulterRoster() []*models.Profile {
	return []*models.Profile{
		{ID: 1, Name: "Asha", Phone: "9000000001", Team: models.TeamHQ, Role: models.RoleAdmin},
		{ID: 2, Name: "Bharat", Phone: "9000000002", Team: "R1 Tirupati", Role: models.RoleRegionalManager},
		{ID: 3, Name: "Chitra", Phone: "9000000003", Team: "R1 Tirupati", Role: models.RoleCMCredit},
		{ID: 4, Name: "Deepak", Phone: "9000000004", Team: "R2 Chittoor", Role: models.RoleCMOperations},
		{ID: 5, Name: "Esha", Phone: "9000000005", Team: models.TeamHQ, Role: models.RoleSuperAdmin},
	}
}

func TestComputeDefaultersSkipsExemptAndActive(t *testing.T) {
	active := map[int]bool{3: true}
	existing := map[int]bool{}

	got := ComputeDefaulters(defaulterRoster(), active, existing, "2026-03-10")
	if len(got) != 2 {
		t.Fatalf("got %d defaulters, want 2", len(got))
	}
	for _, e := range got {
		if e.UserID == 1 || e.UserID == 5 {
			t.Errorf("exempt profile %d recorded as defaulter", e.UserID)
		}
		if e.UserID == 3 {
			t.Error("active profile 3 recorded as defaulter")
		}
		if e.DefaulterDate != "2026-03-10" {
			t.Errorf("entry has date %q", e.DefaulterDate)
		}
	}
}

func TestComputeDefaultersDedupesExisting(t *testing.T) {
	active := map[int]bool{}
	existing := map[int]bool{2: true}

	got := ComputeDefaulters(defaulterRoster(), active, existing, "2026-03-10")
	for _, e := range got {
		if e.UserID == 2 {
			t.Fatal("already-recorded profile 2 produced a duplicate entry")
		}
	}

	// Feeding the output back as the existing set yields nothing new.
	for _, e := range got {
		existing[e.UserID] = true
	}
	if again := ComputeDefaulters(defaulterRoster(), active, existing, "2026-03-10"); len(again) != 0 {
		t.Errorf("second sweep produced %d entries, want 0", len(again))
	}
}

func TestComputeDefaultersEverybodyActive(t *testing.T) {
	active := map[int]bool{2: true, 3: true, 4: true}
	if got := ComputeDefaulters(defaulterRoster(), active, map[int]bool{}, "2026-03-10"); len(got) != 0 {
		t.Errorf("got %d defaulters, want 0", len(got))
	}
}

func TestComputeDefaultersSortOrder(t *testing.T) {
	roster := []*models.Profile{
		{ID: 10, Name: "Zoya", Phone: "9000000010", Team: "R2 Chittoor", Role: models.RoleCMCredit},
		{ID: 11, Name: "Arun", Phone: "9000000011", Team: "R2 Chittoor", Role: models.RoleCMOperations},
		{ID: 12, Name: "Mira", Phone: "9000000012", Team: "R1 Tirupati", Role: models.RoleCMCredit},
	}
	got := ComputeDefaulters(roster, map[int]bool{}, map[int]bool{}, "2026-03-10")
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	want := []int{12, 11, 10} // team asc, then name asc within a team
	for i, e := range got {
		if e.UserID != want[i] {
			t.Errorf("position %d has user %d, want %d", i, e.UserID, want[i])
		}
	}
}
