package models

import "testing"

func TestRolesForTeam(t *testing.T) {
	hq := RolesForTeam(TeamHQ)
	if len(hq) != 2 {
		t.Fatalf("HQ has %d roles, want 2", len(hq))
	}
	for _, r := range hq {
		if r != RoleAdmin && r != RoleSuperAdmin {
			t.Errorf("unexpected HQ role %q", r)
		}
	}

	field := RolesForTeam("R3 Nellore")
	if len(field) != 5 {
		t.Fatalf("field team has %d roles, want 5", len(field))
	}
	for _, r := range field {
		if r == RoleAdmin || r == RoleSuperAdmin {
			t.Errorf("admin role %q offered on a field team", r)
		}
	}

	if got := RolesForTeam("R9 Nowhere"); got != nil {
		t.Errorf("unknown team returned roles %v", got)
	}
}

func TestIsRoleAllowed(t *testing.T) {
	cases := []struct {
		team, role string
		want       bool
	}{
		{TeamHQ, RoleAdmin, true},
		{TeamHQ, RoleRegionalManager, false},
		{"R1 Kurnool", RoleRegionalManager, true},
		{"R1 Kurnool", RoleSuperAdmin, false},
		{"R9 Nowhere", RoleAdmin, false},
	}
	for _, tc := range cases {
		if got := IsRoleAllowed(tc.team, tc.role); got != tc.want {
			t.Errorf("IsRoleAllowed(%q, %q) = %v, want %v", tc.team, tc.role, got, tc.want)
		}
	}
}

func TestSortPriorities(t *testing.T) {
	if RolePriority(RoleRegionalManager) >= RolePriority(RoleCMCredit) {
		t.Error("regional manager must sort before CM Credit & NPA")
	}
	if RolePriority("Unknown Role") != 99 {
		t.Errorf("unknown role priority = %d, want 99", RolePriority("Unknown Role"))
	}
	if TeamPriority(TeamHQ) <= TeamPriority("R5 Kadapa") {
		t.Error("headquarters must sort after every field team")
	}
	if TeamPriority("R1 Tirupati") >= TeamPriority("R2 Chittoor") {
		t.Error("team order does not follow the registry")
	}
}

func TestIsOpenStatus(t *testing.T) {
	open := []string{StatusInProgress, StatusOverdue, StatusInterested, StatusPending}
	for _, s := range open {
		if !IsOpenStatus(s) {
			t.Errorf("IsOpenStatus(%q) = false, want true", s)
		}
	}
	closed := []string{StatusConverted, StatusClosed, StatusCompleted, ""}
	for _, s := range closed {
		if IsOpenStatus(s) {
			t.Errorf("IsOpenStatus(%q) = true, want false", s)
		}
	}
}
