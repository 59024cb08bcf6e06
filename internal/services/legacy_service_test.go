package services

import (
	"context"
	"errors"
	"testing"

	"outreach-backend/internal/models"
)

func TestIsLegacyAdminAcceptsAdminOnly(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{models.RoleAdmin, true},
		{models.RoleSuperAdmin, false},
		{models.RoleRegionalManager, false},
		{"user", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isLegacyAdmin(&models.DirectoryUser{Role: tc.role}); got != tc.want {
			t.Errorf("isLegacyAdmin(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestLegacyAdminRoutesRejectNonAdmins(t *testing.T) {
	// The authorization check runs before any data access, so a bare service
	// is enough to exercise the rejections.
	s := &LegacyService{}
	ctx := context.Background()

	for _, role := range []string{models.RoleSuperAdmin, "user"} {
		caller := &models.DirectoryUser{ID: 1, Role: role}

		if _, err := s.AllActivities(ctx, caller); !errors.Is(err, ErrForbidden) {
			t.Errorf("AllActivities as %q: err = %v, want forbidden", role, err)
		}
		if _, err := s.ListUsers(ctx, caller); !errors.Is(err, ErrForbidden) {
			t.Errorf("ListUsers as %q: err = %v, want forbidden", role, err)
		}
		if _, err := s.CreateUser(ctx, caller, &models.CreateDirectoryUserRequest{}); !errors.Is(err, ErrForbidden) {
			t.Errorf("CreateUser as %q: err = %v, want forbidden", role, err)
		}
		if err := s.DeleteUser(ctx, caller, 2); !errors.Is(err, ErrForbidden) {
			t.Errorf("DeleteUser as %q: err = %v, want forbidden", role, err)
		}
	}
}
