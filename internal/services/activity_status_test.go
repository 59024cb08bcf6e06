package services

import (
	"errors"
	"testing"

	"outreach-backend/internal/models"
)

func TestIsValidMobile(t *testing.T) {
	valid := []string{"9876543210", "6000000000", "7123456789", "8999999999"}
	for _, p := range valid {
		if !IsValidMobile(p) {
			t.Errorf("IsValidMobile(%q) = false, want true", p)
		}
	}
	invalid := []string{"", "123456789", "5876543210", "98765432100", "987654321", "98765abcde", "+919876543210"}
	for _, p := range invalid {
		if IsValidMobile(p) {
			t.Errorf("IsValidMobile(%q) = true, want false", p)
		}
	}
}

func TestDeriveStatusInterested(t *testing.T) {
	today := "2026-03-10"

	d, err := DeriveStatus(models.TypeNewCustomerVisit, models.OutcomeInterested, "2026-03-15", "14:30", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", d.Status, models.StatusInProgress)
	}
	if d.FollowUpDate == nil || *d.FollowUpDate != "2026-03-15" {
		t.Errorf("follow-up date not kept: %v", d.FollowUpDate)
	}
	if d.FollowUpTime != nil {
		t.Errorf("follow-up time kept for a future date: %v", *d.FollowUpTime)
	}

	// Time survives only when the follow-up is due today.
	d, err = DeriveStatus(models.TypeFollowUp, models.OutcomeInterested, today, "09:00", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.FollowUpTime == nil || *d.FollowUpTime != "09:00" {
		t.Errorf("follow-up time dropped for a same-day date: %v", d.FollowUpTime)
	}
}

func TestDeriveStatusInterestedRequiresDate(t *testing.T) {
	_, err := DeriveStatus(models.TypeExistingCustomerVisit, models.OutcomeInterested, "", "", "2026-03-10")
	if err == nil {
		t.Fatal("expected an error for a missing follow-up date")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error is not a validation error: %v", err)
	}
}

func TestDeriveStatusOutcomes(t *testing.T) {
	cases := []struct {
		outcome string
		want    string
	}{
		{models.OutcomeNotInterested, models.StatusClosed},
		{models.OutcomeConverted, models.StatusConverted},
	}
	for _, tc := range cases {
		for _, typ := range []string{models.TypeNewCustomerVisit, models.TypeExistingCustomerVisit, models.TypeFollowUp} {
			d, err := DeriveStatus(typ, tc.outcome, "", "", "2026-03-10")
			if err != nil {
				t.Fatalf("DeriveStatus(%q, %q): %v", typ, tc.outcome, err)
			}
			if d.Status != tc.want {
				t.Errorf("DeriveStatus(%q, %q) = %q, want %q", typ, tc.outcome, d.Status, tc.want)
			}
			if d.FollowUpDate != nil || d.FollowUpTime != nil {
				t.Errorf("DeriveStatus(%q, %q) kept follow-up fields", typ, tc.outcome)
			}
		}
	}
}

func TestDeriveStatusUnknownOutcome(t *testing.T) {
	_, err := DeriveStatus(models.TypeNewCustomerVisit, "Maybe", "", "", "2026-03-10")
	if err == nil {
		t.Fatal("expected an error for an unknown outcome")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error is not a validation error: %v", err)
	}
}

func TestDeriveStatusNonVisitTypes(t *testing.T) {
	// Branch visits and anything else complete regardless of outcome.
	for _, outcome := range []string{"", models.OutcomeInterested, "garbage"} {
		d, err := DeriveStatus(models.TypeBranchVisit, outcome, "2026-03-15", "10:00", "2026-03-10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Status != models.StatusCompleted {
			t.Errorf("branch visit status = %q, want %q", d.Status, models.StatusCompleted)
		}
		if d.FollowUpDate != nil {
			t.Error("branch visit kept a follow-up date")
		}
	}
}
