package services

import (
	"regexp"
	"time"

	"outreach-backend/internal/models"
)

// mobilePattern matches a valid Indian mobile number: 10 digits, leading 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// IsValidMobile reports whether the phone is a well-formed 10-digit mobile.
func IsValidMobile(phone string) bool {
	return mobilePattern.MatchString(phone)
}

// TodayString is the local calendar day as YYYY-MM-DD. Follow-up date
// comparisons are string comparisons on this format, never timestamp math.
func TodayString() string {
	return time.Now().Format("2006-01-02")
}

// DerivedStatus is the outcome of status derivation for a new submission.
type DerivedStatus struct {
	Status       string
	FollowUpDate *string
	FollowUpTime *string
}

// DeriveStatus maps an activity type and outcome selection to the canonical
// status and follow-up fields.
//
// Customer visits and follow-ups derive from the outcome: Interested means
// the engagement stays open ("In Progress") and a follow-up date is
// mandatory; Not Interested closes it; Converted finishes it. Every other
// activity type (branch visits etc.) completes unconditionally.
//
// The follow-up time is kept only when the follow-up date is today: a time
// on a future date carries no meaning in the reminder flow.
func DeriveStatus(activityType, outcome, followUpDate, followUpTime, today string) (DerivedStatus, error) {
	switch activityType {
	case models.TypeNewCustomerVisit, models.TypeExistingCustomerVisit, models.TypeFollowUp:
	default:
		return DerivedStatus{Status: models.StatusCompleted}, nil
	}

	switch outcome {
	case models.OutcomeInterested:
		if followUpDate == "" {
			return DerivedStatus{}, validationErr("missing follow-up date")
		}
		d := DerivedStatus{Status: models.StatusInProgress, FollowUpDate: &followUpDate}
		if followUpTime != "" && followUpDate == today {
			d.FollowUpTime = &followUpTime
		}
		return d, nil
	case models.OutcomeNotInterested:
		return DerivedStatus{Status: models.StatusClosed}, nil
	case models.OutcomeConverted:
		return DerivedStatus{Status: models.StatusConverted}, nil
	default:
		return DerivedStatus{}, validationErr("unknown outcome %q", outcome)
	}
}
