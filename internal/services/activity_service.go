package services

import (
	"context"
	"io"
	"log"

	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
)

// EventPublisher receives change notifications for the realtime feed.
// A nil publisher disables the feed.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// PhotoFile is one uploaded photo, streamed from a multipart part.
type PhotoFile struct {
	Filename string
	Reader   io.Reader
	Size     int64
}

type ActivityService struct {
	Activities *repositories.ActivityRepository
	Profiles   *repositories.ProfileRepository
	Storage    StorageBackend
	Events     EventPublisher
}

func NewActivityService(activities *repositories.ActivityRepository, profiles *repositories.ProfileRepository, storage StorageBackend, events EventPublisher) *ActivityService {
	return &ActivityService{Activities: activities, Profiles: profiles, Storage: storage, Events: events}
}

func (s *ActivityService) publish(event string, payload interface{}) {
	if s.Events != nil {
		s.Events.Publish(event, payload)
	}
}

// resolveType maps the submission form's activity/customer type pair to the
// stored activity type. "Customer Visit" splits on the customer type.
func resolveType(activityType, customerType string) (string, error) {
	switch activityType {
	case "Customer Visit":
		if customerType == "Existing" {
			return models.TypeExistingCustomerVisit, nil
		}
		return models.TypeNewCustomerVisit, nil
	case models.TypeNewCustomerVisit, models.TypeExistingCustomerVisit,
		models.TypeBranchVisit, models.TypeFollowUp:
		return activityType, nil
	case "":
		return "", validationErr("activity type is required")
	default:
		return "", validationErr("unknown activity type %q", activityType)
	}
}

// Create logs a new visit for the owner. Photos are uploaded to storage
// before anything touches the database; a failed upload aborts the whole
// submission. When the submission is a follow-up referencing a prior open
// record, that record is closed in the same transaction as the insert.
func (s *ActivityService) Create(ctx context.Context, owner *models.Profile, req *models.CreateActivityRequest, photos []PhotoFile) (*models.Activity, error) {
	activityType, err := resolveType(req.ActivityType, req.CustomerType)
	if err != nil {
		return nil, err
	}
	if req.ClientName == "" {
		return nil, validationErr("client name is required")
	}
	if req.Phone != "" && !IsValidMobile(req.Phone) {
		return nil, validationErr("invalid mobile number")
	}

	derived, err := DeriveStatus(activityType, req.Outcome, req.FollowUpDate, req.FollowUpTime, TodayString())
	if err != nil {
		return nil, err
	}

	gallery := make([]string, 0, len(photos))
	for _, photo := range photos {
		key := PhotoKey(photo.Filename)
		if err := s.Storage.Upload(ctx, key, photo.Reader, photo.Size); err != nil {
			return nil, upstreamErr("photo upload", err)
		}
		gallery = append(gallery, key)
	}

	a := &models.Activity{
		UserID:           owner.ID,
		Team:             owner.Team,
		Role:             owner.Role,
		AssignedBy:       owner.Name,
		ClientName:       req.ClientName,
		Phone:            req.Phone,
		Type:             activityType,
		CustomerActivity: req.CustomerActivity,
		Status:           derived.Status,
		Notes:            req.Notes,
		Location:         req.Location,
		Gallery:          gallery,
		FollowUpDate:     derived.FollowUpDate,
		FollowUpTime:     derived.FollowUpTime,
	}
	if len(gallery) > 0 {
		a.ImageURL = gallery[0]
	}

	if req.FollowUpOf > 0 && activityType == models.TypeFollowUp {
		err = s.Activities.CreateClosingPrior(ctx, a, req.FollowUpOf)
	} else {
		err = s.Activities.Create(ctx, a)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Activity] %s logged %q for %q (status %s)", owner.Name, a.Type, a.ClientName, a.Status)
	s.publish("activity.created", a)
	return a, nil
}

// List returns the activities the viewer may see, narrowed by the filter.
func (s *ActivityService) List(ctx context.Context, viewer Viewer, filter models.ActivityFilter) ([]*models.Activity, error) {
	all, err := s.Activities.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVisible(viewer, all, filter), nil
}

// Get returns one activity, enforcing visibility.
func (s *ActivityService) Get(ctx context.Context, viewer Viewer, id int) (*models.Activity, error) {
	a, err := s.Activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsGlobal() && a.EffectiveTeam() != viewer.Team {
		return nil, ErrNotFound
	}
	return a, nil
}

// Update applies an owner edit and optionally appends photos. Only the
// record's owner may edit it.
func (s *ActivityService) Update(ctx context.Context, viewer Viewer, id int, req *models.UpdateActivityRequest, photos []PhotoFile) (*models.Activity, error) {
	existing, err := s.Activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != viewer.UserID {
		return nil, forbiddenErr("only the owner may edit a record")
	}
	if req.Phone != nil && *req.Phone != "" && !IsValidMobile(*req.Phone) {
		return nil, validationErr("invalid mobile number")
	}

	for _, photo := range photos {
		key := PhotoKey(photo.Filename)
		if err := s.Storage.Upload(ctx, key, photo.Reader, photo.Size); err != nil {
			return nil, upstreamErr("photo upload", err)
		}
		req.AddPhotos = append(req.AddPhotos, key)
	}

	if err := s.Activities.Update(ctx, id, req); err != nil {
		return nil, err
	}

	updated, err := s.Activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish("activity.updated", updated)
	return updated, nil
}

// Delete removes a record. Allowed for the owner, a global admin, or the
// Regional Manager of the record's effective team.
func (s *ActivityService) Delete(ctx context.Context, viewer Viewer, id int) error {
	a, err := s.Activities.GetByID(ctx, id)
	if err != nil {
		return err
	}

	allowed := viewer.IsGlobal() ||
		a.UserID == viewer.UserID ||
		(viewer.Role == models.RoleRegionalManager && a.EffectiveTeam() == viewer.Team)
	if !allowed {
		return forbiddenErr("not allowed to delete this record")
	}

	if err := s.Activities.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("activity.deleted", map[string]int{"id": id})
	return nil
}

// Pending returns the caller's own records that still expect a follow-up.
// The follow-up form offers these as closeable prior records.
func (s *ActivityService) Pending(ctx context.Context, userID int) ([]*models.Activity, error) {
	return s.Activities.ListOpenByOwner(ctx, userID)
}

// DueFollowUps returns the records whose follow-up falls on today. Global
// viewers see every due record; everyone else sees only their own, the
// reminder list is personal, not a team view.
func (s *ActivityService) DueFollowUps(ctx context.Context, viewer Viewer) ([]*models.Activity, error) {
	all, err := s.Activities.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := FilterVisible(viewer, all, models.ActivityFilter{})
	return dueFollowUps(viewer, visible, TodayString()), nil
}

// dueFollowUps narrows an already-visible set to today's open follow-ups.
func dueFollowUps(viewer Viewer, visible []*models.Activity, today string) []*models.Activity {
	due := make([]*models.Activity, 0)
	for _, a := range visible {
		if !viewer.IsGlobal() && a.UserID != viewer.UserID {
			continue
		}
		if a.FollowUpDate != nil && *a.FollowUpDate == today && models.IsOpenStatus(a.Status) {
			due = append(due, a)
		}
	}
	return due
}

// DashboardStats computes the stat-card counters over the viewer's visible
// set. Team members counts the profiles the viewer can see.
func (s *ActivityService) DashboardStats(ctx context.Context, viewer Viewer) (*models.DashboardStats, error) {
	all, err := s.Activities.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := FilterVisible(viewer, all, models.ActivityFilter{})

	stats := &models.DashboardStats{Total: len(visible)}
	for _, a := range visible {
		switch {
		case a.Status == models.StatusConverted:
			stats.Converted++
		case a.Status == models.StatusClosed:
			stats.NotInterested++
		case models.IsOpenStatus(a.Status):
			stats.FollowUp++
		}
	}

	profiles, err := s.Profiles.List(ctx, "")
	if err != nil {
		return nil, err
	}
	stats.TeamMembers = len(FilterProfiles(viewer, profiles))

	return stats, nil
}
