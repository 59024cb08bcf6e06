package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/robfig/cron/v3"

	"outreach-backend/internal/models"
	"outreach-backend/internal/repositories"
	"outreach-backend/internal/sms"
)

// ComputeDefaulters returns the staff who logged no activity on the given
// day and are not yet recorded for it. Exempt profiles (HQ team, admin
// roles) never appear. Pure function; the caller supplies the sets.
func ComputeDefaulters(roster []*models.Profile, activeIDs, existingIDs map[int]bool, date string) []*models.DefaulterLog {
	var entries []*models.DefaulterLog
	for _, p := range roster {
		if p.IsExempt() {
			continue
		}
		if activeIDs[p.ID] || existingIDs[p.ID] {
			continue
		}
		entries = append(entries, &models.DefaulterLog{
			UserID:        p.ID,
			Name:          p.Name,
			Phone:         p.Phone,
			Team:          p.Team,
			Role:          p.Role,
			DefaulterDate: date,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Team != entries[j].Team {
			return entries[i].Team < entries[j].Team
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

type DefaulterService struct {
	Profiles   *repositories.ProfileRepository
	Activities *repositories.ActivityRepository
	Logs       *repositories.DefaulterLogRepository
	SMS        sms.SMSProvider
	Alerts     bool
	Events     EventPublisher

	cron *cron.Cron
}

func NewDefaulterService(profiles *repositories.ProfileRepository, activities *repositories.ActivityRepository, logs *repositories.DefaulterLogRepository, smsProvider sms.SMSProvider, alerts bool, events EventPublisher) *DefaulterService {
	return &DefaulterService{
		Profiles:   profiles,
		Activities: activities,
		Logs:       logs,
		SMS:        smsProvider,
		Alerts:     alerts,
		Events:     events,
	}
}

// Sync runs the detector for today on behalf of a global admin and returns
// only the newly inserted entries.
func (s *DefaulterService) Sync(ctx context.Context, viewer Viewer) ([]*models.DefaulterLog, error) {
	if !viewer.IsGlobal() {
		return nil, forbiddenErr("defaulter sync requires admin access")
	}
	return s.runSweep(ctx, TodayString())
}

// runSweep detects and records defaulters for a reporting day.
func (s *DefaulterService) runSweep(ctx context.Context, date string) ([]*models.DefaulterLog, error) {
	roster, err := s.Profiles.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	activeIDs, err := s.Activities.ActiveUserIDs(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load active users: %w", err)
	}
	existingIDs, err := s.Logs.ExistingUserIDs(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing entries: %w", err)
	}

	candidates := ComputeDefaulters(roster, activeIDs, existingIDs, date)
	inserted, err := s.Logs.InsertBatch(ctx, candidates)
	if err != nil {
		return nil, err
	}

	log.Printf("[Defaulter] Sweep for %s: %d candidates, %d newly recorded", date, len(candidates), len(inserted))
	if len(inserted) > 0 {
		if s.Events != nil {
			s.Events.Publish("defaulters.recorded", inserted)
		}
		if s.Alerts {
			s.alertManagers(roster, inserted)
		}
	}
	return inserted, nil
}

// alertManagers texts each affected team's regional manager the names of
// that team's defaulters. Failures are logged, never surfaced.
func (s *DefaulterService) alertManagers(roster []*models.Profile, entries []*models.DefaulterLog) {
	if s.SMS == nil {
		return
	}

	byTeam := make(map[string][]string)
	for _, e := range entries {
		byTeam[e.Team] = append(byTeam[e.Team], e.Name)
	}

	managers := make(map[string]*models.Profile)
	for _, p := range roster {
		if p.Role == models.RoleRegionalManager {
			managers[p.Team] = p
		}
	}

	for team, names := range byTeam {
		m, ok := managers[team]
		if !ok || m.Phone == "" {
			continue
		}
		msg := fmt.Sprintf("Daily activity report (%s): no activity logged today by %s.",
			team, strings.Join(names, ", "))
		if err := s.SMS.SendMessage(m.Phone, msg); err != nil {
			log.Printf("[Defaulter] SMS alert to %s (%s) failed: %v", m.Name, team, err)
		}
	}
}

// StartDailySweep schedules the end-of-day automatic sweep.
func (s *DefaulterService) StartDailySweep() {
	s.cron = cron.New()
	// Runs at 21:00 server time, after the field day ends.
	_, err := s.cron.AddFunc("0 21 * * *", func() {
		if _, err := s.runSweep(context.Background(), TodayString()); err != nil {
			log.Printf("[Defaulter] Scheduled sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[Defaulter] Failed to schedule daily sweep: %v", err)
		return
	}
	s.cron.Start()
	log.Println("[Defaulter] Daily sweep scheduled for 21:00")
}

// StopDailySweep halts the scheduler during shutdown.
func (s *DefaulterService) StopDailySweep() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// List returns defaulter entries. Global viewers see everything and may
// narrow by team and date; everyone else sees only their own entries.
func (s *DefaulterService) List(ctx context.Context, viewer Viewer, team, date string) ([]*models.DefaulterLog, error) {
	if viewer.IsGlobal() {
		if team == "ALL" {
			team = ""
		}
		return s.Logs.List(ctx, team, 0, date)
	}
	return s.Logs.List(ctx, "", viewer.UserID, date)
}

// Delete removes an entry after review (admin only).
func (s *DefaulterService) Delete(ctx context.Context, viewer Viewer, id int) error {
	if !viewer.IsGlobal() {
		return forbiddenErr("defaulter delete requires admin access")
	}
	return s.Logs.Delete(ctx, id)
}
