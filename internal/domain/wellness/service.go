package wellness

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Reminders shown on every patient dashboard. Static until a scheduling
// backend exists.
var defaultReminders = []string{
	"Drink 8 glasses of water",
	"Take a 10 min walk",
	"Screening due next month",
}

type Service struct {
	goals GoalRepository
	logs  DailyLogRepository
	now   func() time.Time
}

func NewService(goals GoalRepository, logs DailyLogRepository) *Service {
	return &Service{goals: goals, logs: logs, now: time.Now}
}

// UpsertGoal replaces the patient's standing goal.
func (s *Service) UpsertGoal(ctx context.Context, email string, in *GoalInput) (*Goal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	goal := &Goal{
		Email:      email,
		Steps:      in.Steps,
		SleepHours: in.SleepHours,
		UpdatedAt:  s.now().UTC(),
	}
	if err := s.goals.Upsert(ctx, goal); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	return goal, nil
}

// SaveDailyLog records today's activity. The date is fixed to the
// server's UTC calendar date, so a second submission the same day
// overwrites the first.
func (s *Service) SaveDailyLog(ctx context.Context, email string, in *DailyLogInput) (*DailyLog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	log := &DailyLog{
		UserID:        email,
		Date:          UTCDate(now),
		Steps:         in.Steps,
		WaterIntakeML: in.WaterIntakeML,
		RecordedAt:    now,
	}
	if err := s.logs.Upsert(ctx, log); err != nil {
		return nil, fmt.Errorf("save daily log: %w", err)
	}
	return log, nil
}

// Goal returns the patient's standing goal, or ErrNotFound if none set.
func (s *Service) Goal(ctx context.Context, email string) (*Goal, error) {
	return s.goals.GetByEmail(ctx, email)
}

// RecentLogs returns up to limit daily logs, newest first.
func (s *Service) RecentLogs(ctx context.Context, email string, limit int) ([]*DailyLog, error) {
	return s.logs.ListRecent(ctx, email, limit)
}

// Dashboard assembles the patient landing view. Today's logged steps
// take precedence over the goal target in the steps slot; sleep hours
// always come from the goal.
func (s *Service) Dashboard(ctx context.Context, email, fullName string) (*Dashboard, error) {
	d := &Dashboard{
		User:      fullName,
		Reminders: defaultReminders,
	}

	goal, err := s.goals.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal != nil {
		d.Goals.Steps = goal.Steps
		d.Goals.SleepHours = goal.SleepHours
	}

	today, err := s.logs.GetByDate(ctx, email, UTCDate(s.now()))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load today's log: %w", err)
	}
	if today != nil {
		d.Goals.Steps = today.Steps
		d.DailyLog = &DashboardDayStat{
			Steps:         today.Steps,
			WaterIntakeML: today.WaterIntakeML,
		}
	}
	return d, nil
}
