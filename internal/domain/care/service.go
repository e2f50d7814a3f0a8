package care

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wellport/wellport/internal/domain/identity"
	"github.com/wellport/wellport/internal/domain/wellness"
)

// ErrPatientNotFound covers both a missing account and an account that
// exists but is not a patient. Doctors cannot probe which.
var ErrPatientNotFound = errors.New("patient not found")

const recentLogWindow = 7

type Service struct {
	users identity.UserRepository
	goals wellness.GoalRepository
	logs  wellness.DailyLogRepository
	now   func() time.Time
}

func NewService(users identity.UserRepository, goals wellness.GoalRepository, logs wellness.DailyLogRepository) *Service {
	return &Service{users: users, goals: goals, logs: logs, now: time.Now}
}

// ListPatients builds the roster with per-patient compliance derived
// from today's daily log. A patient with no log today counts as zero
// steps.
func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*PatientSummary, error) {
	patients, err := s.users.ListPatients(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	today := wellness.UTCDate(s.now())
	summaries := make([]*PatientSummary, 0, len(patients))
	for _, p := range patients {
		steps := 0
		log, err := s.logs.GetByDate(ctx, p.Email, today)
		if err != nil && !errors.Is(err, wellness.ErrNotFound) {
			return nil, fmt.Errorf("load today's log for %s: %w", p.Email, err)
		}
		if log != nil {
			steps = log.Steps
		}

		compliance := statusMissedCheckup
		if steps >= complianceStepThreshold {
			compliance = statusGoalMet
		}

		summaries = append(summaries, &PatientSummary{
			Name:             displayName(p),
			Email:            p.Email,
			LatestGoalStatus: fmt.Sprintf("%d steps today", steps),
			ComplianceStatus: compliance,
		})
	}
	return summaries, nil
}

// PatientDetail returns one patient's profile, recent activity and
// standing goal. Non-patient accounts are reported as not found.
func (s *Service) PatientDetail(ctx context.Context, email string) (*PatientDetail, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, identity.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if user.Role != identity.RolePatient {
		return nil, ErrPatientNotFound
	}

	logs, err := s.logs.ListRecent(ctx, email, recentLogWindow)
	if err != nil {
		return nil, fmt.Errorf("load recent logs: %w", err)
	}
	if logs == nil {
		logs = []*wellness.DailyLog{}
	}

	detail := &PatientDetail{
		Name:        displayName(user),
		Email:       user.Email,
		Allergies:   emptyIfNil(user.Allergies),
		Medications: emptyIfNil(user.Medications),
		RecentLogs:  logs,
	}

	goal, err := s.goals.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, wellness.ErrNotFound) {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal != nil {
		detail.CurrentGoals = &CurrentGoals{Steps: goal.Steps, SleepHours: goal.SleepHours}
	}
	return detail, nil
}

func displayName(u *identity.User) string {
	if u.FullName == nil || *u.FullName == "" {
		return "Unknown"
	}
	return *u.FullName
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
