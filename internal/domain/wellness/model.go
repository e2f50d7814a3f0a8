package wellness

import (
	"time"
)

// Goal is a patient's standing wellness target, one row per user.
type Goal struct {
	Email      string    `db:"email" json:"email"`
	Steps      int       `db:"steps" json:"steps"`
	SleepHours float64   `db:"sleep_hours" json:"sleep_hours"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// DailyLog is one day of self-reported activity. The date is always the
// server's UTC calendar date at write time, never client-supplied.
type DailyLog struct {
	UserID        string    `db:"user_id" json:"user_id"`
	Date          string    `db:"date" json:"date"`
	Steps         int       `db:"steps" json:"steps"`
	WaterIntakeML int       `db:"water_intake_ml" json:"water_intake_ml"`
	RecordedAt    time.Time `db:"recorded_at" json:"recorded_at"`
}

// ValidationError signals a rejected payload. Handlers map it to 422.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

type GoalInput struct {
	Steps      int     `json:"steps"`
	SleepHours float64 `json:"sleep_hours"`
}

func (in *GoalInput) Validate() error {
	if in.Steps < 0 {
		return &ValidationError{Reason: "steps must not be negative"}
	}
	if in.SleepHours < 0 {
		return &ValidationError{Reason: "sleep_hours must not be negative"}
	}
	return nil
}

type DailyLogInput struct {
	Steps         int `json:"steps"`
	WaterIntakeML int `json:"water_intake_ml"`
}

func (in *DailyLogInput) Validate() error {
	if in.Steps < 0 {
		return &ValidationError{Reason: "steps must not be negative"}
	}
	if in.WaterIntakeML < 0 {
		return &ValidationError{Reason: "water_intake_ml must not be negative"}
	}
	return nil
}

// Dashboard is the patient's landing view: current goals with today's
// activity folded in, plus static reminders.
type Dashboard struct {
	User      string            `json:"user"`
	Goals     DashboardGoals    `json:"goals"`
	DailyLog  *DashboardDayStat `json:"daily_log"`
	Reminders []string          `json:"reminders"`
}

type DashboardGoals struct {
	Steps      int     `json:"steps"`
	SleepHours float64 `json:"sleep_hours"`
}

type DashboardDayStat struct {
	Steps         int `json:"steps"`
	WaterIntakeML int `json:"water_intake_ml"`
}

// UTCDate formats t's UTC calendar date the way daily logs key on it.
func UTCDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
