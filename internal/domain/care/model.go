package care

import "github.com/wellport/wellport/internal/domain/wellness"

// Steps logged today at or above this count the patient as compliant.
const complianceStepThreshold = 5000

const (
	statusGoalMet       = "Goal Met"
	statusMissedCheckup = "Missed Preventive Checkup"
)

// PatientSummary is one row in the doctor's roster.
type PatientSummary struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	LatestGoalStatus string `json:"latest_wellness_goal_status"`
	ComplianceStatus string `json:"compliance_status"`
}

// PatientDetail is the per-patient drill-down view.
type PatientDetail struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Allergies    []string             `json:"allergies"`
	Medications  []string             `json:"medications"`
	RecentLogs   []*wellness.DailyLog `json:"recent_logs"`
	CurrentGoals *CurrentGoals        `json:"current_goals"`
}

type CurrentGoals struct {
	Steps      int     `json:"steps"`
	SleepHours float64 `json:"sleep_hours"`
}
