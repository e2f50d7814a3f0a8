package wellness

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// GoalRepository persists one standing goal per patient.
type GoalRepository interface {
	Upsert(ctx context.Context, goal *Goal) error
	GetByEmail(ctx context.Context, email string) (*Goal, error)
}

// DailyLogRepository persists one activity row per patient per day.
type DailyLogRepository interface {
	Upsert(ctx context.Context, log *DailyLog) error
	GetByDate(ctx context.Context, userID, date string) (*DailyLog, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*DailyLog, error)
}
