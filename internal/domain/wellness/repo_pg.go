package wellness

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goalRepoPG struct {
	pool *pgxpool.Pool
}

func NewGoalRepoPG(pool *pgxpool.Pool) GoalRepository {
	return &goalRepoPG{pool: pool}
}

func (r *goalRepoPG) Upsert(ctx context.Context, goal *Goal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wellness_goals (email, steps, sleep_hours, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			steps = EXCLUDED.steps,
			sleep_hours = EXCLUDED.sleep_hours,
			updated_at = EXCLUDED.updated_at`,
		goal.Email, goal.Steps, goal.SleepHours, goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert wellness goal: %w", err)
	}
	return nil
}

func (r *goalRepoPG) GetByEmail(ctx context.Context, email string) (*Goal, error) {
	var g Goal
	err := r.pool.QueryRow(ctx, `
		SELECT email, steps, sleep_hours, updated_at
		FROM wellness_goals WHERE email = $1`, email).
		Scan(&g.Email, &g.Steps, &g.SleepHours, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wellness goal: %w", err)
	}
	return &g, nil
}

type dailyLogRepoPG struct {
	pool *pgxpool.Pool
}

func NewDailyLogRepoPG(pool *pgxpool.Pool) DailyLogRepository {
	return &dailyLogRepoPG{pool: pool}
}

func (r *dailyLogRepoPG) Upsert(ctx context.Context, log *DailyLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO daily_logs (user_id, date, steps, water_intake_ml, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE SET
			steps = EXCLUDED.steps,
			water_intake_ml = EXCLUDED.water_intake_ml,
			recorded_at = EXCLUDED.recorded_at`,
		log.UserID, log.Date, log.Steps, log.WaterIntakeML, log.RecordedAt)
	if err != nil {
		return fmt.Errorf("upsert daily log: %w", err)
	}
	return nil
}

func (r *dailyLogRepoPG) GetByDate(ctx context.Context, userID, date string) (*DailyLog, error) {
	var l DailyLog
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, date, steps, water_intake_ml, recorded_at
		FROM daily_logs WHERE user_id = $1 AND date = $2`, userID, date).
		Scan(&l.UserID, &l.Date, &l.Steps, &l.WaterIntakeML, &l.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get daily log: %w", err)
	}
	return &l, nil
}

func (r *dailyLogRepoPG) ListRecent(ctx context.Context, userID string, limit int) ([]*DailyLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, date, steps, water_intake_ml, recorded_at
		FROM daily_logs WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer rows.Close()

	var logs []*DailyLog
	for rows.Next() {
		var l DailyLog
		if err := rows.Scan(&l.UserID, &l.Date, &l.Steps, &l.WaterIntakeML, &l.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
