package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Entry is one immutable audit record: who did what, when, from where. The
// application only ever appends entries; there is no read or update path.
type Entry struct {
	ID        uuid.UUID              `json:"id"`
	UserID    string                 `json:"user_id"`
	Action    string                 `json:"action"`
	Recorded  time.Time              `json:"recorded"`
	IPAddress string                 `json:"ip_address,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Recorder persists audit entries. Handlers depend on this interface rather
// than the concrete pg-backed Logger so that tests can provide a double.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
}

// RecorderFunc is a function adapter for Recorder.
type RecorderFunc func(ctx context.Context, entry *Entry) error

func (f RecorderFunc) Record(ctx context.Context, entry *Entry) error {
	return f(ctx, entry)
}

// Logger appends audit entries to the audit_log table and mirrors each one
// as a structured log event. A failed insert is returned to the caller;
// the triggering request must fail loudly rather than drop the record.
type Logger struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewLogger(pool *pgxpool.Pool, log zerolog.Logger) *Logger {
	return &Logger{pool: pool, log: log}
}

// Record assigns the entry an ID and a server-side UTC timestamp and inserts
// it. Entries are never updated or deleted afterwards.
func (l *Logger) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.Recorded = time.Now().UTC()

	details, err := marshalDetails(entry.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	var ip *string
	if entry.IPAddress != "" {
		ip = &entry.IPAddress
	}

	_, err = l.pool.Exec(ctx, `
		INSERT INTO audit_log (id, user_id, action, recorded, ip_address, details)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.Action, entry.Recorded, ip, details)
	if err != nil {
		l.log.Error().Err(err).
			Str("user_id", entry.UserID).
			Str("action", entry.Action).
			Msg("failed to record audit entry")
		return fmt.Errorf("record audit entry: %w", err)
	}

	l.log.Info().
		Str("type", "audit").
		Str("audit_id", entry.ID.String()).
		Str("user_id", entry.UserID).
		Str("action", entry.Action).
		Str("remote_ip", entry.IPAddress).
		Time("recorded", entry.Recorded).
		Msg("audit_entry")

	return nil
}

// marshalDetails encodes the details map for the JSONB column. A nil map
// becomes an empty object, never SQL NULL: the column is NOT NULL and a
// details-less action (profile_viewed) must still insert cleanly.
func marshalDetails(details map[string]interface{}) ([]byte, error) {
	if details == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(details)
}
